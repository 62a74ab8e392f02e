package clvmir

import (
	"bytes"
	"unicode"
	"unicode/utf8"

	"github.com/alttpo/clvmir/keyword"
	"github.com/alttpo/clvmir/sexp"
)

// irMarker heads a list wrapping a value that is itself shaped like IR.
const irMarker = "ir"

// Disassemble lifts s to IR and writes it as text.
func Disassemble(s *sexp.Node, kw Keywords) (string, error) {
	return WriteIR(DisassembleIR(s, kw))
}

// DisassembleHex deserializes a hex encoded program and disassembles it.
func DisassembleHex(h string, kw Keywords) (string, error) {
	s, err := sexp.DeserializeHex(h)
	if err != nil {
		tracer().Debugf("disassemble: %v", err)
		return "", err
	}
	return Disassemble(s, kw)
}

// DisassembleIR lifts s to an IR tree. Every atom that is an element of a
// list, at any depth, is replaced by the keyword it encodes. A bare atom
// passed alone, and the atom ending a dotted list, are always literals.
func DisassembleIR(s *sexp.Node, kw Keywords) *Node {
	return disassembleIR(s, kw, false)
}

func disassembleIR(s *sexp.Node, kw Keywords, element bool) *Node {
	if element && IsIR(s) {
		if n, err := FromSExp(s); err == nil {
			return NewCons(NewSymbol(irMarker), n)
		}
	}

	if s.Listp() {
		first := disassembleIR(s.First, kw, true)
		rest := disassembleIR(s.Rest, kw, false)
		return NewCons(first, rest)
	}

	if element {
		if name, ok := kw.Keyword(s.Atom); ok && name != keyword.Separator {
			return NewSymbol(name)
		}
	}

	if s.Nullp() {
		return NewNull()
	}

	return NewAtom(TypeForAtom(s.Atom), s.Atom)
}

// TypeForAtom guesses how a data atom reads best. Atoms longer than two bytes
// are QUOTES when they are printable text, HEX otherwise. Shorter atoms are
// INT when their integer value re-encodes to the same bytes.
func TypeForAtom(atom []byte) Type {
	if len(atom) > 2 {
		if utf8.Valid(atom) && printable(atom) {
			return TypeQuotes
		}
		return TypeHex
	}
	if bytes.Equal(sexp.IntToBytes(sexp.IntFromBytes(atom)), atom) {
		return TypeInt
	}
	return TypeHex
}

func printable(b []byte) bool {
	for _, r := range string(b) {
		if r < utf8.RuneSelf || unicode.IsPunct(r) || unicode.IsNumber(r) || unicode.IsSpace(r) {
			continue
		}
		return false
	}
	return true
}
