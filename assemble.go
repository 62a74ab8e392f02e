package clvmir

import (
	"strings"

	"github.com/alttpo/clvmir/sexp"
)

// Keywords maps operator names to their atoms and back. Implementations must
// be safe for concurrent reads; keyword.Table is one.
type Keywords interface {
	Atom(name string) ([]byte, bool)
	Keyword(atom []byte) (string, bool)
}

// escape marks a symbol that is never looked up as a keyword.
const escape = "#"

// Assemble reads text and lowers it to a canonical S-expression.
func Assemble(text string, kw Keywords) (*sexp.Node, error) {
	n, err := ReadIR(text)
	if err != nil {
		return nil, err
	}
	return AssembleIR(n, kw)
}

// AssembleHex assembles text and returns the serialized program as hex.
func AssembleHex(text string, kw Keywords) (string, error) {
	s, err := Assemble(text, kw)
	if err != nil {
		return "", err
	}
	return sexp.SerializeHex(s)
}

// AssembleIR lowers an IR tree. Symbols resolve through kw, falling back to
// their own bytes.
func AssembleIR(n *Node, kw Keywords) (*sexp.Node, error) {
	if n == nil {
		return nil, structural("assemble", "nil node")
	}

	if name, ok := n.AsSymbol(); ok {
		if strings.HasPrefix(name, escape) {
			return sexp.String(name[len(escape):]), nil
		}
		if atom, ok := kw.Atom(name); ok {
			return sexp.Atom(atom), nil
		}
		return sexp.Atom(n.Atom), nil
	}

	if !n.IsList() {
		return sexp.Atom(n.Atom), nil
	}

	first, rest, err := n.Pair()
	if err != nil {
		return nil, err
	}

	// a quoted body such as (q . x) is assembled like any other tail;
	// nothing after the operator is treated as a macro.
	a, err := AssembleIR(first, kw)
	if err != nil {
		return nil, err
	}
	b, err := AssembleIR(rest, kw)
	if err != nil {
		return nil, err
	}
	return sexp.Cons(a, b), nil
}
