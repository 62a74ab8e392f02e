package clvmir

import (
	"math/big"
	"unicode/utf8"

	"github.com/alttpo/clvmir/sexp"
)

// The flattened form of an IR node is the S-expression
//
//	(header . payload)
//
// where header is the tag atom, or (tag . offset) when the source offset is
// known, and payload is an atom, or for CONS the pair (first . rest) of two
// flattened nodes. This is the shape exchanged with the engine.

// maxTagAtomLen bounds the tag atom accepted by IsIR.
const maxTagAtomLen = 1

func tagAtom(t Type) *sexp.Node {
	return sexp.Atom(sexp.IntToBytes(new(big.Int).SetUint64(uint64(t))))
}

// SExp flattens n.
func (n *Node) SExp() (*sexp.Node, error) {
	if n == nil {
		return nil, structural("flatten", "nil node")
	}

	header := tagAtom(n.Type)
	if n.HasOffset {
		header = sexp.Cons(header, sexp.Int(int64(n.Offset)))
	}

	if !n.IsList() {
		return sexp.Cons(header, sexp.Atom(n.Atom)), nil
	}

	first, rest, err := n.Pair()
	if err != nil {
		return nil, err
	}
	a, err := first.SExp()
	if err != nil {
		return nil, err
	}
	b, err := rest.SExp()
	if err != nil {
		return nil, err
	}
	return sexp.Cons(header, sexp.Cons(a, b)), nil
}

// FromSExp reads a flattened IR node.
func FromSExp(s *sexp.Node) (*Node, error) {
	t, err := TypeOfSExp(s)
	if err != nil {
		return nil, err
	}

	var n *Node
	if t == TypeCons {
		if !s.Rest.Listp() {
			return nil, structural("unflatten", "CONS payload is not a pair")
		}
		first, err := FromSExp(s.Rest.First)
		if err != nil {
			return nil, err
		}
		rest, err := FromSExp(s.Rest.Rest)
		if err != nil {
			return nil, err
		}
		n = NewCons(first, rest)
	} else {
		atom, err := s.Rest.AsAtom()
		if err != nil {
			return nil, structural("unflatten", "%v payload is not an atom", t)
		}
		n = NewAtom(t, atom)
	}

	if s.First.Listp() {
		off, err := s.First.Rest.AsInt()
		if err != nil || !off.IsInt64() {
			return nil, structural("unflatten", "bad source offset")
		}
		n = n.At(int(off.Int64()))
	}
	return n, nil
}

// TypeOfSExp returns the tag of a flattened node.
func TypeOfSExp(s *sexp.Node) (Type, error) {
	if !s.Listp() {
		return 0, structural("type of", "node is an atom")
	}
	header := s.First
	if header.Listp() {
		header = header.First
	}
	atom, err := header.AsAtom()
	if err != nil {
		return 0, structural("type of", "tag is not an atom")
	}
	v := sexp.IntFromBytes(atom)
	if !v.IsUint64() || v.Uint64() > 0xffffffff || !Type(v.Uint64()).Known() {
		return 0, structural("type of", "unknown tag %x", atom)
	}
	return Type(v.Uint64()), nil
}

// ValueOfSExp returns the payload of a flattened node.
func ValueOfSExp(s *sexp.Node) (*sexp.Node, error) {
	if !s.Listp() {
		return nil, structural("value of", "node is an atom")
	}
	return s.Rest, nil
}

func IsNullSExp(s *sexp.Node) (bool, error) {
	t, err := TypeOfSExp(s)
	return t == TypeNull, err
}

func IsListSExp(s *sexp.Node) (bool, error) {
	t, err := TypeOfSExp(s)
	return t == TypeCons, err
}

// LowerSExp recovers the plain S-expression described by a flattened node.
func LowerSExp(s *sexp.Node) (*sexp.Node, error) {
	t, err := TypeOfSExp(s)
	if err != nil {
		return nil, err
	}
	switch t {
	case TypeNull:
		return sexp.Nil, nil
	case TypeCons:
		if !s.Rest.Listp() {
			return nil, structural("as sexp", "CONS payload is not a pair")
		}
		a, err := LowerSExp(s.Rest.First)
		if err != nil {
			return nil, err
		}
		b, err := LowerSExp(s.Rest.Rest)
		if err != nil {
			return nil, err
		}
		return sexp.Cons(a, b), nil
	}
	return s.Rest, nil
}

// AsAtomSExp returns the payload bytes of a flattened non-list node.
func AsAtomSExp(s *sexp.Node) ([]byte, error) {
	v, err := ValueOfSExp(s)
	if err != nil {
		return nil, err
	}
	b, err := v.AsAtom()
	if err != nil {
		return nil, structural("as atom", "payload is a pair")
	}
	return b, nil
}

// AsSymbolSExp returns the text of a flattened SYMBOL node.
func AsSymbolSExp(s *sexp.Node) (string, bool) {
	t, err := TypeOfSExp(s)
	if err != nil || t != TypeSymbol {
		return "", false
	}
	b, err := AsAtomSExp(s)
	if err != nil || !utf8.Valid(b) {
		return "", false
	}
	return string(b), true
}

// IsIR reports whether s has the exact shape of a flattened IR node with a
// bare tag atom of at most maxTagAtomLen bytes.
func IsIR(s *sexp.Node) bool {
	if !s.Listp() {
		return false
	}

	header, payload := s.First, s.Rest
	if header.Listp() || len(header.Atom) > maxTagAtomLen {
		return false
	}

	v := sexp.IntFromBytes(header.Atom).Int64()
	if v < 0 || !Type(v).Known() {
		return false
	}
	t := Type(v)

	if t == TypeCons {
		if payload.Nullp() {
			return true
		}
		if payload.Listp() {
			return IsIR(payload.First) && IsIR(payload.Rest)
		}
		return false
	}

	return !payload.Listp()
}
