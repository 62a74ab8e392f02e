// Package sexp is the canonical S-expression model shared with the execution
// engine: a value is either an atom (an opaque byte string, the empty atom
// being nil) or an ordered pair of two values. There are no type tags; shape
// alone carries meaning.
package sexp

import (
	"bytes"
	"encoding/hex"
	"errors"
	"strings"
)

type Kind int

var (
	ErrNotAPair            = errors.New("expected a pair")
	ErrNotAnAtom           = errors.New("expected an atom")
	ErrUnexpectedEOF       = errors.New("unexpected end of serialized stream")
	ErrInvalidLengthPrefix = errors.New("invalid atom length prefix")
	ErrAtomTooLarge        = errors.New("atom too large to serialize")
	ErrTrailingBytes       = errors.New("trailing bytes after serialized value")
)

const (
	KindAtom Kind = iota
	KindPair
)

// Node is an atom or a pair. Nodes are never mutated after construction so
// subtrees may be shared freely.
type Node struct {
	Kind
	Atom  []byte
	First *Node
	Rest  *Node
}

// Nil is the empty atom.
var Nil = &Node{Kind: KindAtom, Atom: []byte{}}

// Listp reports whether n is a pair.
func (n *Node) Listp() bool {
	return n != nil && n.Kind == KindPair
}

// Nullp reports whether n is the empty atom.
func (n *Node) Nullp() bool {
	return n != nil && n.Kind == KindAtom && len(n.Atom) == 0
}

// Pair returns both halves of a pair.
func (n *Node) Pair() (first, rest *Node, err error) {
	if !n.Listp() {
		return nil, nil, ErrNotAPair
	}
	return n.First, n.Rest, nil
}

// AsAtom returns the bytes of an atom.
func (n *Node) AsAtom() ([]byte, error) {
	if n == nil || n.Kind != KindAtom {
		return nil, ErrNotAnAtom
	}
	return n.Atom, nil
}

// Equal compares two values structurally. A nil atom slice and an empty one
// are the same atom.
func Equal(a, b *Node) bool {
	for {
		if a == b {
			return true
		}
		if a == nil || b == nil || a.Kind != b.Kind {
			return false
		}
		if a.Kind == KindAtom {
			return bytes.Equal(a.Atom, b.Atom)
		}
		if !Equal(a.First, b.First) {
			return false
		}
		a, b = a.Rest, b.Rest
	}
}

func (n *Node) String() string {
	var sb strings.Builder

	err := n.appendToBuilder(&sb)
	if err != nil {
		return "!!(" + err.Error() + ")!!"
	}

	return sb.String()
}

// appendToBuilder writes a debugging form: "()" for nil, 0x-prefixed hex for
// other atoms and Lisp list notation with dotted tails for pairs.
func (n *Node) appendToBuilder(sb *strings.Builder) (err error) {
	if n == nil {
		return
	}

	switch n.Kind {
	case KindPair:
		sb.WriteRune('(')
		for {
			err = n.First.appendToBuilder(sb)
			if err != nil {
				return
			}
			n = n.Rest
			if n.Listp() {
				sb.WriteRune(' ')
				continue
			}
			if !n.Nullp() {
				sb.WriteString(" . ")
				err = n.appendToBuilder(sb)
				if err != nil {
					return
				}
			}
			break
		}
		sb.WriteRune(')')
		return
	case KindAtom:
		if len(n.Atom) == 0 {
			sb.WriteString("()")
			return
		}
		sb.WriteString("0x")
		_, err = hex.NewEncoder(sb).Write(n.Atom)
		return
	}

	return
}
