package sexp

import (
	"math/big"
)

// Atom wraps b as an atom. A nil slice yields the empty atom.
func Atom(b []byte) *Node {
	if b == nil {
		b = []byte{}
	}
	return &Node{Kind: KindAtom, Atom: b}
}

func Cons(first, rest *Node) *Node {
	return &Node{Kind: KindPair, First: first, Rest: rest}
}

// List builds a nil-terminated list of children.
func List(children ...*Node) *Node {
	n := Nil
	for i := len(children) - 1; i >= 0; i-- {
		n = Cons(children[i], n)
	}
	return n
}

// Int encodes v as an atom with the minimal two's-complement encoding.
func Int(v int64) *Node {
	return Atom(IntToBytes(big.NewInt(v)))
}

// String makes an atom of the UTF-8 bytes of s.
func String(s string) *Node {
	return Atom([]byte(s))
}

func MustPair(n *Node) (first, rest *Node) {
	var err error
	first, rest, err = n.Pair()
	if err != nil {
		panic(err)
	}
	return
}

func MustAtom(n *Node) []byte {
	b, err := n.AsAtom()
	if err != nil {
		panic(err)
	}
	return b
}
