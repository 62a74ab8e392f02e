package clvmir

import (
	"bytes"
	"math/big"
	"strconv"
	"unicode/utf8"

	"github.com/alttpo/clvmir/sexp"
)

// Type tags an IR node. Each value is the big-endian integer read of the
// ASCII bytes of its short code, so the tag atom spells the code.
type Type uint32

const (
	TypeCons        Type = 0x434f4e53 // "CONS"
	TypeNull        Type = 0x4e554c4c // "NULL"
	TypeInt         Type = 0x494e54   // "INT"
	TypeHex         Type = 0x484558   // "HEX"
	TypeQuotes      Type = 0x5154     // "QT"
	TypeDoubleQuote Type = 0x445154   // "DQT"
	TypeSingleQuote Type = 0x535154   // "SQT"
	TypeSymbol      Type = 0x53594d   // "SYM"
	TypeOperator    Type = 0x4f50     // "OP"
	TypeCode        Type = 0x434f4445 // "CODE"
	TypeNode        Type = 0x4e4f4445 // "NODE"
)

var typeNames = map[Type]string{
	TypeCons:        "CONS",
	TypeNull:        "NULL",
	TypeInt:         "INT",
	TypeHex:         "HEX",
	TypeQuotes:      "QUOTES",
	TypeDoubleQuote: "DOUBLE_QUOTE",
	TypeSingleQuote: "SINGLE_QUOTE",
	TypeSymbol:      "SYMBOL",
	TypeOperator:    "OPERATOR",
	TypeCode:        "CODE",
	TypeNode:        "NODE",
}

// TypeOf computes the tag for a short code such as "CONS" or "QT".
func TypeOf(code string) Type {
	var t Type
	for i := 0; i < len(code); i++ {
		t = t<<8 | Type(code[i])
	}
	return t
}

// Known reports whether t is one of the defined tags.
func (t Type) Known() bool {
	_, ok := typeNames[t]
	return ok
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "Type(" + strconv.FormatUint(uint64(t), 10) + ")"
}

// Node is an IR tree node. A CONS node uses First and Rest; every other node
// keeps its payload in Atom. Nodes are not modified after construction.
type Node struct {
	Type
	Offset    int
	HasOffset bool
	Atom      []byte
	First     *Node
	Rest      *Node
}

func NewCons(first, rest *Node) *Node {
	return &Node{Type: TypeCons, First: first, Rest: rest}
}

func NewNull() *Node {
	return &Node{Type: TypeNull, Atom: []byte{}}
}

func NewAtom(t Type, b []byte) *Node {
	if b == nil {
		b = []byte{}
	}
	return &Node{Type: t, Atom: b}
}

func NewSymbol(s string) *Node {
	return NewAtom(TypeSymbol, []byte(s))
}

func NewInt(v *big.Int) *Node {
	return NewAtom(TypeInt, sexp.IntToBytes(v))
}

// At returns a copy of n carrying a source offset.
func (n *Node) At(offset int) *Node {
	c := *n
	c.Offset = offset
	c.HasOffset = true
	return &c
}

func (n *Node) IsNull() bool {
	return n != nil && n.Type == TypeNull
}

// IsList is true only for CONS nodes; NULL is not a list here.
func (n *Node) IsList() bool {
	return n != nil && n.Type == TypeCons
}

// Pair returns the halves of a CONS node.
func (n *Node) Pair() (first, rest *Node, err error) {
	if !n.IsList() {
		return nil, nil, structural("pair", "node is not a CONS")
	}
	if n.First == nil || n.Rest == nil {
		return nil, nil, structural("pair", "CONS node is missing a half")
	}
	return n.First, n.Rest, nil
}

// AsAtom returns the raw payload of a non-list node.
func (n *Node) AsAtom() ([]byte, error) {
	if n == nil {
		return nil, structural("as atom", "nil node")
	}
	if n.IsList() {
		return nil, structural("as atom", "node is a CONS")
	}
	return n.Atom, nil
}

// AsSymbol returns the text of a SYMBOL node. Other nodes, and symbols that
// are not valid UTF-8, yield ok == false.
func (n *Node) AsSymbol() (s string, ok bool) {
	if n == nil || n.Type != TypeSymbol || !utf8.Valid(n.Atom) {
		return "", false
	}
	return string(n.Atom), true
}

// AsSExp strips the IR tagging from a CONS chain and NULL leaves. Other
// leaves become their raw payload atoms.
func (n *Node) AsSExp() (*sexp.Node, error) {
	if n == nil {
		return nil, structural("as sexp", "nil node")
	}
	switch n.Type {
	case TypeNull:
		return sexp.Nil, nil
	case TypeCons:
		first, rest, err := n.Pair()
		if err != nil {
			return nil, err
		}
		a, err := first.AsSExp()
		if err != nil {
			return nil, err
		}
		b, err := rest.AsSExp()
		if err != nil {
			return nil, err
		}
		return sexp.Cons(a, b), nil
	}
	return sexp.Atom(n.Atom), nil
}

// Equal compares two trees by type and payload. Source offsets are ignored.
func Equal(a, b *Node) bool {
	for {
		if a == b {
			return true
		}
		if a == nil || b == nil || a.Type != b.Type {
			return false
		}
		if a.Type != TypeCons {
			return bytes.Equal(a.Atom, b.Atom)
		}
		if !Equal(a.First, b.First) {
			return false
		}
		a, b = a.Rest, b.Rest
	}
}
