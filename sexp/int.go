package sexp

import (
	"math/big"
)

// IntToBytes returns the big-endian two's-complement encoding of v using the
// fewest bytes that preserve the sign. Zero encodes as the empty atom.
func IntToBytes(v *big.Int) []byte {
	switch v.Sign() {
	case 0:
		return []byte{}
	case 1:
		n := v.BitLen()/8 + 1
		return v.FillBytes(make([]byte, n))
	}

	// -v-1 has the same bit length as the magnitude the sign bit must clear.
	t := new(big.Int).Neg(v)
	t.Sub(t, big.NewInt(1))
	n := t.BitLen()/8 + 1

	mod := new(big.Int).Lsh(big.NewInt(1), uint(8*n))
	mod.Add(mod, v)
	return mod.FillBytes(make([]byte, n))
}

// IntFromBytes interprets b as a big-endian two's-complement integer.
func IntFromBytes(b []byte) *big.Int {
	v := new(big.Int).SetBytes(b)
	if len(b) > 0 && b[0]&0x80 != 0 {
		mod := new(big.Int).Lsh(big.NewInt(1), uint(8*len(b)))
		v.Sub(v, mod)
	}
	return v
}

// AsInt reads an atom as an integer.
func (n *Node) AsInt() (*big.Int, error) {
	b, err := n.AsAtom()
	if err != nil {
		return nil, err
	}
	return IntFromBytes(b), nil
}
