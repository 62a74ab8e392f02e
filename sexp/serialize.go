package sexp

import (
	"bytes"
	"encoding/hex"
	"io"
	"strings"
)

// Serialized form:
//
//	0xff <first> <rest>     pair
//	0x80                    nil
//	0x00..0x7f              single byte atom holding that byte
//	0x80|n ...              atom whose length n is prefixed with up to 5 bytes;
//	                        the count of leading 1 bits in the first byte is the
//	                        prefix length
const (
	consBox   = 0xff
	nilByte   = 0x80
	maxSmall  = 0x7f
	maxPrefix = 5
)

// Encode writes the serialized form of n to w.
func Encode(w io.ByteWriter, n *Node) (err error) {
	for n.Listp() {
		err = w.WriteByte(consBox)
		if err != nil {
			return
		}
		err = Encode(w, n.First)
		if err != nil {
			return
		}
		n = n.Rest
	}

	var atom []byte
	atom, err = n.AsAtom()
	if err != nil {
		return
	}

	if len(atom) == 1 && atom[0] <= maxSmall {
		return w.WriteByte(atom[0])
	}

	var prefix []byte
	prefix, err = lengthPrefix(len(atom))
	if err != nil {
		return
	}
	for _, b := range append(prefix, atom...) {
		err = w.WriteByte(b)
		if err != nil {
			return
		}
	}
	return
}

func lengthPrefix(size int) ([]byte, error) {
	s := uint64(size)
	switch {
	case s < 0x40:
		return []byte{byte(0x80 | s)}, nil
	case s < 0x2000:
		return []byte{byte(0xc0 | s>>8), byte(s)}, nil
	case s < 0x100000:
		return []byte{byte(0xe0 | s>>16), byte(s >> 8), byte(s)}, nil
	case s < 0x8000000:
		return []byte{byte(0xf0 | s>>24), byte(s >> 16), byte(s >> 8), byte(s)}, nil
	case s < 0x400000000:
		return []byte{byte(0xf8 | s>>32), byte(s >> 24), byte(s >> 16), byte(s >> 8), byte(s)}, nil
	}
	return nil, ErrAtomTooLarge
}

// Serialize returns the serialized bytes of n.
func Serialize(n *Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, n); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SerializeHex returns the serialized form of n as lower-case hex digits.
func SerializeHex(n *Node) (string, error) {
	b, err := Serialize(n)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Decode reads one serialized value from r.
func Decode(r io.ByteReader) (n *Node, err error) {
	defer func() {
		// a short stream is always a truncated value here
		if err == io.EOF {
			err = ErrUnexpectedEOF
		}
	}()

	var b byte
	b, err = r.ReadByte()
	if err != nil {
		return
	}

	if b == consBox {
		var first, rest *Node
		first, err = Decode(r)
		if err != nil {
			return
		}
		rest, err = Decode(r)
		if err != nil {
			return
		}
		return Cons(first, rest), nil
	}
	if b == nilByte {
		return Atom(nil), nil
	}
	if b <= maxSmall {
		return Atom([]byte{b}), nil
	}

	var size uint64
	size, err = decodeSize(r, b)
	if err != nil {
		return
	}

	atom := make([]byte, size)
	for i := range atom {
		atom[i], err = r.ReadByte()
		if err != nil {
			return
		}
	}
	return Atom(atom), nil
}

func decodeSize(r io.ByteReader, b byte) (size uint64, err error) {
	var n int
	mask := byte(0x80)
	for mask != 0 && b&mask != 0 {
		n++
		b &^= mask
		mask >>= 1
	}
	if n > maxPrefix {
		return 0, ErrInvalidLengthPrefix
	}

	size = uint64(b)
	for i := 1; i < n; i++ {
		var c byte
		c, err = r.ReadByte()
		if err != nil {
			return
		}
		size = size<<8 | uint64(c)
	}
	if size >= 0x400000000 {
		return 0, ErrInvalidLengthPrefix
	}
	return
}

// Deserialize decodes exactly one serialized value from b.
func Deserialize(b []byte) (*Node, error) {
	r := bytes.NewReader(b)
	n, err := Decode(r)
	if err != nil {
		return nil, err
	}
	if r.Len() != 0 {
		return nil, ErrTrailingBytes
	}
	return n, nil
}

// DeserializeHex decodes hex digits, ignoring surrounding whitespace and an
// optional 0x prefix, then deserializes the bytes.
func DeserializeHex(s string) (*Node, error) {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && strings.EqualFold(s[:2], "0x") {
		s = s[2:]
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	return Deserialize(b)
}
