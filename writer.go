package clvmir

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/nukata/goarith"

	"github.com/alttpo/clvmir/sexp"
)

// WriteIR renders n as canonical text.
func WriteIR(n *Node) (string, error) {
	var sb strings.Builder
	if err := appendIR(&sb, n); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// WriteIRTo renders n to w, token by token.
func WriteIRTo(w io.Writer, n *Node) error {
	bw := bufio.NewWriter(w)
	if err := appendIR(bw, n); err != nil {
		return err
	}
	return bw.Flush()
}

func (n *Node) String() string {
	s, err := WriteIR(n)
	if err != nil {
		return "!!(" + err.Error() + ")!!"
	}
	return s
}

func appendIR(w io.StringWriter, n *Node) (err error) {
	if n == nil {
		return &FormatError{}
	}

	if n.IsList() {
		return appendList(w, n)
	}

	switch n.Type {
	case TypeNull:
		_, err = w.WriteString("()")
	case TypeInt:
		_, err = w.WriteString(decimal(n.Atom))
	case TypeNode:
		_, err = w.WriteString("NODE[" + decimal(n.Atom) + "]")
	case TypeHex:
		_, err = w.WriteString("0x" + hex.EncodeToString(n.Atom))
	case TypeCode:
		_, err = w.WriteString("CODE[" + hex.EncodeToString(n.Atom) + "]")
	case TypeQuotes, TypeDoubleQuote:
		_, err = w.WriteString(`"` + string(n.Atom) + `"`)
	case TypeSingleQuote:
		_, err = w.WriteString("'" + string(n.Atom) + "'")
	case TypeSymbol, TypeOperator:
		if utf8.Valid(n.Atom) {
			_, err = w.WriteString(string(n.Atom))
		} else {
			// not parseable on purpose
			_, err = w.WriteString("(indecipherable symbol: " + hex.EncodeToString(n.Atom))
		}
	default:
		err = &FormatError{Node: n}
	}
	return
}

// appendList writes a CONS chain, ending in " . tail" when the chain does not
// end in NULL.
func appendList(w io.StringWriter, n *Node) (err error) {
	if _, err = w.WriteString("("); err != nil {
		return
	}

	isFirst := true
	for !n.IsNull() {
		if !n.IsList() {
			if _, err = w.WriteString(" . "); err != nil {
				return
			}
			if err = appendIR(w, n); err != nil {
				return
			}
			break
		}
		if n.First == nil || n.Rest == nil {
			return &FormatError{Node: n}
		}
		if !isFirst {
			if _, err = w.WriteString(" "); err != nil {
				return
			}
		}
		if err = appendIR(w, n.First); err != nil {
			return
		}
		n = n.Rest
		isFirst = false
	}

	_, err = w.WriteString(")")
	return
}

func decimal(b []byte) string {
	return fmt.Sprint(goarith.AsNumber(sexp.IntFromBytes(b)))
}
