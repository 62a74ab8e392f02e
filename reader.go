package clvmir

import (
	"encoding/hex"
	"math/big"
	"strings"
)

// ReadIR tokenizes and parses text into an IR tree.
func ReadIR(text string) (n *Node, err error) {
	var s *TokenStream
	s, err = NewTokenStream(text)
	if err != nil {
		tracer().Debugf("read ir: %v", err)
		return
	}

	n, err = Parse(s)
	if err != nil {
		tracer().Debugf("read ir: %v", err)
	}
	return
}

// Parse consumes one expression from s. Tokens after it are left unread.
func Parse(s *TokenStream) (*Node, error) {
	t, ok := s.Next()
	if !ok {
		return nil, &ParseError{Err: ErrUnexpectedEndOfStream, Offset: -1}
	}
	return parseSExp(t, s)
}

func parseSExp(t Token, s *TokenStream) (*Node, error) {
	if t.Text == "(" {
		next, err := nextConsToken(s, t.Offset)
		if err != nil {
			return nil, err
		}
		return parseCons(next, s, t.Offset)
	}
	return parseLiteral(t)
}

// nextConsToken reads inside a list opened at open; running out of tokens
// means the list was never closed.
func nextConsToken(s *TokenStream, open int) (Token, error) {
	t, ok := s.Next()
	if !ok {
		return Token{}, &ParseError{Err: ErrMissingClosingParen, Offset: open, Token: "("}
	}
	return t, nil
}

func parseCons(t Token, s *TokenStream, open int) (*Node, error) {
	if t.Text == ")" {
		return NewNull().At(t.Offset), nil
	}

	first, err := parseSExp(t, s)
	if err != nil {
		return nil, err
	}

	next, err := nextConsToken(s, open)
	if err != nil {
		return nil, err
	}

	var rest *Node
	if next.Text == "." {
		dot := next.Offset
		illegal := &ParseError{Err: ErrIllegalDotExpression, Offset: dot, Token: "."}

		next, err = nextConsToken(s, open)
		if err != nil {
			return nil, err
		}
		if next.Text == ")" {
			return nil, illegal
		}
		rest, err = parseSExp(next, s)
		if err != nil {
			return nil, err
		}

		next, err = nextConsToken(s, open)
		if err != nil {
			return nil, err
		}
		if next.Text != ")" {
			return nil, illegal
		}
	} else {
		rest, err = parseCons(next, s, open)
		if err != nil {
			return nil, err
		}
	}

	return NewCons(first, rest).At(t.Offset), nil
}

// parseLiteral tries integer, hex, quoted string and symbol in that order.
func parseLiteral(t Token) (*Node, error) {
	if t.Text == "" {
		return nil, &ParseError{Err: ErrInvalidLiteral, Offset: t.Offset}
	}

	if n := parseInt(t); n != nil {
		return n, nil
	}
	if n, err := parseHex(t); n != nil || err != nil {
		return n, err
	}
	if n, err := parseQuotes(t); n != nil || err != nil {
		return n, err
	}
	return NewSymbol(t.Text).At(t.Offset), nil
}

func parseInt(t Token) *Node {
	if t.Text == "-" || t.Text == "+" {
		return nil
	}
	v, ok := new(big.Int).SetString(t.Text, 10)
	if !ok {
		return nil
	}
	return NewInt(v).At(t.Offset)
}

func parseHex(t Token) (*Node, error) {
	if len(t.Text) < 2 || !strings.EqualFold(t.Text[:2], "0x") {
		return nil, nil
	}

	digits := t.Text[2:]
	if len(digits)%2 == 1 {
		digits = "0" + digits
	}
	b, err := hex.DecodeString(digits)
	if err != nil {
		return nil, &ParseError{Err: ErrInvalidHex, Offset: t.Offset, Token: t.Text}
	}
	return NewAtom(TypeHex, b).At(t.Offset), nil
}

func parseQuotes(t Token) (*Node, error) {
	r := []rune(t.Text)
	if len(r) < 2 {
		return nil, nil
	}
	c := r[0]
	if !isDelimiter(c) {
		return nil, nil
	}
	if r[len(r)-1] != c {
		return nil, &ParseError{Err: ErrUnterminatedString, Offset: t.Offset, Token: t.Text}
	}

	typ := TypeDoubleQuote
	if c == '\'' {
		typ = TypeSingleQuote
	}
	return NewAtom(typ, []byte(string(r[1:len(r)-1]))).At(t.Offset), nil
}
