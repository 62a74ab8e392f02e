package clvmir

import (
	"errors"
	"math/big"
	"reflect"
	"testing"
)

func sym(s string) *Node { return NewSymbol(s) }

func num(v int64) *Node { return NewInt(big.NewInt(v)) }

func list(children ...*Node) *Node {
	n := NewNull()
	for i := len(children) - 1; i >= 0; i-- {
		n = NewCons(children[i], n)
	}
	return n
}

func TestReadIR(t *testing.T) {
	type args struct {
		s string
	}
	tests := []struct {
		name    string
		args    args
		wantN   *Node
		wantErr error
	}{
		{
			name:  "xpass: empty list",
			args:  args{s: "()"},
			wantN: NewNull(),
		},
		{
			name:  "xpass: list of keyword and ints",
			args:  args{s: "(+ 1 2)"},
			wantN: list(sym("+"), num(1), num(2)),
		},
		{
			name:  "xpass: dotted list",
			args:  args{s: "(1 2 . 3)"},
			wantN: NewCons(num(1), NewCons(num(2), num(3))),
		},
		{
			name:  "xpass: nested lists",
			args:  args{s: "(a (b ()) c)"},
			wantN: list(sym("a"), list(sym("b"), NewNull()), sym("c")),
		},
		{
			name:  "xpass: explicit dotted chain",
			args:  args{s: "(1 . (2 . ()))"},
			wantN: list(num(1), num(2)),
		},
		{
			name:  "xpass: negative integer",
			args:  args{s: "-5"},
			wantN: NewAtom(TypeInt, []byte{0xfb}),
		},
		{
			name:  "xpass: zero is the empty atom",
			args:  args{s: "0"},
			wantN: NewAtom(TypeInt, []byte{}),
		},
		{
			name:  "xpass: large integer",
			args:  args{s: "340282366920938463463374607431768211456"},
			wantN: NewAtom(TypeInt, append([]byte{0x01}, make([]byte, 16)...)),
		},
		{
			name:  "xpass: lone minus is a symbol",
			args:  args{s: "-"},
			wantN: sym("-"),
		},
		{
			name:  "xpass: hex",
			args:  args{s: "0xAB"},
			wantN: NewAtom(TypeHex, []byte{0xab}),
		},
		{
			name:  "xpass: odd hex is left padded",
			args:  args{s: "0xABC"},
			wantN: NewAtom(TypeHex, []byte{0x0a, 0xbc}),
		},
		{
			name:  "xpass: upper case hex prefix",
			args:  args{s: "0XaB"},
			wantN: NewAtom(TypeHex, []byte{0xab}),
		},
		{
			name:  "xpass: empty hex",
			args:  args{s: "0x"},
			wantN: NewAtom(TypeHex, []byte{}),
		},
		{
			name:  "xpass: double quoted",
			args:  args{s: `"hello world"`},
			wantN: NewAtom(TypeDoubleQuote, []byte("hello world")),
		},
		{
			name:  "xpass: single quoted",
			args:  args{s: `'hi'`},
			wantN: NewAtom(TypeSingleQuote, []byte("hi")),
		},
		{
			name:  "xpass: backslash quoted reads as double quoted",
			args:  args{s: `\hi\`},
			wantN: NewAtom(TypeDoubleQuote, []byte("hi")),
		},
		{
			name:  "xpass: symbol",
			args:  args{s: "sha256"},
			wantN: sym("sha256"),
		},
		{
			name:  "xpass: escaped symbol is still a symbol",
			args:  args{s: "#q"},
			wantN: sym("#q"),
		},
		{
			name:  "xpass: trailing tokens are ignored",
			args:  args{s: "a b"},
			wantN: sym("a"),
		},
		{
			name:    "xfail: empty input",
			args:    args{s: "  ; just a comment"},
			wantErr: ErrUnexpectedEndOfStream,
		},
		{
			name:    "xfail: missing closing paren",
			args:    args{s: "(1 2"},
			wantErr: ErrMissingClosingParen,
		},
		{
			name:    "xfail: missing closing paren after dot",
			args:    args{s: "(1 . 2"},
			wantErr: ErrMissingClosingParen,
		},
		{
			name:    "xfail: two items after dot",
			args:    args{s: "(1 . 2 3)"},
			wantErr: ErrIllegalDotExpression,
		},
		{
			name:    "xfail: nothing after dot",
			args:    args{s: "(1 . )"},
			wantErr: ErrIllegalDotExpression,
		},
		{
			name:    "xfail: bad hex",
			args:    args{s: "(0xZZ)"},
			wantErr: ErrInvalidHex,
		},
		{
			name:    "xfail: unterminated string",
			args:    args{s: "\"abc"},
			wantErr: ErrUnterminatedString,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotN, err := ReadIR(tt.args.s)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ReadIR() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if !Equal(gotN, tt.wantN) {
				t.Errorf("ReadIR() gotN = %v, want %v", gotN, tt.wantN)
			}
		})
	}
}

func TestReadIR_ErrorOffsets(t *testing.T) {
	tests := []struct {
		name string
		s    string
		want error
	}{
		{
			name: "illegal dot reports the dot",
			s:    "(1 . 2 3)",
			want: &ParseError{Err: ErrIllegalDotExpression, Offset: 3, Token: "."},
		},
		{
			name: "missing paren reports the open paren",
			s:    "(a (b c)",
			want: &ParseError{Err: ErrMissingClosingParen, Offset: 0, Token: "("},
		},
		{
			name: "bad hex reports the token",
			s:    "(a 0x1g)",
			want: &ParseError{Err: ErrInvalidHex, Offset: 3, Token: "0x1g"},
		},
		{
			name: "unterminated string reports the opening quote",
			s:    "(a \"bc)",
			want: &LexError{Err: ErrUnterminatedString, Offset: 3, Text: "\"bc)"},
		},
		{
			name: "end of stream has no offset",
			s:    "",
			want: &ParseError{Err: ErrUnexpectedEndOfStream, Offset: -1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadIR(tt.s)
			if !reflect.DeepEqual(err, tt.want) {
				t.Fatalf("got %#v, want %#v", err, tt.want)
			}
		})
	}
}

func TestParse_UnterminatedToken(t *testing.T) {
	_, err := Parse(StreamOf(Token{Text: `"abc`, Offset: 7}))
	want := &ParseError{Err: ErrUnterminatedString, Offset: 7, Token: `"abc`}
	if !reflect.DeepEqual(err, want) {
		t.Fatalf("got %v, want %v", err, want)
	}
}

func TestParse_EmptyToken(t *testing.T) {
	_, err := Parse(StreamOf(Token{Text: "", Offset: 2}))
	if !errors.Is(err, ErrInvalidLiteral) {
		t.Fatalf("got %v", err)
	}
}

func TestReadIR_Offsets(t *testing.T) {
	n, err := ReadIR("(a  (b) . 'c')")
	if err != nil {
		t.Fatal(err)
	}

	// a CONS cell is located at its first element
	if !n.HasOffset || n.Offset != 1 {
		t.Errorf("outer cons offset = %d", n.Offset)
	}
	if n.First.Offset != 1 {
		t.Errorf("a offset = %d", n.First.Offset)
	}
	inner := n.Rest.First
	if inner.Offset != 5 || inner.First.Offset != 5 {
		t.Errorf("inner offsets = %d %d", inner.Offset, inner.First.Offset)
	}
	if inner.Rest.Type != TypeNull || inner.Rest.Offset != 6 {
		t.Errorf("inner tail = %v at %d", inner.Rest.Type, inner.Rest.Offset)
	}
	if tail := n.Rest.Rest; tail.Type != TypeSingleQuote || tail.Offset != 10 {
		t.Errorf("dotted tail = %v at %d", tail.Type, tail.Offset)
	}
}
