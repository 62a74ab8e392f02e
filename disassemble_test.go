package clvmir

import (
	"testing"

	"github.com/alttpo/clvmir/keyword"
	"github.com/alttpo/clvmir/sexp"
)

func TestDisassemble(t *testing.T) {
	type args struct {
		s  *sexp.Node
		kw Keywords
	}
	tests := []struct {
		name string
		args args
		want string
	}{
		{
			name: "xpass: keyword head",
			args: args{s: sexp.List(sexp.Atom([]byte{0x10}), sexp.Int(1), sexp.Int(2)), kw: plusOnly},
			want: "(+ 1 2)",
		},
		{
			name: "xpass: bare atom is never a keyword",
			args: args{s: sexp.Atom([]byte{0x10}), kw: plusOnly},
			want: "16",
		},
		{
			name: "xpass: same atom inside a list is a keyword",
			args: args{s: sexp.List(sexp.Atom([]byte{0x10})), kw: plusOnly},
			want: "(+)",
		},
		{
			name: "xpass: nested heads",
			args: args{s: sexp.List(sexp.List(sexp.Int(16), sexp.Int(3))), kw: plusOnly},
			want: "((+ 3))",
		},
		{
			name: "xpass: dotted tail atom stays literal",
			args: args{s: sexp.Cons(sexp.Int(1), sexp.Int(5)), kw: keyword.Default},
			want: "(q . 5)",
		},
		{
			name: "xpass: nil",
			args: args{s: sexp.Nil, kw: keyword.Default},
			want: "()",
		},
		{
			name: "xpass: nil element",
			args: args{s: sexp.List(sexp.Nil, sexp.Nil), kw: keyword.Default},
			want: "(() ())",
		},
		{
			name: "xpass: printable string",
			args: args{s: sexp.List(sexp.String("hello world")), kw: keyword.Default},
			want: `("hello world")`,
		},
		{
			name: "xpass: binary blob",
			args: args{s: sexp.List(sexp.Atom([]byte{0xde, 0xad, 0xbe, 0xef})), kw: keyword.Default},
			want: "(0xdeadbeef)",
		},
		{
			name: "xpass: non-minimal short atom is hex",
			args: args{s: sexp.Atom([]byte{0x00, 0x01}), kw: keyword.Default},
			want: "0x0001",
		},
		{
			name: "xpass: negative int",
			args: args{s: sexp.Atom([]byte{0xfb}), kw: keyword.Default},
			want: "-5",
		},
		{
			// data atoms that collide with an opcode are shown as that opcode,
			// even in argument position
			name: "xpass: data atoms colliding with keywords are substituted",
			args: args{s: sexp.List(sexp.Int(16), sexp.Int(1), sexp.Int(2)), kw: keyword.Default},
			want: "(+ q a)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Disassemble(tt.args.s, tt.args.kw)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("Disassemble() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDisassemble_RoundTrip(t *testing.T) {
	nodes := []*sexp.Node{
		sexp.List(sexp.Int(16), sexp.Int(1), sexp.Int(2)),
		sexp.Cons(sexp.Int(1), sexp.Int(200)),
		sexp.List(
			sexp.Int(-5),
			sexp.Atom([]byte{0x00}),
			sexp.Nil,
			sexp.String("hello"),
			sexp.Cons(sexp.Atom([]byte{0xde, 0xad, 0xbe, 0xef}), sexp.Int(1000)),
		),
		sexp.String("a b c"),
		sexp.Int(-129),
	}
	for _, n := range nodes {
		t.Run(n.String(), func(t *testing.T) {
			text, err := Disassemble(n, keyword.Default)
			if err != nil {
				t.Fatal(err)
			}
			got, err := Assemble(text, keyword.Default)
			if err != nil {
				t.Fatalf("assemble %q: %v", text, err)
			}
			if !sexp.Equal(got, n) {
				t.Fatalf("%q assembled to %v, want %v", text, got, n)
			}
		})
	}
}

func TestDisassemble_QuoteInsideText(t *testing.T) {
	// the writer does not escape delimiters, so this text does not read back
	// as the atom it came from
	atom := sexp.String(`a"b`)
	text, err := Disassemble(atom, keyword.Default)
	if err != nil {
		t.Fatal(err)
	}
	if text != `"a"b"` {
		t.Fatalf("got %s", text)
	}

	got, err := Assemble(text, keyword.Default)
	if err != nil {
		t.Fatal(err)
	}
	if !sexp.Equal(got, sexp.String("a")) {
		t.Fatalf("assembled to %v", got)
	}
}

func TestDisassembleHex(t *testing.T) {
	got, err := DisassembleHex("ff10ff01ff0280", plusOnly)
	if err != nil {
		t.Fatal(err)
	}
	if got != "(+ 1 2)" {
		t.Fatalf("got %q", got)
	}

	if _, err := DisassembleHex("ff10", plusOnly); err == nil {
		t.Fatal("truncated program accepted")
	}
}

func TestTypeForAtom(t *testing.T) {
	tests := []struct {
		name string
		atom []byte
		want Type
	}{
		{name: "empty", atom: []byte{}, want: TypeInt},
		{name: "small", atom: []byte{0x05}, want: TypeInt},
		{name: "negative", atom: []byte{0x80}, want: TypeInt},
		{name: "two byte int", atom: []byte{0x00, 0x80}, want: TypeInt},
		{name: "two byte max", atom: []byte{0x7f, 0xff}, want: TypeInt},
		{name: "zero byte", atom: []byte{0x00}, want: TypeHex},
		{name: "redundant sign byte", atom: []byte{0x00, 0x7f}, want: TypeHex},
		{name: "redundant negative sign byte", atom: []byte{0xff, 0x80}, want: TypeHex},
		{name: "ascii", atom: []byte("abc"), want: TypeQuotes},
		{name: "ascii control chars", atom: []byte("a\x01\n"), want: TypeQuotes},
		{name: "digits and punctuation", atom: []byte("١٢٣«»"), want: TypeQuotes},
		{name: "letters outside ascii", atom: []byte("héllo"), want: TypeHex},
		{name: "invalid utf-8", atom: []byte{0xff, 0xfe, 0xfd}, want: TypeHex},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TypeForAtom(tt.atom)
			if got != tt.want {
				t.Errorf("TypeForAtom(%x) = %v, want %v", tt.atom, got, tt.want)
			}
			if again := TypeForAtom(tt.atom); again != got {
				t.Errorf("TypeForAtom not deterministic")
			}
		})
	}
}

func TestTypeForAtom_ShortInts(t *testing.T) {
	for v := int64(-32768); v <= 32767; v++ {
		atom := sexp.Int(v).Atom
		if got := TypeForAtom(atom); got != TypeInt {
			t.Fatalf("TypeForAtom(%d) = %v", v, got)
		}
	}
}
