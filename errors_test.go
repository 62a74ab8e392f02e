package clvmir

import (
	"errors"
	"strings"
	"testing"
)

func TestWrapErrorWithSource(t *testing.T) {
	src := "(a\n  b . c d)\n(e)"
	_, err := ReadIR(src)
	if !errors.Is(err, ErrIllegalDotExpression) {
		t.Fatalf("got %v", err)
	}

	wrapped := WrapErrorWithSource(err, src).Error()
	want := strings.Join([]string{
		`PARSE ERROR at 2:5: illegal dot expression at offset 7: "."`,
		"",
		"  1 | (a",
		"  2 |   b . c d)",
		"    |     ^",
		"  3 | (e)",
	}, "\n")
	if wrapped != want {
		t.Fatalf("got\n%s\nwant\n%s", wrapped, want)
	}
}

func TestWrapErrorWithSource_KeepsChain(t *testing.T) {
	src := "(a 0xzz)"
	_, err := ReadIR(src)
	wrapped := WrapErrorWithSource(err, src)

	if !errors.Is(wrapped, ErrInvalidHex) {
		t.Fatalf("errors.Is(%v, ErrInvalidHex) = false", wrapped)
	}
	var pe *ParseError
	if !errors.As(wrapped, &pe) || pe.Offset != 3 || pe.Token != "0xzz" {
		t.Fatalf("errors.As gave %+v", pe)
	}
	var se *SourceError
	if !errors.As(wrapped, &se) || se.Line != 1 || se.Col != 4 {
		t.Fatalf("errors.As gave %+v", se)
	}
}

func TestWrapErrorWithSource_Lex(t *testing.T) {
	src := `(a "b`
	_, err := ReadIR(src)
	wrapped := WrapErrorWithSource(err, src).Error()
	if !strings.HasPrefix(wrapped, "LEXICAL ERROR at 1:4: unterminated string") {
		t.Fatalf("got %s", wrapped)
	}
	if !strings.HasSuffix(wrapped, "    ^") {
		t.Fatalf("caret misplaced:\n%s", wrapped)
	}
}

func TestWrapErrorWithSource_Passthrough(t *testing.T) {
	_, err := ReadIR("")
	if got := WrapErrorWithSource(err, ""); got != err {
		t.Fatalf("got %v", got)
	}

	other := errors.New("boom")
	if got := WrapErrorWithSource(other, "x"); got != other {
		t.Fatalf("got %v", got)
	}
}

func TestLineCol(t *testing.T) {
	tests := []struct {
		src       string
		offset    int
		line, col int
	}{
		{"abc", 0, 1, 1},
		{"abc", 2, 1, 3},
		{"a\nb", 2, 2, 1},
		{"é\nxy", 3, 2, 2},
	}
	for _, tt := range tests {
		line, col := lineCol(tt.src, tt.offset)
		if line != tt.line || col != tt.col {
			t.Errorf("lineCol(%q, %d) = %d:%d, want %d:%d", tt.src, tt.offset, line, col, tt.line, tt.col)
		}
	}
}
