package clvmir

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnterminatedString    = errors.New("unterminated string")
	ErrInvalidUTF8           = errors.New("invalid UTF-8")
	ErrUnexpectedEndOfStream = errors.New("unexpected end of stream")
	ErrMissingClosingParen   = errors.New("missing closing parenthesis")
	ErrIllegalDotExpression  = errors.New("illegal dot expression")
	ErrInvalidHex            = errors.New("invalid hex")
	ErrInvalidLiteral        = errors.New("invalid literal")
	ErrBadIRFormat           = errors.New("bad IR format")
	ErrBadIRShape            = errors.New("malformed IR node")
)

// LexError reports a tokenizing failure. Offset counts characters from the
// start of the source.
type LexError struct {
	Err    error
	Offset int
	Text   string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%v at offset %d: %q", e.Err, e.Offset, e.Text)
}

func (e *LexError) Unwrap() error { return e.Err }

// ParseError reports a failure to build an IR tree from tokens. Offset is -1
// when the stream ended before any position was known.
type ParseError struct {
	Err    error
	Offset int
	Token  string
}

func (e *ParseError) Error() string {
	if e.Offset < 0 {
		return e.Err.Error()
	}
	if e.Token == "" {
		return fmt.Sprintf("%v at offset %d", e.Err, e.Offset)
	}
	return fmt.Sprintf("%v at offset %d: %q", e.Err, e.Offset, e.Token)
}

func (e *ParseError) Unwrap() error { return e.Err }

// FormatError is returned by the writer for a node it cannot render.
type FormatError struct {
	Node *Node
}

func (e *FormatError) Error() string {
	if e.Node == nil {
		return ErrBadIRFormat.Error() + ": nil node"
	}
	return fmt.Sprintf("%v: type %v", ErrBadIRFormat, e.Node.Type)
}

func (e *FormatError) Unwrap() error { return ErrBadIRFormat }

// StructuralError is returned when an accessor meets a node of the wrong
// shape.
type StructuralError struct {
	Op  string
	Msg string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("%v: %s: %s", ErrBadIRShape, e.Op, e.Msg)
}

func (e *StructuralError) Unwrap() error { return ErrBadIRShape }

func structural(op, format string, args ...interface{}) error {
	return &StructuralError{Op: op, Msg: fmt.Sprintf(format, args...)}
}

// SourceError is a lex or parse error rendered against its source text.
type SourceError struct {
	Err     error
	Line    int
	Col     int
	Snippet string
}

func (e *SourceError) Error() string { return e.Snippet }

func (e *SourceError) Unwrap() error { return e.Err }

// WrapErrorWithSource returns err augmented with a snippet of src and a
// caret under the offending column. Errors that carry no source offset are
// returned unchanged.
func WrapErrorWithSource(err error, src string) error {
	var le *LexError
	if errors.As(err, &le) {
		line, col := lineCol(src, le.Offset)
		return &SourceError{Err: err, Line: line, Col: col, Snippet: snippet(src, "LEXICAL ERROR", line, col, le.Error())}
	}
	var pe *ParseError
	if errors.As(err, &pe) && pe.Offset >= 0 {
		line, col := lineCol(src, pe.Offset)
		return &SourceError{Err: err, Line: line, Col: col, Snippet: snippet(src, "PARSE ERROR", line, col, pe.Error())}
	}
	return err
}

// lineCol converts a character offset into 1-based line and column.
func lineCol(src string, offset int) (line, col int) {
	line, col = 1, 1
	i := 0
	for _, r := range src {
		if i >= offset {
			break
		}
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
		i++
	}
	return
}

// snippet shows at most one line of context on either side of line.
func snippet(src, header string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if line > len(lines) {
		line = len(lines)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s at %d:%d: %s\n\n", header, line, col, msg)

	from, to := line-1, line+1
	if from < 1 {
		from = 1
	}
	if to > len(lines) {
		to = len(lines)
	}
	width := len(fmt.Sprint(to))
	for i := from; i <= to; i++ {
		fmt.Fprintf(&sb, "  %*d | %s\n", width, i, lines[i-1])
		if i == line {
			fmt.Fprintf(&sb, "  %s | %s^\n", strings.Repeat(" ", width), strings.Repeat(" ", col-1))
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}
