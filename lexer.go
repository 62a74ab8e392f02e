package clvmir

import (
	"unicode"
	"unicode/utf8"
)

// Token is one lexeme and the character offset where it starts.
type Token struct {
	Text   string
	Offset int
}

// TokenStream hands out tokens in order. It cannot be rewound.
type TokenStream struct {
	tokens []Token
	pos    int
}

// StreamOf makes a stream over already split tokens.
func StreamOf(tokens ...Token) *TokenStream {
	return &TokenStream{tokens: tokens}
}

// NewTokenStream tokenizes text.
func NewTokenStream(text string) (*TokenStream, error) {
	tokens, err := Tokenize(text)
	if err != nil {
		return nil, err
	}
	return StreamOf(tokens...), nil
}

// Next consumes the next token. ok is false once the stream is exhausted.
func (s *TokenStream) Next() (t Token, ok bool) {
	if s.pos >= len(s.tokens) {
		return Token{}, false
	}
	t = s.tokens[s.pos]
	s.pos++
	return t, true
}

func isPunctToken(r rune) bool {
	return r == '(' || r == '.' || r == ')'
}

func isDelimiter(r rune) bool {
	return r == '\\' || r == '"' || r == '\''
}

// Tokenize splits text into tokens, skipping whitespace and ';' comments.
// Delimited runs are kept whole, delimiters included, and no escapes are
// interpreted inside them. text must be valid UTF-8.
func Tokenize(text string) ([]Token, error) {
	if err := checkEncoding(text); err != nil {
		return nil, err
	}

	src := []rune(text)
	tokens := make([]Token, 0, len(src)/2)

	offset := 0
	for offset < len(src) {
		offset = consumeWhitespace(src, offset)
		if offset >= len(src) {
			break
		}

		c := src[offset]
		if isPunctToken(c) {
			tokens = append(tokens, Token{Text: string(c), Offset: offset})
			offset++
			continue
		}

		if isDelimiter(c) {
			start := offset
			offset++
			for offset < len(src) && src[offset] != c {
				offset++
			}
			if offset >= len(src) {
				return nil, &LexError{
					Err:    ErrUnterminatedString,
					Offset: start,
					Text:   string(src[start:]),
				}
			}
			offset++
			tokens = append(tokens, Token{Text: string(src[start:offset]), Offset: start})
			continue
		}

		start := offset
		offset = consumeUntilWhitespace(src, offset)
		tokens = append(tokens, Token{Text: string(src[start:offset]), Offset: start})
	}

	return tokens, nil
}

// consumeWhitespace also skips comments.
func consumeWhitespace(src []rune, offset int) int {
	for {
		for offset < len(src) && unicode.IsSpace(src[offset]) {
			offset++
		}
		if offset >= len(src) || src[offset] != ';' {
			return offset
		}
		for offset < len(src) && src[offset] != '\n' && src[offset] != '\r' {
			offset++
		}
	}
}

func consumeUntilWhitespace(src []rune, offset int) int {
	for offset < len(src) && !unicode.IsSpace(src[offset]) && src[offset] != ')' {
		offset++
	}
	return offset
}

// checkEncoding reports the first byte that is not part of a UTF-8 sequence.
// A literal U+FFFD is accepted.
func checkEncoding(text string) error {
	n := 0
	for i := 0; i < len(text); n++ {
		r, size := utf8.DecodeRuneInString(text[i:])
		if r == utf8.RuneError && size == 1 {
			return &LexError{Err: ErrInvalidUTF8, Offset: n, Text: text[i:]}
		}
		i += size
	}
	return nil
}
