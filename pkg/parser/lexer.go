package parser

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/sandrolain/hopelang/pkg/types"
)

const eof = -1

// Lexer converts HopeLang source into a sequence of tokens.
// The implementation is based on Rob Pike's "Lexical Scanning in Go" technique,
// driven to completion by Tokenize.
type Lexer struct {
	input    string    // Input string being scanned
	length   int       // Length of input string
	start    int       // Start position of current token
	current  int       // Current position in input
	width    int       // Width of last rune read
	line     int       // Current line, 1-based
	tokLine  int       // Line where the current token starts
	keywords *Keywords // Reserved words
}

// NewLexer creates a new lexer for input using the given keyword table.
// A nil table means DefaultKeywords.
func NewLexer(input string, keywords *Keywords) *Lexer {
	if keywords == nil {
		keywords = DefaultKeywords()
	}
	return &Lexer{
		input:    input,
		length:   len(input),
		line:     1,
		keywords: keywords,
	}
}

// Tokenize lexes src with the default keyword table.
func Tokenize(src string) ([]Token, error) {
	return NewLexer(src, nil).Tokenize()
}

// Tokenize scans the whole input and returns its tokens, always terminated by
// a TokenEOF. It fails on the first character that starts no token.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens, nil
		}
	}
}

// next returns the next token from the input.
func (l *Lexer) next() (Token, error) {
	l.skipWhitespace()

	l.tokLine = l.line
	ch := l.nextRune()
	if ch == eof {
		return Token{Type: TokenEOF, Value: types.EOFText, Line: l.line}, nil
	}

	if tt, ok := lookupSymbol1(ch); ok {
		return l.newToken(tt), nil
	}

	switch ch {
	case '+', '-', '*', '/', '%':
		return l.newToken(TokenBinaryOperator), nil
	case '=':
		if l.acceptRune('=') {
			return l.newToken(TokenEquivalence), nil
		}
		return l.newToken(TokenEquals), nil
	case '<', '>':
		l.acceptRune('=')
		return l.newToken(TokenBinaryOperator), nil
	case '!':
		if l.acceptRune('=') {
			return l.newToken(TokenBinaryOperator), nil
		}
		return l.newToken(TokenNot), nil
	case '"':
		l.ignore()
		return l.scanString(ch), nil
	}

	if isDigit(ch) {
		l.acceptAll(isDigit)
		return l.newToken(TokenNumber), nil
	}

	if isAlpha(ch) {
		l.acceptAll(isIdentRune)
		t := l.newToken(TokenIdentifier)
		if tt, ok := l.keywords.Lookup(t.Value); ok {
			t.Type = tt
		}
		return t, nil
	}

	return Token{}, types.NewError(types.ErrUnrecognizedChar,
		fmt.Sprintf("unrecognized character found in source: %q", ch), l.tokLine).
		WithToken(string(ch))
}

// scanString reads a string literal from the current position.
// The opening quote has already been consumed. There are no escape sequences:
// everything up to the closing quote, or the end of input, is the literal.
func (l *Lexer) scanString(quote rune) Token {
	for {
		r := l.nextRune()
		if r == eof {
			return l.newToken(TokenString)
		}
		if r == quote {
			break
		}
	}

	l.backup()
	t := l.newToken(TokenString)
	l.acceptRune(quote)
	l.ignore()
	return t
}

// Helper methods

func (l *Lexer) newToken(tt TokenType) Token {
	t := Token{
		Type:  tt,
		Value: l.input[l.start:l.current],
		Line:  l.tokLine,
	}
	l.width = 0
	l.start = l.current
	return t
}

func (l *Lexer) nextRune() rune {
	if l.current >= l.length {
		l.width = 0
		return eof
	}

	r, w := utf8.DecodeRuneInString(l.input[l.current:])
	l.width = w
	l.current += w
	if r == '\n' {
		l.line++
	}
	return r
}

func (l *Lexer) backup() {
	if l.width > 0 && l.input[l.current-l.width] == '\n' {
		l.line--
	}
	l.current -= l.width
	l.width = 0
}

func (l *Lexer) ignore() {
	l.start = l.current
}

func (l *Lexer) acceptRune(r rune) bool {
	return l.accept(func(c rune) bool {
		return c == r
	})
}

func (l *Lexer) accept(isValid func(rune) bool) bool {
	if isValid(l.nextRune()) {
		return true
	}
	l.backup()
	return false
}

func (l *Lexer) acceptAll(isValid func(rune) bool) bool {
	var matched bool
	for l.accept(isValid) {
		matched = true
	}
	return matched
}

// skipWhitespace skips blanks and '#' line comments. The newline ending a
// comment is left for the next round so the line counter sees it once.
func (l *Lexer) skipWhitespace() {
	for {
		l.acceptAll(isWhitespace)
		if !l.acceptRune('#') {
			l.ignore()
			return
		}
		l.acceptAll(func(r rune) bool { return r != '\n' && r != eof })
	}
}

// Character classification functions

func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r':
		return true
	default:
		return false
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// isAlpha reports whether r is a letter with distinct upper and lower case
// forms.
func isAlpha(r rune) bool {
	return r != eof && unicode.ToUpper(r) != unicode.ToLower(r)
}

func isIdentRune(r rune) bool {
	return isAlpha(r) || isDigit(r) || r == '_'
}
