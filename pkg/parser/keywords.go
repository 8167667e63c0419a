package parser

import "sort"

// Keywords is an immutable table mapping reserved words to token types.
//
// A Keywords value is built once and handed to the lexer; it is never
// modified afterwards, so one table can be shared by any number of lexers.
type Keywords struct {
	words map[string]TokenType
}

// DefaultKeywords returns the standard keyword table:
//
//	fn if else while for return end and or not print import
//
// "let" is not reserved by default and lexes as an identifier.
func DefaultKeywords() *Keywords {
	return NewKeywords(map[string]TokenType{
		"fn":     TokenFn,
		"if":     TokenIf,
		"else":   TokenElse,
		"while":  TokenWhile,
		"for":    TokenFor,
		"return": TokenReturn,
		"end":    TokenEnd,
		"and":    TokenAnd,
		"or":     TokenOr,
		"not":    TokenNot,
		"print":  TokenPrint,
		"import": TokenImport,
	})
}

// NewKeywords builds a keyword table from words. The map is copied.
func NewKeywords(words map[string]TokenType) *Keywords {
	m := make(map[string]TokenType, len(words))
	for w, tt := range words {
		m[w] = tt
	}
	return &Keywords{words: m}
}

// With returns a copy of the table with additional or replaced entries.
func (k *Keywords) With(words map[string]TokenType) *Keywords {
	m := make(map[string]TokenType, len(k.words)+len(words))
	for w, tt := range k.words {
		m[w] = tt
	}
	for w, tt := range words {
		m[w] = tt
	}
	return &Keywords{words: m}
}

// Lookup returns the token type for a reserved word.
func (k *Keywords) Lookup(word string) (TokenType, bool) {
	if k == nil {
		return 0, false
	}
	tt, ok := k.words[word]
	return tt, ok
}

// Words returns the reserved words in sorted order.
func (k *Keywords) Words() []string {
	out := make([]string, 0, len(k.words))
	for w := range k.words {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}
