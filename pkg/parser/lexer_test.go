package parser_test

import (
	"reflect"
	"strconv"
	"testing"

	"github.com/sandrolain/hopelang/pkg/parser"
	"github.com/sandrolain/hopelang/pkg/types"
)

type lexerTestCase struct {
	name     string
	input    string
	expected []parser.Token // EOF token excluded
}

func runLexerTests(t *testing.T, tests []lexerTestCase) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := parser.Tokenize(tt.input)
			if err != nil {
				t.Fatalf("Tokenize(%q) failed: %v", tt.input, err)
			}
			if len(tokens) == 0 || tokens[len(tokens)-1].Type != parser.TokenEOF {
				t.Fatalf("token stream not terminated by EOF: %v", tokens)
			}
			got := tokens[:len(tokens)-1]
			if len(got) == 0 && len(tt.expected) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Tokenize(%q)\n got: %v\nwant: %v", tt.input, got, tt.expected)
			}
		})
	}
}

func tok(tt parser.TokenType, value string, line int) parser.Token {
	return parser.Token{Type: tt, Value: value, Line: line}
}

func TestLexerPunctuationAndOperators(t *testing.T) {
	tests := []lexerTestCase{
		{
			name:  "punctuation",
			input: "( ) , .",
			expected: []parser.Token{
				tok(parser.TokenOpenParen, "(", 1),
				tok(parser.TokenCloseParen, ")", 1),
				tok(parser.TokenComma, ",", 1),
				tok(parser.TokenDot, ".", 1),
			},
		},
		{
			name:  "arithmetic",
			input: "+-*/%",
			expected: []parser.Token{
				tok(parser.TokenBinaryOperator, "+", 1),
				tok(parser.TokenBinaryOperator, "-", 1),
				tok(parser.TokenBinaryOperator, "*", 1),
				tok(parser.TokenBinaryOperator, "/", 1),
				tok(parser.TokenBinaryOperator, "%", 1),
			},
		},
		{
			name:  "equals versus equivalence",
			input: "= == ===",
			expected: []parser.Token{
				tok(parser.TokenEquals, "=", 1),
				tok(parser.TokenEquivalence, "==", 1),
				tok(parser.TokenEquivalence, "==", 1),
				tok(parser.TokenEquals, "=", 1),
			},
		},
		{
			name:  "relational",
			input: "< > <= >=",
			expected: []parser.Token{
				tok(parser.TokenBinaryOperator, "<", 1),
				tok(parser.TokenBinaryOperator, ">", 1),
				tok(parser.TokenBinaryOperator, "<=", 1),
				tok(parser.TokenBinaryOperator, ">=", 1),
			},
		},
		{
			name:  "bang",
			input: "! !=",
			expected: []parser.Token{
				tok(parser.TokenNot, "!", 1),
				tok(parser.TokenBinaryOperator, "!=", 1),
			},
		},
	}

	runLexerTests(t, tests)
}

func TestLexerLiterals(t *testing.T) {
	tests := []lexerTestCase{
		{
			name:     "integer",
			input:    "12345",
			expected: []parser.Token{tok(parser.TokenNumber, "12345", 1)},
		},
		{
			name:  "no decimal point",
			input: "1.5",
			expected: []parser.Token{
				tok(parser.TokenNumber, "1", 1),
				tok(parser.TokenDot, ".", 1),
				tok(parser.TokenNumber, "5", 1),
			},
		},
		{
			name:  "minus is not part of the literal",
			input: "-7",
			expected: []parser.Token{
				tok(parser.TokenBinaryOperator, "-", 1),
				tok(parser.TokenNumber, "7", 1),
			},
		},
		{
			name:     "string",
			input:    `"hello world"`,
			expected: []parser.Token{tok(parser.TokenString, "hello world", 1)},
		},
		{
			name:     "empty string",
			input:    `""`,
			expected: []parser.Token{tok(parser.TokenString, "", 1)},
		},
		{
			name:     "no escapes",
			input:    `"a\nb"`,
			expected: []parser.Token{tok(parser.TokenString, `a\nb`, 1)},
		},
		{
			name:  "newline inside string",
			input: "\"a\nb\" x",
			expected: []parser.Token{
				tok(parser.TokenString, "a\nb", 1),
				tok(parser.TokenIdentifier, "x", 2),
			},
		},
		{
			name:     "unterminated string",
			input:    `"abc def`,
			expected: []parser.Token{tok(parser.TokenString, "abc def", 1)},
		},
	}

	runLexerTests(t, tests)
}

func TestLexerIdentifiersAndKeywords(t *testing.T) {
	tests := []lexerTestCase{
		{
			name:  "keywords",
			input: "fn if else while for return end and or not print import",
			expected: []parser.Token{
				tok(parser.TokenFn, "fn", 1),
				tok(parser.TokenIf, "if", 1),
				tok(parser.TokenElse, "else", 1),
				tok(parser.TokenWhile, "while", 1),
				tok(parser.TokenFor, "for", 1),
				tok(parser.TokenReturn, "return", 1),
				tok(parser.TokenEnd, "end", 1),
				tok(parser.TokenAnd, "and", 1),
				tok(parser.TokenOr, "or", 1),
				tok(parser.TokenNot, "not", 1),
				tok(parser.TokenPrint, "print", 1),
				tok(parser.TokenImport, "import", 1),
			},
		},
		{
			name:     "let is an identifier",
			input:    "let",
			expected: []parser.Token{tok(parser.TokenIdentifier, "let", 1)},
		},
		{
			name:     "identifier with digits and underscores",
			input:    "a_1b2",
			expected: []parser.Token{tok(parser.TokenIdentifier, "a_1b2", 1)},
		},
		{
			name:     "keyword prefix",
			input:    "ending",
			expected: []parser.Token{tok(parser.TokenIdentifier, "ending", 1)},
		},
		{
			name:     "unicode letters",
			input:    "città",
			expected: []parser.Token{tok(parser.TokenIdentifier, "città", 1)},
		},
		{
			name:  "digit then letters",
			input: "1abc",
			expected: []parser.Token{
				tok(parser.TokenNumber, "1", 1),
				tok(parser.TokenIdentifier, "abc", 1),
			},
		},
	}

	runLexerTests(t, tests)
}

func TestLexerWhitespaceAndComments(t *testing.T) {
	tests := []lexerTestCase{
		{
			name:     "mixed whitespace",
			input:    " \t\r\n x",
			expected: []parser.Token{tok(parser.TokenIdentifier, "x", 2)},
		},
		{
			name:  "comment to end of line",
			input: "a # comment ( \" 1\nb",
			expected: []parser.Token{
				tok(parser.TokenIdentifier, "a", 1),
				tok(parser.TokenIdentifier, "b", 2),
			},
		},
		{
			name:     "comment at end of input",
			input:    "a # trailing",
			expected: []parser.Token{tok(parser.TokenIdentifier, "a", 1)},
		},
		{
			name:  "consecutive comments",
			input: "# one\n# two\n\nx",
			expected: []parser.Token{
				tok(parser.TokenIdentifier, "x", 4),
			},
		},
		{
			name:     "empty input",
			input:    "",
			expected: nil,
		},
	}

	runLexerTests(t, tests)
}

func TestLexerLines(t *testing.T) {
	tokens, err := parser.Tokenize("x = 1\n\nprint x\n")
	if err != nil {
		t.Fatal(err)
	}
	wantLines := []int{1, 1, 1, 3, 3, 4}
	if len(tokens) != len(wantLines) {
		t.Fatalf("got %d tokens, want %d: %v", len(tokens), len(wantLines), tokens)
	}
	for i, want := range wantLines {
		if tokens[i].Line != want {
			t.Errorf("token %d (%v) on line %d, want %d", i, tokens[i], tokens[i].Line, want)
		}
	}
	eof := tokens[len(tokens)-1]
	if eof.Type != parser.TokenEOF || eof.Value != types.EOFText {
		t.Errorf("last token = %v, want EOF", eof)
	}
}

func TestLexerErrors(t *testing.T) {
	tests := []struct {
		input string
		char  string
		line  int
	}{
		{"x = 1 @", "@", 1},
		{"\n\n$", "$", 3},
		{"a & b", "&", 1},
		{"{}", "{", 1},
		{"'single'", "'", 1},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := parser.Tokenize(tt.input)
			if !types.IsKind(err, types.KindLexError) {
				t.Fatalf("expected LexError, got %v", err)
			}
			herr := err.(*types.Error)
			if herr.Token != tt.char || herr.Line != tt.line {
				t.Errorf("got token %q line %d, want %q line %d", herr.Token, herr.Line, tt.char, tt.line)
			}
		})
	}
}

func TestLexerCustomKeywords(t *testing.T) {
	kw := parser.DefaultKeywords().With(map[string]parser.TokenType{"let": parser.TokenLet})
	tokens, err := parser.NewLexer("let x", kw).Tokenize()
	if err != nil {
		t.Fatal(err)
	}
	if tokens[0].Type != parser.TokenLet {
		t.Errorf("let lexed as %v", tokens[0].Type)
	}

	// The default table is unaffected.
	tokens, _ = parser.Tokenize("let x")
	if tokens[0].Type != parser.TokenIdentifier {
		t.Errorf("default table maps let to %v", tokens[0].Type)
	}
}

func TestKeywordsTable(t *testing.T) {
	src := map[string]parser.TokenType{"do": parser.TokenFn}
	kw := parser.NewKeywords(src)
	src["do"] = parser.TokenEnd

	if tt, ok := kw.Lookup("do"); !ok || tt != parser.TokenFn {
		t.Errorf("Lookup(do) = %v, %v; table must copy its input", tt, ok)
	}
	if _, ok := kw.Lookup("fn"); ok {
		t.Error("custom table should not contain fn")
	}
	words := parser.DefaultKeywords().Words()
	want := []string{"and", "else", "end", "fn", "for", "if", "import", "not", "or", "print", "return", "while"}
	if !reflect.DeepEqual(words, want) {
		t.Errorf("Words() = %v", words)
	}
}

func TestLexerNumberDigitsRoundTrip(t *testing.T) {
	for _, n := range []uint64{0, 7, 42, 1000000, 18446744073709551615} {
		text := strconv.FormatUint(n, 10)
		tokens, err := parser.Tokenize(text)
		if err != nil {
			t.Fatal(err)
		}
		if tokens[0].Type != parser.TokenNumber || tokens[0].Value != text {
			t.Errorf("Tokenize(%q) = %v", text, tokens[0])
		}
	}
}

func TestTokenTypeString(t *testing.T) {
	if parser.TokenEnd.String() != "end" || parser.TokenEOF.String() != "(eof)" || parser.TokenType(255).String() != "(unknown)" {
		t.Error("unexpected token type names")
	}
}
