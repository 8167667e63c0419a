package parser

// TokenType represents the type of a lexical token.
type TokenType uint8

const (
	// Literals
	TokenNumber     TokenType = iota // 123
	TokenIdentifier                  // name
	TokenString                      // "hello"

	// Keywords
	TokenLet
	TokenFn
	TokenIf
	TokenElse
	TokenWhile
	TokenFor
	TokenReturn
	TokenEnd
	TokenPrint
	TokenImport

	// Keyword operators
	TokenAnd // and
	TokenOr  // or
	TokenNot // not, !

	// Operators and punctuation
	TokenBinaryOperator // + - * / % < > <= >= !=
	TokenEquals         // =
	TokenEquivalence    // ==
	TokenOpenParen      // (
	TokenCloseParen     // )
	TokenComma          // ,
	TokenDot            // .

	// Special tokens
	TokenEOF
)

// String returns a string representation of the token type.
func (tt TokenType) String() string {
	switch tt {
	case TokenNumber:
		return "(number)"
	case TokenIdentifier:
		return "(identifier)"
	case TokenString:
		return "(string)"
	case TokenLet:
		return "let"
	case TokenFn:
		return "fn"
	case TokenIf:
		return "if"
	case TokenElse:
		return "else"
	case TokenWhile:
		return "while"
	case TokenFor:
		return "for"
	case TokenReturn:
		return "return"
	case TokenEnd:
		return "end"
	case TokenPrint:
		return "print"
	case TokenImport:
		return "import"
	case TokenAnd:
		return "and"
	case TokenOr:
		return "or"
	case TokenNot:
		return "not"
	case TokenBinaryOperator:
		return "(operator)"
	case TokenEquals:
		return "="
	case TokenEquivalence:
		return "=="
	case TokenOpenParen:
		return "("
	case TokenCloseParen:
		return ")"
	case TokenComma:
		return ","
	case TokenDot:
		return "."
	case TokenEOF:
		return "(eof)"
	default:
		return "(unknown)"
	}
}

// Token represents a lexical token in HopeLang source.
type Token struct {
	Type  TokenType // Type of the token
	Value string    // Literal text of the token
	Line  int       // 1-based line where the token starts
}

// lookupSymbol1 returns the token type for single-character punctuation.
func lookupSymbol1(r rune) (TokenType, bool) {
	switch r {
	case '(':
		return TokenOpenParen, true
	case ')':
		return TokenCloseParen, true
	case ',':
		return TokenComma, true
	case '.':
		return TokenDot, true
	default:
		return 0, false
	}
}
