package parser

import (
	"fmt"
	"strconv"

	"github.com/sandrolain/hopelang/pkg/types"
)

// Parser builds a Program from a token stream with one token of lookahead.
type Parser struct {
	tokens []Token
	pos    int
	depth  int
	source string
	opts   CompileOptions
}

// NewParser tokenizes input and returns a parser positioned at its first
// token. Lexing errors are reported here.
func NewParser(input string, opts ...CompileOption) (*Parser, error) {
	var options CompileOptions
	for _, opt := range opts {
		opt(&options)
	}

	tokens, err := NewLexer(input, options.Keywords).Tokenize()
	if err != nil {
		return nil, err
	}

	return &Parser{
		tokens: tokens,
		source: input,
		opts:   options,
	}, nil
}

// Parse parses the whole token stream.
func (p *Parser) Parse() (*types.Program, error) {
	body := []types.Statement{}
	for p.peek().Type != TokenEOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	return types.NewProgram(body, p.source), nil
}

// peek returns the current token without consuming it.
func (p *Parser) peek() Token {
	return p.tokens[p.pos]
}

// advance consumes and returns the current token. The EOF token is never
// consumed past.
func (p *Parser) advance() Token {
	tok := p.tokens[p.pos]
	if tok.Type != TokenEOF {
		p.pos++
	}
	return tok
}

// expect consumes the current token if it has type tt.
func (p *Parser) expect(tt TokenType, context string) (Token, error) {
	tok := p.peek()
	if tok.Type != tt {
		return tok, p.errorAt(tok, types.ErrExpectedToken,
			fmt.Sprintf("%s: expected %s but got %s %q", context, tt, tok.Type, tok.Value))
	}
	return p.advance(), nil
}

// errorAt creates a parser error located at tok.
func (p *Parser) errorAt(tok Token, code types.ErrorCode, message string) error {
	return types.NewError(code, message, tok.Line).WithToken(tok.Value)
}

// enter tracks nesting depth when MaxDepth is set.
func (p *Parser) enter() error {
	p.depth++
	if p.opts.MaxDepth > 0 && p.depth > p.opts.MaxDepth {
		tok := p.peek()
		return p.errorAt(tok, types.ErrNestingTooDeep,
			fmt.Sprintf("nesting deeper than %d levels", p.opts.MaxDepth))
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

// Statements

func (p *Parser) parseStatement() (types.Statement, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	switch p.peek().Type {
	case TokenLet:
		return p.parseVarDeclaration()
	case TokenFn:
		return p.parseFunctionDeclaration()
	case TokenIf:
		return p.parseIfStatement()
	case TokenWhile:
		return p.parseWhileStatement()
	case TokenReturn:
		return p.parseReturnStatement()
	case TokenPrint:
		return p.parsePrintStatement()
	case TokenImport:
		return p.parseImportStatement()
	default:
		// Identifiers land here too: "x = 5" and "f()" are expression statements.
		return p.parseExpression()
	}
}

// parseBlock parses statements until one of the terminators (or EOF) is the
// current token. The terminator is not consumed.
func (p *Parser) parseBlock(terminators ...TokenType) ([]types.Statement, error) {
	body := []types.Statement{}
	for {
		tt := p.peek().Type
		if tt == TokenEOF {
			return body, nil
		}
		for _, term := range terminators {
			if tt == term {
				return body, nil
			}
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
}

// let name [= expr]
func (p *Parser) parseVarDeclaration() (types.Statement, error) {
	kw := p.advance()
	name, err := p.expect(TokenIdentifier, "expected identifier name following let")
	if err != nil {
		return nil, err
	}

	decl := &types.VarDeclaration{Span: types.Span{Line: kw.Line}, Name: name.Value}
	if p.peek().Type == TokenEquals {
		p.advance()
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		decl.Value = value
	}
	return decl, nil
}

// fn name(a, b) ... end
func (p *Parser) parseFunctionDeclaration() (types.Statement, error) {
	kw := p.advance()
	name, err := p.expect(TokenIdentifier, "expected function name following fn keyword")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenOpenParen, "expected '(' following function name"); err != nil {
		return nil, err
	}

	params := []string{}
	if p.peek().Type != TokenCloseParen {
		for {
			param, err := p.expect(TokenIdentifier, "expected parameter name")
			if err != nil {
				return nil, err
			}
			params = append(params, param.Value)
			if p.peek().Type != TokenComma {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(TokenCloseParen, "expected ')' following function parameters"); err != nil {
		return nil, err
	}

	body, err := p.parseBlock(TokenEnd)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenEnd, "expected 'end' following function body"); err != nil {
		return nil, err
	}

	return &types.FunctionDeclaration{
		Span:   types.Span{Line: kw.Line},
		Name:   name.Value,
		Params: params,
		Body:   body,
	}, nil
}

// if cond ... [else ...] end
func (p *Parser) parseIfStatement() (types.Statement, error) {
	kw := p.advance()
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock(TokenEnd, TokenElse)
	if err != nil {
		return nil, err
	}

	stmt := &types.IfStatement{Span: types.Span{Line: kw.Line}, Condition: cond, Body: body}
	if p.peek().Type == TokenElse {
		p.advance()
		elseBody, err := p.parseBlock(TokenEnd)
		if err != nil {
			return nil, err
		}
		stmt.Else = elseBody
	}

	if _, err := p.expect(TokenEnd, "expected 'end' following if statement"); err != nil {
		return nil, err
	}
	return stmt, nil
}

// while cond ... end
func (p *Parser) parseWhileStatement() (types.Statement, error) {
	kw := p.advance()
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock(TokenEnd)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenEnd, "expected 'end' following while loop"); err != nil {
		return nil, err
	}
	return &types.WhileStatement{Span: types.Span{Line: kw.Line}, Condition: cond, Body: body}, nil
}

// return expr
func (p *Parser) parseReturnStatement() (types.Statement, error) {
	kw := p.advance()
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &types.ReturnStatement{Span: types.Span{Line: kw.Line}, Value: value}, nil
}

// print a, b, ...  is sugar for print(a, b, ...).
func (p *Parser) parsePrintStatement() (types.Statement, error) {
	kw := p.advance()
	span := types.Span{Line: kw.Line}

	args := []types.Expression{}
	if tt := p.peek().Type; tt != TokenEnd && tt != TokenEOF {
		var err error
		args, err = p.parseArgumentList()
		if err != nil {
			return nil, err
		}
	}

	return &types.CallExpr{
		Span:   span,
		Callee: &types.Identifier{Span: span, Name: "print"},
		Args:   args,
	}, nil
}

// import "name"
func (p *Parser) parseImportStatement() (types.Statement, error) {
	kw := p.advance()
	name, err := p.expect(TokenString, "expected string after import")
	if err != nil {
		return nil, err
	}
	return &types.ImportStatement{Span: types.Span{Line: kw.Line}, Module: name.Value}, nil
}

// Expressions, loosest to tightest.

func (p *Parser) parseExpression() (types.Expression, error) {
	return p.parseAssignment()
}

// parseAssignment is right-associative: a = b = c is a = (b = c).
func (p *Parser) parseAssignment() (types.Expression, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}

	if p.peek().Type == TokenEquals {
		p.advance()
		value, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		return &types.AssignmentExpr{Span: types.Span{Line: left.Pos()}, Target: left, Value: value}, nil
	}
	return left, nil
}

func (p *Parser) parseEquality() (types.Expression, error) {
	return p.parseBinaryLevel(p.parseRelational, isEqualityOperator)
}

func (p *Parser) parseRelational() (types.Expression, error) {
	return p.parseBinaryLevel(p.parseAdditive, isRelationalOperator)
}

func (p *Parser) parseAdditive() (types.Expression, error) {
	return p.parseBinaryLevel(p.parseMultiplicative, isAdditiveOperator)
}

func (p *Parser) parseMultiplicative() (types.Expression, error) {
	return p.parseBinaryLevel(p.parseCallMember, isMultiplicativeOperator)
}

// parseBinaryLevel parses a left-associative chain of operators accepted by
// match, with operands parsed by next.
func (p *Parser) parseBinaryLevel(next func() (types.Expression, error), match func(Token) bool) (types.Expression, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for match(p.peek()) {
		op := p.advance()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &types.BinaryExpr{
			Span:     types.Span{Line: left.Pos()},
			Left:     left,
			Right:    right,
			Operator: op.Value,
		}
	}
	return left, nil
}

// parseCallMember parses postfix member accesses and calls.
func (p *Parser) parseCallMember() (types.Expression, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		switch p.peek().Type {
		case TokenDot:
			p.advance()
			prop := p.peek()
			if prop.Type != TokenIdentifier {
				return nil, p.errorAt(prop, types.ErrInvalidMember,
					"cannot use dot operator without right hand side being an identifier")
			}
			p.advance()
			expr = &types.MemberExpr{
				Span:     types.Span{Line: expr.Pos()},
				Object:   expr,
				Property: &types.Identifier{Span: types.Span{Line: prop.Line}, Name: prop.Value},
			}
		case TokenOpenParen:
			args, err := p.parseCallArgs()
			if err != nil {
				return nil, err
			}
			expr = &types.CallExpr{Span: types.Span{Line: expr.Pos()}, Callee: expr, Args: args}
		default:
			return expr, nil
		}
	}
}

// ( args )
func (p *Parser) parseCallArgs() ([]types.Expression, error) {
	if _, err := p.expect(TokenOpenParen, "expected open parenthesis"); err != nil {
		return nil, err
	}
	args := []types.Expression{}
	if p.peek().Type != TokenCloseParen {
		var err error
		args, err = p.parseArgumentList()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(TokenCloseParen, "missing closing parenthesis inside arguments list"); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) parseArgumentList() ([]types.Expression, error) {
	first, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	args := []types.Expression{first}
	for p.peek().Type == TokenComma {
		p.advance()
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return args, nil
}

func (p *Parser) parsePrimary() (types.Expression, error) {
	tok := p.peek()
	span := types.Span{Line: tok.Line}

	switch tok.Type {
	case TokenIdentifier:
		p.advance()
		return &types.Identifier{Span: span, Name: tok.Value}, nil
	case TokenNumber:
		p.advance()
		// Digit runs too long for float64 become +Inf, like parseFloat.
		n, _ := strconv.ParseFloat(tok.Value, 64)
		return &types.NumericLiteral{Span: span, Value: n}, nil
	case TokenString:
		p.advance()
		return &types.StringLiteral{Span: span, Value: tok.Value}, nil
	case TokenOpenParen:
		p.advance()
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenCloseParen, "unexpected token inside parenthesised expression"); err != nil {
			return nil, err
		}
		return value, nil
	default:
		return nil, p.errorAt(tok, types.ErrUnexpectedToken,
			fmt.Sprintf("unexpected token found during parsing: %s %q", tok.Type, tok.Value))
	}
}

// Operator sets

func isEqualityOperator(t Token) bool {
	return t.Type == TokenEquivalence || (t.Type == TokenBinaryOperator && t.Value == "!=")
}

func isRelationalOperator(t Token) bool {
	if t.Type != TokenBinaryOperator {
		return false
	}
	switch t.Value {
	case "<", ">", "<=", ">=":
		return true
	}
	return false
}

func isAdditiveOperator(t Token) bool {
	return t.Type == TokenBinaryOperator && (t.Value == "+" || t.Value == "-")
}

func isMultiplicativeOperator(t Token) bool {
	if t.Type != TokenBinaryOperator {
		return false
	}
	switch t.Value {
	case "*", "/", "%":
		return true
	}
	return false
}
