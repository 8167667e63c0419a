// Package types defines the core data types shared by the HopeLang packages.
//
// This package contains type definitions for:
//   - Program: a parsed source file, the root of the AST
//   - Node, Statement, Expression: the closed set of AST node types
//   - Error: structured errors with codes grouped by kind
package types

// Program is the root of a parsed source text.
//
// A Program is immutable once returned by the parser and can be evaluated
// any number of times, also from multiple goroutines as long as each
// evaluation uses its own global environment.
type Program struct {
	Span
	Body   []Statement
	source string
}

// NewProgram creates a Program from its statements and original source.
func NewProgram(body []Statement, source string) *Program {
	return &Program{
		Span:   Span{Line: 1},
		Body:   body,
		source: source,
	}
}

// Source returns the original source code of the program.
func (p *Program) Source() string {
	return p.source
}

// String returns the program source.
func (p *Program) String() string {
	return p.source
}
