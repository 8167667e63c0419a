// Package parser implements the HopeLang lexer and parser.
//
// The parser is a hand-written recursive descent parser with one precedence
// level per function. Blocks are delimited by keywords (fn/if/while ... end)
// rather than braces, and parsing stops at the first error: there is no
// recovery and no partial AST.
//
// # Example
//
//	prog, err := parser.Parse("print 1 + 2")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, stmt := range prog.Body {
//	    fmt.Println(stmt.Kind())
//	}
package parser

import (
	"github.com/sandrolain/hopelang/pkg/types"
)

// Parse parses HopeLang source and returns the Program.
//
// The function tokenizes the input and builds the AST. If lexing or parsing
// fails, it returns a *types.Error carrying the offending line.
//
// Example:
//
//	prog, err := parser.Parse("x = 5")
//	if err != nil {
//	    fmt.Printf("parse error: %v\n", err)
//	    return
//	}
func Parse(src string) (*types.Program, error) {
	p, err := NewParser(src)
	if err != nil {
		return nil, err
	}
	return p.Parse()
}

// Compile is like Parse but accepts options.
func Compile(src string, opts ...CompileOption) (*types.Program, error) {
	p, err := NewParser(src, opts...)
	if err != nil {
		return nil, err
	}
	return p.Parse()
}

// CompileOption configures compilation behavior.
type CompileOption func(*CompileOptions)

// CompileOptions holds parser configuration.
type CompileOptions struct {
	// Keywords is the reserved word table handed to the lexer.
	// Defaults to DefaultKeywords().
	Keywords *Keywords
	// MaxDepth limits nesting of blocks and expressions. 0 means unlimited.
	MaxDepth int
}

// WithKeywords sets the keyword table.
func WithKeywords(k *Keywords) CompileOption {
	return func(opts *CompileOptions) {
		opts.Keywords = k
	}
}

// WithMaxDepth sets the maximum nesting depth.
func WithMaxDepth(depth int) CompileOption {
	return func(opts *CompileOptions) {
		opts.MaxDepth = depth
	}
}
