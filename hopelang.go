// Package hopelang is the entry point for embedding the HopeLang
// interpreter: a small dynamically typed scripting language with
// implicit declaration, closures and host-provided native modules.
//
// # Quick Start
//
//	// Run a program, printing to stdout
//	_, err := hopelang.Run(ctx, `print "hello"`)
//
//	// Capture what the program prints
//	lines, err := hopelang.Output("import \"blocode\"\nmove(10)")
//	// lines == []string{">> MOVE 10"}
//
//	// Re-run the same sources many times without reparsing
//	r := hopelang.NewRunner(128, evaluator.WithTimeout(time.Second))
//	lines, err = r.Output(ctx, src)
//
// # More Information
//
//   - Parser: github.com/sandrolain/hopelang/pkg/parser
//   - Evaluator: github.com/sandrolain/hopelang/pkg/evaluator
//   - Values and environments: github.com/sandrolain/hopelang/pkg/runtime
//   - Native modules: github.com/sandrolain/hopelang/pkg/ext
package hopelang

import (
	"context"
	"fmt"

	"github.com/sandrolain/hopelang/pkg/cache"
	"github.com/sandrolain/hopelang/pkg/evaluator"
	"github.com/sandrolain/hopelang/pkg/ext"
	"github.com/sandrolain/hopelang/pkg/parser"
	"github.com/sandrolain/hopelang/pkg/runtime"
	"github.com/sandrolain/hopelang/pkg/types"
)

// Version returns the current version of HopeLang.
func Version() string {
	return "v0.1.0-dev"
}

// Parse parses source into a Program.
func Parse(src string, opts ...parser.CompileOption) (*types.Program, error) {
	return parser.Compile(src, opts...)
}

// MustParse is like Parse but panics if the source cannot be parsed.
// It simplifies safe initialization of global variables.
func MustParse(src string) *types.Program {
	prog, err := Parse(src)
	if err != nil {
		panic(fmt.Sprintf("hopelang: Parse(%q): %v", src, err))
	}
	return prog
}

// Run parses and evaluates src and returns the value of its last statement.
// Every built-in module is importable unless opts install another registry.
func Run(ctx context.Context, src string, opts ...evaluator.EvalOption) (runtime.Value, error) {
	prog, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return eval(ctx, prog, opts)
}

// Output runs src and returns the lines it printed. On error the lines
// printed before the failure are returned with it.
func Output(src string, opts ...evaluator.EvalOption) ([]string, error) {
	var lines []string
	opts = append(opts, evaluator.WithOutput(func(line string) {
		lines = append(lines, line)
	}))
	_, err := Run(context.Background(), src, opts...)
	return lines, err
}

func eval(ctx context.Context, prog *types.Program, opts []evaluator.EvalOption) (runtime.Value, error) {
	all := make([]evaluator.EvalOption, 0, len(opts)+1)
	all = append(all, evaluator.WithModules(ext.Registry()))
	all = append(all, opts...)
	return evaluator.New(all...).Eval(ctx, prog)
}

// Runner evaluates sources repeatedly, keeping parsed programs in an LRU
// cache. It is safe for concurrent use; every run gets a fresh global
// Environment.
type Runner struct {
	cache *cache.Cache
	opts  []evaluator.EvalOption
}

// NewRunner creates a Runner caching up to capacity programs. opts apply to
// every run.
func NewRunner(capacity int, opts ...evaluator.EvalOption) *Runner {
	return &Runner{cache: cache.New(capacity), opts: opts}
}

// Run evaluates src with the Runner's options followed by extra.
func (r *Runner) Run(ctx context.Context, src string, extra ...evaluator.EvalOption) (runtime.Value, error) {
	prog, err := r.cache.GetOrParse(src, func() (*types.Program, error) {
		return Parse(src)
	})
	if err != nil {
		return nil, err
	}
	opts := make([]evaluator.EvalOption, 0, len(r.opts)+len(extra))
	opts = append(opts, r.opts...)
	opts = append(opts, extra...)
	return eval(ctx, prog, opts)
}

// Output runs src and returns the lines it printed, including those printed
// before an error.
func (r *Runner) Output(ctx context.Context, src string) ([]string, error) {
	var lines []string
	_, err := r.Run(ctx, src, evaluator.WithOutput(func(line string) {
		lines = append(lines, line)
	}))
	return lines, err
}

// Cache returns the Runner's program cache.
func (r *Runner) Cache() *cache.Cache {
	return r.cache
}
