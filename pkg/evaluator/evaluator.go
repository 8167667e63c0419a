// Package evaluator implements the HopeLang tree-walking evaluator.
//
// The evaluator receives a parsed Program from the parser and walks it
// against a chain of lexical Environments. It supports:
//   - Implicit declaration on assignment to an unresolved name
//   - Lexically scoped closures
//   - Non-local return from nested blocks
//   - Native modules loaded with the import statement
//   - Timeout and cancellation via context.Context
//
// # Example
//
//	ev := evaluator.New(evaluator.WithOutput(func(line string) {
//	    fmt.Println(line)
//	}))
//	if _, err := ev.Eval(ctx, prog); err != nil {
//	    log.Fatal(err)
//	}
package evaluator

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/sandrolain/hopelang/pkg/modules"
	"github.com/sandrolain/hopelang/pkg/runtime"
	"github.com/sandrolain/hopelang/pkg/types"
)

// Evaluator evaluates HopeLang programs.
//
// An Evaluator holds only configuration and may be shared between
// goroutines, as long as each evaluation runs in its own Environment.
type Evaluator struct {
	opts    EvalOptions
	logger  *slog.Logger
	modules *modules.Registry
}

// EvalOptions configures evaluator behavior.
type EvalOptions struct {
	// Output receives each line emitted by print. When nil, lines are
	// written to Writer.
	Output func(line string)
	// Writer is the fallback output stream. Defaults to os.Stdout.
	Writer io.Writer
	// Modules is the registry consulted by import. Defaults to an empty one.
	Modules *modules.Registry
	// MaxDepth limits function call nesting. 0 leaves only the host stack.
	MaxDepth int
	// Timeout sets evaluation timeout. 0 means none.
	Timeout time.Duration
	// Debug enables debug logging.
	Debug bool
	// Logger for structured logging.
	Logger *slog.Logger
}

// New creates a new Evaluator with default options.
func New(opts ...EvalOption) *Evaluator {
	options := EvalOptions{
		Writer: os.Stdout,
	}

	for _, opt := range opts {
		opt(&options)
	}

	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	if options.Writer == nil {
		options.Writer = io.Discard
	}
	reg := options.Modules
	if reg == nil {
		reg = modules.NewRegistry()
	}

	return &Evaluator{
		opts:    options,
		logger:  options.Logger,
		modules: reg,
	}
}

// Modules returns the registry used by import.
func (e *Evaluator) Modules() *modules.Registry {
	return e.modules
}

// Eval evaluates a program in a fresh global environment and returns the
// value of its last statement.
func (e *Evaluator) Eval(ctx context.Context, prog *types.Program) (runtime.Value, error) {
	return e.EvalIn(ctx, prog, e.NewGlobalEnv())
}

// EvalIn evaluates a program in env. Bindings created at top level stay in
// env, which lets a REPL keep state between inputs.
func (e *Evaluator) EvalIn(ctx context.Context, prog *types.Program, env *runtime.Environment) (runtime.Value, error) {
	if prog == nil {
		return nil, fmt.Errorf("invalid program")
	}
	if env == nil {
		return nil, fmt.Errorf("invalid environment")
	}

	// Apply timeout if configured
	if e.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.opts.Timeout)
		defer cancel()
	}

	if e.opts.MaxDepth > 0 {
		ctx = withNewCallDepth(ctx)
	}

	res, err := e.evalBlock(ctx, prog.Body, env)
	if err != nil {
		return nil, err
	}
	if res.ret {
		return nil, types.NewError(types.ErrReturnOutsideFunction,
			"return statement used outside of a function", res.line)
	}
	return res.value, nil
}

// EvalOption configures evaluation behavior.
type EvalOption func(*EvalOptions)

// WithOutput sets the callback receiving print output, one line per call.
func WithOutput(fn func(line string)) EvalOption {
	return func(opts *EvalOptions) {
		opts.Output = fn
	}
}

// WithWriter sets the stream print writes to when no output callback is set.
func WithWriter(w io.Writer) EvalOption {
	return func(opts *EvalOptions) {
		opts.Writer = w
	}
}

// WithModules sets the module registry used by import.
func WithModules(reg *modules.Registry) EvalOption {
	return func(opts *EvalOptions) {
		opts.Modules = reg
	}
}

// WithTimeout sets the evaluation timeout.
func WithTimeout(timeout time.Duration) EvalOption {
	return func(opts *EvalOptions) {
		opts.Timeout = timeout
	}
}

// WithDebug enables or disables debug logging.
func WithDebug(enabled bool) EvalOption {
	return func(opts *EvalOptions) {
		opts.Debug = enabled
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) EvalOption {
	return func(opts *EvalOptions) {
		opts.Logger = logger
	}
}

// WithMaxDepth sets the maximum function call depth.
func WithMaxDepth(depth int) EvalOption {
	return func(opts *EvalOptions) {
		opts.MaxDepth = depth
	}
}
