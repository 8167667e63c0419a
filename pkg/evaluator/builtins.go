package evaluator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sandrolain/hopelang/pkg/runtime"
)

// NewGlobalEnv creates the root Environment every program starts in. It
// binds true, false, null, print and time, all as constants.
func (e *Evaluator) NewGlobalEnv() *runtime.Environment {
	env := runtime.NewEnvironment(nil)

	start := time.Now()
	builtins := []struct {
		name  string
		value runtime.Value
	}{
		{"true", runtime.Boolean(true)},
		{"false", runtime.Boolean(false)},
		{"null", runtime.Null{}},
		{"print", runtime.NewNative("print", e.builtinPrint)},
		{"time", runtime.NewNative("time", clock(start))},
	}
	for _, b := range builtins {
		// A fresh table cannot already hold the name.
		_ = env.Declare(b.name, b.value, true)
	}
	return env
}

// builtinPrint joins its stringified arguments with spaces and emits one line.
func (e *Evaluator) builtinPrint(_ context.Context, args []runtime.Value, _ *runtime.Environment) (runtime.Value, error) {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = runtime.ToString(arg)
	}
	line := strings.Join(parts, " ")

	if e.opts.Output != nil {
		e.opts.Output(line)
		return runtime.Null{}, nil
	}
	if _, err := fmt.Fprintln(e.opts.Writer, line); err != nil {
		return nil, fmt.Errorf("print: %w", err)
	}
	return runtime.Null{}, nil
}

// clock returns the time builtin: milliseconds since the Unix epoch, derived
// from start plus the monotonic time elapsed since, so it never goes back.
func clock(start time.Time) runtime.NativeFunc {
	base := start.UnixMilli()
	return func(context.Context, []runtime.Value, *runtime.Environment) (runtime.Value, error) {
		return runtime.Number(base + time.Since(start).Milliseconds()), nil
	}
}
