package evaluator

import (
	"context"
	"fmt"

	"github.com/sandrolain/hopelang/pkg/runtime"
	"github.com/sandrolain/hopelang/pkg/types"
)

type callDepthKey struct{}

// withNewCallDepth returns a context that carries a fresh call depth counter.
// Call this once at the start of each top-level evaluation.
func withNewCallDepth(ctx context.Context) context.Context {
	d := 0
	return context.WithValue(ctx, callDepthKey{}, &d)
}

// callDepth returns the depth counter from the context, or nil if absent.
func callDepth(ctx context.Context) *int {
	if p, ok := ctx.Value(callDepthKey{}).(*int); ok {
		return p
	}
	return nil
}

// evalCall evaluates the callee, then the arguments left to right, then
// invokes the callee.
func (e *Evaluator) evalCall(ctx context.Context, expr *types.CallExpr, env *runtime.Environment) (runtime.Value, error) {
	callee, err := e.evalExpr(ctx, expr.Callee, env)
	if err != nil {
		return nil, err
	}

	args := make([]runtime.Value, len(expr.Args))
	for i, arg := range expr.Args {
		v, err := e.evalExpr(ctx, arg, env)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	return e.call(ctx, callee, args, env, expr.Pos())
}

// call invokes a callable value. Natives receive the calling Environment.
func (e *Evaluator) call(ctx context.Context, callee runtime.Value, args []runtime.Value, env *runtime.Environment, line int) (runtime.Value, error) {
	switch fn := callee.(type) {
	case *runtime.NativeFunction:
		v, err := fn.Fn(ctx, args, env)
		if err != nil {
			return nil, err
		}
		if v == nil {
			v = runtime.Null{}
		}
		return v, nil
	case *runtime.Function:
		return e.callFunction(ctx, fn, args, line)
	default:
		return nil, types.NewError(types.ErrNotCallable,
			fmt.Sprintf("cannot call value of type %s", kindOf(callee)), line)
	}
}

// callFunction runs a closure body in a new child of its declaration scope.
// Missing arguments bind Null, extra arguments are ignored. A return outcome
// stops here and becomes the call's value.
func (e *Evaluator) callFunction(ctx context.Context, fn *runtime.Function, args []runtime.Value, line int) (runtime.Value, error) {
	if depth := callDepth(ctx); depth != nil {
		*depth++
		defer func() { *depth-- }()
		if e.opts.MaxDepth > 0 && *depth > e.opts.MaxDepth {
			return nil, types.NewError(types.ErrStackOverflow,
				fmt.Sprintf("maximum call depth of %d exceeded calling %s", e.opts.MaxDepth, fn.Name), line)
		}
	}

	scope := runtime.NewEnvironment(fn.Env)
	for i, name := range fn.Params {
		var arg runtime.Value = runtime.Null{}
		if i < len(args) {
			arg = args[i]
		}
		if err := scope.Declare(name, arg, false); err != nil {
			return nil, types.AtLine(err, line)
		}
	}

	res, err := e.evalBlock(ctx, fn.Body, scope)
	if err != nil {
		return nil, err
	}
	return res.value, nil
}

func kindOf(v runtime.Value) string {
	if v == nil {
		return runtime.KindNull.String()
	}
	return v.Kind().String()
}
