// Package extutil provides shared helpers for the ext sub-packages.
package extutil

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandrolain/hopelang/pkg/runtime"
	"github.com/sandrolain/hopelang/pkg/types"
)

// FunctionDef describes a native function installed by a module.
type FunctionDef struct {
	Name    string
	MinArgs int
	MaxArgs int // -1 for unlimited
	Fn      runtime.NativeFunc
}

// Native wraps the definition as a runtime value that checks arity before
// calling Fn.
func (d FunctionDef) Native() *runtime.NativeFunction {
	return runtime.NewNative(d.Name, func(ctx context.Context, args []runtime.Value, env *runtime.Environment) (runtime.Value, error) {
		if err := d.checkArity(len(args)); err != nil {
			return nil, err
		}
		v, err := d.Fn(ctx, args, env)
		if err != nil {
			return nil, err
		}
		if v == nil {
			v = runtime.Null{}
		}
		return v, nil
	})
}

func (d FunctionDef) checkArity(n int) error {
	switch {
	case d.MinArgs == d.MaxArgs && n != d.MinArgs:
		return types.Errorf(types.ErrBadArgument, "%s function expects exactly %d %s", d.Name, d.MinArgs, plural(d.MinArgs))
	case n < d.MinArgs:
		return types.Errorf(types.ErrBadArgument, "%s function expects at least %d %s", d.Name, d.MinArgs, plural(d.MinArgs))
	case d.MaxArgs >= 0 && n > d.MaxArgs:
		return types.Errorf(types.ErrBadArgument, "%s function expects at most %d %s", d.Name, d.MaxArgs, plural(d.MaxArgs))
	}
	return nil
}

func plural(n int) string {
	if n == 1 {
		return "argument"
	}
	return "arguments"
}

// Install declares every definition in env as a constant.
func Install(env *runtime.Environment, defs ...FunctionDef) error {
	for _, d := range defs {
		if err := Define(env, d.Name, d.Native()); err != nil {
			return err
		}
	}
	return nil
}

// Define declares a constant binding in env.
func Define(env *runtime.Environment, name string, v runtime.Value) error {
	return env.Declare(name, v, true)
}

// HostPrint emits line through the print binding visible from env. Nothing
// is emitted when print has been shadowed by a non-native value.
func HostPrint(ctx context.Context, env *runtime.Environment, line string) error {
	v, err := env.Lookup("print")
	if err != nil {
		return err
	}
	fn, ok := v.(*runtime.NativeFunction)
	if !ok {
		return nil
	}
	_, err = fn.Fn(ctx, []runtime.Value{runtime.String(line)}, env)
	return err
}

// Command formats a host command line: ">> NAME p1 p2 ...".
func Command(name string, params ...string) string {
	if len(params) == 0 {
		return ">> " + name
	}
	return ">> " + name + " " + strings.Join(params, " ")
}

// Emit is a native body that prints a fixed command, for functions such
// as penUp that take no arguments.
func Emit(name string) runtime.NativeFunc {
	return func(ctx context.Context, _ []runtime.Value, env *runtime.Environment) (runtime.Value, error) {
		return runtime.Null{}, HostPrint(ctx, env, Command(name))
	}
}

// EmitArgs is a native body that prints a command followed by its
// stringified arguments.
func EmitArgs(name string) runtime.NativeFunc {
	return func(ctx context.Context, args []runtime.Value, env *runtime.Environment) (runtime.Value, error) {
		params := make([]string, len(args))
		for i, a := range args {
			params[i] = runtime.ToString(a)
		}
		return runtime.Null{}, HostPrint(ctx, env, Command(name, params...))
	}
}

// Arg returns args[i], or Null when the argument was not passed.
func Arg(args []runtime.Value, i int) runtime.Value {
	if i < len(args) && args[i] != nil {
		return args[i]
	}
	return runtime.Null{}
}

// StringArg returns the printed form of args[i], falling back to def when
// the argument is missing or falsy.
func StringArg(args []runtime.Value, i int, def string) string {
	v := Arg(args, i)
	if !runtime.Truthy(v) {
		return def
	}
	return runtime.ToString(v)
}

// NumberArg returns args[i] as a float64 or a TypeError naming fname.
func NumberArg(fname string, args []runtime.Value, i int) (float64, error) {
	n, ok := Arg(args, i).(runtime.Number)
	if !ok {
		return 0, types.Errorf(types.ErrBadArgument, "%s function expects a number argument, got %s", fname, kindName(Arg(args, i)))
	}
	return float64(n), nil
}

func kindName(v runtime.Value) string {
	return fmt.Sprint(v.Kind())
}
