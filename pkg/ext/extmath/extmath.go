// Package extmath provides the "math" module.
//
//	import "math"
//	print sqrt(16), power(2, 10), max(3, 9, 4)
package extmath

import (
	"context"
	"math"
	"math/rand/v2"

	"github.com/sandrolain/hopelang/pkg/ext/extutil"
	"github.com/sandrolain/hopelang/pkg/modules"
	"github.com/sandrolain/hopelang/pkg/runtime"
	"github.com/sandrolain/hopelang/pkg/types"
)

// Name is the import name of the module.
const Name = "math"

// Module returns the module for registration.
func Module() modules.Module {
	return modules.Module{Name: Name, Load: Load}
}

// Load installs the module's functions into env.
func Load(_ context.Context, env *runtime.Environment) error {
	return extutil.Install(env, All()...)
}

// All returns all math function definitions.
func All() []extutil.FunctionDef {
	return []extutil.FunctionDef{
		Sqrt(),
		Power(),
		Min(),
		Max(),
		unary("round", jsRound),
		unary("abs", math.Abs),
		Rand(),
		unary("ceil", math.Ceil),
		unary("floor", math.Floor),
		unary("sin", math.Sin),
		unary("cos", math.Cos),
		unary("tan", math.Tan),
		unary("cot", func(x float64) float64 { return 1 / math.Tan(x) }),
		unary("sec", func(x float64) float64 { return 1 / math.Cos(x) }),
		unary("csc", func(x float64) float64 { return 1 / math.Sin(x) }),
		unary("asin", math.Asin),
		unary("acos", math.Acos),
		unary("atan", math.Atan),
		unary("log", math.Log),
		unary("logten", math.Log10),
		unary("exp", math.Exp),
	}
}

// unary adapts a float64 function taking exactly one number.
func unary(name string, f func(float64) float64) extutil.FunctionDef {
	return extutil.FunctionDef{
		Name:    name,
		MinArgs: 1,
		MaxArgs: 1,
		Fn: func(_ context.Context, args []runtime.Value, _ *runtime.Environment) (runtime.Value, error) {
			x, err := extutil.NumberArg(name, args, 0)
			if err != nil {
				return nil, err
			}
			return runtime.Number(f(x)), nil
		},
	}
}

// Sqrt returns the definition for sqrt(n). Negative input is an error.
func Sqrt() extutil.FunctionDef {
	return extutil.FunctionDef{
		Name:    "sqrt",
		MinArgs: 1,
		MaxArgs: 1,
		Fn: func(_ context.Context, args []runtime.Value, _ *runtime.Environment) (runtime.Value, error) {
			x, err := extutil.NumberArg("sqrt", args, 0)
			if err != nil {
				return nil, err
			}
			if x < 0 {
				return nil, types.Errorf(types.ErrBadArgument, "sqrt function cannot be applied to a negative number")
			}
			return runtime.Number(math.Sqrt(x)), nil
		},
	}
}

// Power returns the definition for power(base, exponent).
func Power() extutil.FunctionDef {
	return extutil.FunctionDef{
		Name:    "power",
		MinArgs: 2,
		MaxArgs: 2,
		Fn: func(_ context.Context, args []runtime.Value, _ *runtime.Environment) (runtime.Value, error) {
			base, err := extutil.NumberArg("power", args, 0)
			if err != nil {
				return nil, err
			}
			exp, err := extutil.NumberArg("power", args, 1)
			if err != nil {
				return nil, err
			}
			return runtime.Number(math.Pow(base, exp)), nil
		},
	}
}

// Min returns the definition for min(a, b, ...).
func Min() extutil.FunctionDef {
	return fold("min", math.Inf(1), func(acc, x float64) float64 {
		if x < acc {
			return x
		}
		return acc
	})
}

// Max returns the definition for max(a, b, ...).
func Max() extutil.FunctionDef {
	return fold("max", math.Inf(-1), func(acc, x float64) float64 {
		if x > acc {
			return x
		}
		return acc
	})
}

// fold reduces two or more numbers with f.
func fold(name string, start float64, f func(a, b float64) float64) extutil.FunctionDef {
	return extutil.FunctionDef{
		Name:    name,
		MinArgs: 2,
		MaxArgs: -1,
		Fn: func(_ context.Context, args []runtime.Value, _ *runtime.Environment) (runtime.Value, error) {
			acc := start
			for i := range args {
				x, err := extutil.NumberArg(name, args, i)
				if err != nil {
					return nil, err
				}
				acc = f(acc, x)
			}
			return runtime.Number(acc), nil
		},
	}
}

// Rand returns the definition for rand(), a number in [0, 1).
func Rand() extutil.FunctionDef {
	return extutil.FunctionDef{
		Name:    "rand",
		MaxArgs: -1,
		Fn: func(context.Context, []runtime.Value, *runtime.Environment) (runtime.Value, error) {
			return runtime.Number(rand.Float64()), nil
		},
	}
}

// jsRound rounds half up toward +Inf, so -2.5 rounds to -2.
func jsRound(x float64) float64 {
	return math.Floor(x + 0.5)
}
