package evaluator

import (
	"context"
	"math"

	"github.com/sandrolain/hopelang/pkg/runtime"
	"github.com/sandrolain/hopelang/pkg/types"
)

// evalBinary evaluates both operands left to right and applies the operator.
func (e *Evaluator) evalBinary(ctx context.Context, expr *types.BinaryExpr, env *runtime.Environment) (runtime.Value, error) {
	left, err := e.evalExpr(ctx, expr.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := e.evalExpr(ctx, expr.Right, env)
	if err != nil {
		return nil, err
	}
	return applyBinary(expr.Operator, left, right), nil
}

// applyBinary implements the operator table. Combinations the table does
// not cover yield Null rather than an error.
func applyBinary(op string, left, right runtime.Value) runtime.Value {
	ln, lok := left.(runtime.Number)
	rn, rok := right.(runtime.Number)
	if lok && rok {
		return numericOp(op, float64(ln), float64(rn))
	}

	if op == "==" {
		return runtime.Boolean(runtime.Equal(left, right))
	}

	if op == "+" {
		ls, lok := left.(runtime.String)
		rs, rok := right.(runtime.String)
		if lok && rok {
			return ls + rs
		}
	}

	return runtime.Null{}
}

// numericOp applies op to two numbers.
func numericOp(op string, l, r float64) runtime.Value {
	switch op {
	// Arithmetic operators
	case "+":
		return runtime.Number(l + r)
	case "-":
		return runtime.Number(l - r)
	case "*":
		return runtime.Number(l * r)
	case "/":
		return runtime.Number(l / r)
	case "%":
		return runtime.Number(math.Mod(l, r))

	// Comparison operators
	case ">":
		return runtime.Boolean(l > r)
	case "<":
		return runtime.Boolean(l < r)
	case ">=":
		return runtime.Boolean(l >= r)
	case "<=":
		return runtime.Boolean(l <= r)
	case "==":
		return runtime.Boolean(l == r)
	case "!=":
		return runtime.Boolean(l != r)
	}
	return runtime.Null{}
}
