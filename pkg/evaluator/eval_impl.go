package evaluator

import (
	"context"
	"errors"
	"fmt"

	"github.com/sandrolain/hopelang/pkg/runtime"
	"github.com/sandrolain/hopelang/pkg/types"
)

// result is the outcome of evaluating a statement. When ret is set the value
// is travelling outward to the nearest function call.
type result struct {
	value runtime.Value
	ret   bool
	line  int // line of the return statement when ret is set
}

func valueOf(v runtime.Value) result {
	return result{value: v}
}

// evalBlock runs statements in order in env. The block's value is that of
// its last statement, or Null when empty. A return outcome stops the block.
func (e *Evaluator) evalBlock(ctx context.Context, body []types.Statement, env *runtime.Environment) (result, error) {
	res := valueOf(runtime.Null{})
	for _, stmt := range body {
		var err error
		res, err = e.evalStatement(ctx, stmt, env)
		if err != nil {
			return result{}, err
		}
		if res.ret {
			return res, nil
		}
	}
	return res, nil
}

// evalStatement evaluates a statement in env.
func (e *Evaluator) evalStatement(ctx context.Context, stmt types.Statement, env *runtime.Environment) (result, error) {
	if err := checkCancelled(ctx, stmt); err != nil {
		return result{}, err
	}

	// Debug logging
	if e.opts.Debug {
		e.logger.Debug("evaluating node",
			"kind", stmt.Kind(),
			"line", stmt.Pos())
	}

	var (
		res result
		err error
	)

	switch s := stmt.(type) {
	case *types.VarDeclaration:
		res, err = e.evalVarDeclaration(ctx, s, env)
	case *types.FunctionDeclaration:
		res, err = e.evalFunctionDeclaration(s, env)
	case *types.ReturnStatement:
		res, err = e.evalReturn(ctx, s, env)
	case *types.ImportStatement:
		res, err = e.evalImport(ctx, s, env)
	case *types.IfStatement:
		res, err = e.evalIf(ctx, s, env)
	case *types.WhileStatement:
		res, err = e.evalWhile(ctx, s, env)
	case types.Expression:
		var v runtime.Value
		v, err = e.evalExpr(ctx, s, env)
		res = valueOf(v)
	default:
		err = unsupported(stmt)
	}

	if err != nil {
		return result{}, types.AtLine(err, stmt.Pos())
	}
	return res, nil
}

// evalExpr evaluates an expression in env.
func (e *Evaluator) evalExpr(ctx context.Context, expr types.Expression, env *runtime.Environment) (runtime.Value, error) {
	if err := checkCancelled(ctx, expr); err != nil {
		return nil, err
	}

	var (
		v   runtime.Value
		err error
	)

	switch x := expr.(type) {
	case *types.NumericLiteral:
		return runtime.Number(x.Value), nil
	case *types.StringLiteral:
		return runtime.String(x.Value), nil
	case *types.ObjectLiteral:
		// Properties are parsed but not evaluated.
		return runtime.NewObject(), nil
	case *types.Identifier:
		v, err = env.Lookup(x.Name)
	case *types.AssignmentExpr:
		v, err = e.evalAssignment(ctx, x, env)
	case *types.BinaryExpr:
		v, err = e.evalBinary(ctx, x, env)
	case *types.CallExpr:
		v, err = e.evalCall(ctx, x, env)
	case *types.MemberExpr:
		err = types.NewError(types.ErrUnsupportedNode,
			"member access is not supported: objects have no properties", x.Pos())
	default:
		err = unsupported(expr)
	}

	if err != nil {
		return nil, types.AtLine(err, expr.Pos())
	}
	return v, nil
}

// evalVarDeclaration declares Name in the current scope.
func (e *Evaluator) evalVarDeclaration(ctx context.Context, decl *types.VarDeclaration, env *runtime.Environment) (result, error) {
	var value runtime.Value = runtime.Null{}
	if decl.Value != nil {
		v, err := e.evalExpr(ctx, decl.Value, env)
		if err != nil {
			return result{}, err
		}
		value = v
	}
	if err := env.Declare(decl.Name, value, decl.Constant); err != nil {
		return result{}, err
	}
	return valueOf(value), nil
}

// evalFunctionDeclaration binds a closure over env as a constant.
func (e *Evaluator) evalFunctionDeclaration(decl *types.FunctionDeclaration, env *runtime.Environment) (result, error) {
	fn := &runtime.Function{
		Name:   decl.Name,
		Params: decl.Params,
		Body:   decl.Body,
		Env:    env,
	}
	if err := env.Declare(decl.Name, fn, true); err != nil {
		return result{}, err
	}
	return valueOf(fn), nil
}

// evalReturn produces a return outcome carrying the value.
func (e *Evaluator) evalReturn(ctx context.Context, stmt *types.ReturnStatement, env *runtime.Environment) (result, error) {
	var value runtime.Value = runtime.Null{}
	if stmt.Value != nil {
		v, err := e.evalExpr(ctx, stmt.Value, env)
		if err != nil {
			return result{}, err
		}
		value = v
	}
	return result{value: value, ret: true, line: stmt.Pos()}, nil
}

// evalImport runs a module loader against the current scope.
func (e *Evaluator) evalImport(ctx context.Context, stmt *types.ImportStatement, env *runtime.Environment) (result, error) {
	mod, ok := e.modules.Lookup(stmt.Module)
	if !ok {
		return result{}, types.NewError(types.ErrModuleNotFound,
			fmt.Sprintf("module %q not found", stmt.Module), stmt.Pos()).WithToken(stmt.Module)
	}

	e.logger.Debug("importing module", "module", stmt.Module, "line", stmt.Pos())

	if err := mod.Load(ctx, env); err != nil {
		// Structured errors from the loader keep their own kind.
		var herr *types.Error
		if errors.As(err, &herr) {
			return result{}, err
		}
		return result{}, types.NewError(types.ErrModuleLoad,
			fmt.Sprintf("loading module %q: %v", stmt.Module, err), stmt.Pos()).WithCause(err)
	}
	return valueOf(runtime.Null{}), nil
}

// evalIf runs the chosen branch in one child scope.
func (e *Evaluator) evalIf(ctx context.Context, stmt *types.IfStatement, env *runtime.Environment) (result, error) {
	cond, err := e.evalExpr(ctx, stmt.Condition, env)
	if err != nil {
		return result{}, err
	}

	switch {
	case runtime.Truthy(cond):
		return e.evalBlock(ctx, stmt.Body, runtime.NewEnvironment(env))
	case stmt.Else != nil:
		return e.evalBlock(ctx, stmt.Else, runtime.NewEnvironment(env))
	default:
		return valueOf(runtime.Null{}), nil
	}
}

// evalWhile runs each iteration in a fresh child scope of env, so names
// declared in the body do not survive to the next pass.
func (e *Evaluator) evalWhile(ctx context.Context, stmt *types.WhileStatement, env *runtime.Environment) (result, error) {
	res := valueOf(runtime.Null{})
	for {
		cond, err := e.evalExpr(ctx, stmt.Condition, env)
		if err != nil {
			return result{}, err
		}
		if !runtime.Truthy(cond) {
			return res, nil
		}

		res, err = e.evalBlock(ctx, stmt.Body, runtime.NewEnvironment(env))
		if err != nil {
			return result{}, err
		}
		if res.ret {
			return res, nil
		}
	}
}

// evalAssignment assigns to an Identifier target, declaring it in env when
// the name does not resolve anywhere.
func (e *Evaluator) evalAssignment(ctx context.Context, expr *types.AssignmentExpr, env *runtime.Environment) (runtime.Value, error) {
	target, ok := expr.Target.(*types.Identifier)
	if !ok {
		return nil, types.NewError(types.ErrInvalidAssignTarget,
			fmt.Sprintf("cannot assign to %s: target must be an identifier", expr.Target.Kind()), expr.Pos())
	}

	value, err := e.evalExpr(ctx, expr.Value, env)
	if err != nil {
		return nil, err
	}

	err = env.Assign(target.Name, value)
	if types.CodeOf(err) == types.ErrUndefinedName {
		err = env.Declare(target.Name, value, false)
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

// checkCancelled reports a cancelled or expired context as a runtime error.
func checkCancelled(ctx context.Context, node types.Node) error {
	select {
	case <-ctx.Done():
		return types.NewError(types.ErrCancelled, "evaluation cancelled", node.Pos()).WithCause(ctx.Err())
	default:
		return nil
	}
}

func unsupported(node types.Node) error {
	return types.NewError(types.ErrUnsupportedNode,
		fmt.Sprintf("unsupported node type: %s", node.Kind()), node.Pos())
}
