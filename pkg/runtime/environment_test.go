package runtime_test

import (
	"testing"

	"github.com/sandrolain/hopelang/pkg/runtime"
	"github.com/sandrolain/hopelang/pkg/types"
)

func TestDeclareThenLookup(t *testing.T) {
	env := runtime.NewEnvironment(nil)
	if err := env.Declare("x", runtime.Number(42), false); err != nil {
		t.Fatalf("Declare: %v", err)
	}
	got, err := env.Lookup("x")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if got != runtime.Number(42) {
		t.Errorf("got %v, want 42", got)
	}
}

func TestDeclareTwiceInSameScope(t *testing.T) {
	env := runtime.NewEnvironment(nil)
	_ = env.Declare("x", runtime.Number(1), false)
	err := env.Declare("x", runtime.Number(2), false)
	if code := types.CodeOf(err); code != types.ErrAlreadyDefined {
		t.Fatalf("got code %q, want %q (err=%v)", code, types.ErrAlreadyDefined, err)
	}
	if !types.IsKind(err, types.KindNameError) {
		t.Errorf("expected NameError, got %v", err)
	}
}

func TestShadowingInChild(t *testing.T) {
	parent := runtime.NewEnvironment(nil)
	_ = parent.Declare("x", runtime.Number(1), true)
	child := runtime.NewEnvironment(parent)
	if err := child.Declare("x", runtime.String("inner"), false); err != nil {
		t.Fatalf("shadowing declare failed: %v", err)
	}
	got, _ := child.Lookup("x")
	if got != runtime.String("inner") {
		t.Errorf("child sees %v, want inner", got)
	}
	got, _ = parent.Lookup("x")
	if got != runtime.Number(1) {
		t.Errorf("parent sees %v, want 1", got)
	}
}

func TestAssignMutatesResolvedScope(t *testing.T) {
	global := runtime.NewEnvironment(nil)
	_ = global.Declare("x", runtime.Number(0), false)
	child := runtime.NewEnvironment(runtime.NewEnvironment(global))

	if err := child.Assign("x", runtime.Number(3)); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if child.Has("x") {
		t.Error("assign must not create a binding in the child")
	}
	got, _ := global.Lookup("x")
	if got != runtime.Number(3) {
		t.Errorf("got %v, want 3", got)
	}
}

func TestAssignErrors(t *testing.T) {
	env := runtime.NewEnvironment(nil)
	_ = env.Declare("k", runtime.Boolean(true), true)

	tests := []struct {
		name string
		bind string
		code types.ErrorCode
	}{
		{"undefined", "missing", types.ErrUndefinedName},
		{"constant", "k", types.ErrConstAssign},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runtime.NewEnvironment(env).Assign(tt.bind, runtime.Null{})
			if code := types.CodeOf(err); code != tt.code {
				t.Errorf("got code %q, want %q", code, tt.code)
			}
		})
	}

	got, _ := env.Lookup("k")
	if got != runtime.Boolean(true) {
		t.Errorf("constant changed to %v", got)
	}
}

func TestResolve(t *testing.T) {
	global := runtime.NewEnvironment(nil)
	_ = global.Declare("a", runtime.Null{}, false)
	mid := runtime.NewEnvironment(global)
	_ = mid.Declare("b", runtime.Null{}, false)
	leaf := runtime.NewEnvironment(mid)

	if env, err := leaf.Resolve("a"); err != nil || env != global {
		t.Errorf("Resolve(a) = %p, %v; want global", env, err)
	}
	if env, err := leaf.Resolve("b"); err != nil || env != mid {
		t.Errorf("Resolve(b) = %p, %v; want mid", env, err)
	}
	if _, err := leaf.Resolve("c"); !types.IsKind(err, types.KindNameError) {
		t.Errorf("Resolve(c) err = %v, want NameError", err)
	}
	if leaf.Parent() != mid || global.Parent() != nil {
		t.Error("unexpected parent links")
	}
}

func TestIsConstantAndNames(t *testing.T) {
	env := runtime.NewEnvironment(nil)
	_ = env.Declare("b", runtime.Null{}, false)
	_ = env.Declare("a", runtime.Null{}, true)
	child := runtime.NewEnvironment(env)

	if !child.IsConstant("a") || child.IsConstant("b") || child.IsConstant("zzz") {
		t.Error("IsConstant gave wrong answers")
	}
	names := env.Names()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("Names() = %v", names)
	}
	if len(child.Names()) != 0 {
		t.Errorf("child Names() = %v, want empty", child.Names())
	}
}
