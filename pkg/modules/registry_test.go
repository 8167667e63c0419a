package modules_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/sandrolain/hopelang/pkg/modules"
	"github.com/sandrolain/hopelang/pkg/runtime"
)

func constModule(name, binding string, v runtime.Value) modules.Module {
	return modules.Module{
		Name: name,
		Load: func(_ context.Context, env *runtime.Environment) error {
			return env.Declare(binding, v, true)
		},
	}
}

func TestRegistryLookup(t *testing.T) {
	reg := modules.NewRegistry(
		constModule("a", "x", runtime.Number(1)),
		constModule("b", "y", runtime.Number(2)),
	)

	m, ok := reg.Lookup("a")
	if !ok {
		t.Fatal("module a not found")
	}
	env := runtime.NewEnvironment(nil)
	if err := m.Load(context.Background(), env); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if v, _ := env.Lookup("x"); v != runtime.Number(1) {
		t.Errorf("x = %v, want 1", v)
	}

	if _, ok := reg.Lookup("missing"); ok {
		t.Error("unexpected module found")
	}
}

func TestRegistryLaterDuplicateWins(t *testing.T) {
	reg := modules.NewRegistry(
		constModule("a", "x", runtime.Number(1)),
		constModule("a", "x", runtime.Number(2)),
	)
	if reg.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", reg.Len())
	}
	m, _ := reg.Lookup("a")
	env := runtime.NewEnvironment(nil)
	_ = m.Load(context.Background(), env)
	if v, _ := env.Lookup("x"); v != runtime.Number(2) {
		t.Errorf("x = %v, want 2", v)
	}
}

func TestRegistryWithIsCopy(t *testing.T) {
	base := modules.NewRegistry(constModule("a", "x", runtime.Null{}))
	ext := base.With(constModule("b", "y", runtime.Null{}))

	if got := base.Names(); !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("base.Names() = %v, want [a]", got)
	}
	if got := ext.Names(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("ext.Names() = %v, want [a b]", got)
	}

	less := ext.Without("a")
	if got := less.Names(); !reflect.DeepEqual(got, []string{"b"}) {
		t.Errorf("less.Names() = %v, want [b]", got)
	}
}

func TestNilRegistry(t *testing.T) {
	var reg *modules.Registry
	if _, ok := reg.Lookup("a"); ok {
		t.Error("nil registry found a module")
	}
	if reg.Len() != 0 || reg.Names() != nil {
		t.Error("nil registry is not empty")
	}
	if got := reg.With(constModule("a", "x", runtime.Null{})).Names(); !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("nil.With().Names() = %v", got)
	}
}
