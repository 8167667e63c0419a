package runtime

import (
	"sort"

	"github.com/sandrolain/hopelang/pkg/types"
)

// Environment is one lexical scope: a binding table, the set of names bound
// as constants, and an optional parent.
//
// Environments are not safe for concurrent use; evaluation is single threaded.
type Environment struct {
	values    map[string]Value
	constants map[string]struct{}
	parent    *Environment
}

// NewEnvironment creates a new environment, optionally nested under a parent.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		values:    make(map[string]Value),
		constants: make(map[string]struct{}),
		parent:    parent,
	}
}

// Parent exposes the lexical parent (nil when global).
func (e *Environment) Parent() *Environment {
	return e.parent
}

// Declare binds name in this scope. Shadowing a parent binding is allowed,
// redeclaring a name already in this table is not.
func (e *Environment) Declare(name string, value Value, constant bool) error {
	if _, ok := e.values[name]; ok {
		return types.Errorf(types.ErrAlreadyDefined, "cannot declare variable %s as it already is defined", name)
	}
	e.values[name] = value
	if constant {
		e.constants[name] = struct{}{}
	}
	return nil
}

// Assign updates the binding in the nearest scope that holds name.
func (e *Environment) Assign(name string, value Value) error {
	env, err := e.Resolve(name)
	if err != nil {
		return err
	}
	if _, ok := env.constants[name]; ok {
		return types.Errorf(types.ErrConstAssign, "cannot reassign to variable %s as it was declared constant", name)
	}
	env.values[name] = value
	return nil
}

// Lookup returns the value bound to name, searching outward.
func (e *Environment) Lookup(name string) (Value, error) {
	env, err := e.Resolve(name)
	if err != nil {
		return nil, err
	}
	return env.values[name], nil
}

// Resolve returns the nearest environment whose own table holds name.
func (e *Environment) Resolve(name string) (*Environment, error) {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.values[name]; ok {
			return env, nil
		}
	}
	return nil, types.Errorf(types.ErrUndefinedName, "cannot resolve %s as it does not exist", name)
}

// Has reports whether name is bound in this scope, ignoring parents.
func (e *Environment) Has(name string) bool {
	_, ok := e.values[name]
	return ok
}

// IsConstant reports whether name resolves to a constant binding.
func (e *Environment) IsConstant(name string) bool {
	env, err := e.Resolve(name)
	if err != nil {
		return false
	}
	_, ok := env.constants[name]
	return ok
}

// Names returns this scope's own bindings in sorted order.
func (e *Environment) Names() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
