// Package modules provides the registry of native modules a program can
// import.
//
// A module is a named loader that installs bindings, usually native
// functions, into the Environment executing the import statement. Modules
// receive no configuration; everything they need is captured when the
// Module value is built.
//
// # Example
//
//	greet := modules.Module{
//	    Name: "greet",
//	    Load: func(ctx context.Context, env *runtime.Environment) error {
//	        return env.Declare("hello", runtime.NewNative("hello", helloFn), true)
//	    },
//	}
//	reg := modules.NewRegistry(greet)
//	ev := evaluator.New(evaluator.WithModules(reg))
package modules

import (
	"context"
	"sort"

	"github.com/sandrolain/hopelang/pkg/runtime"
)

// Loader installs a module's bindings into env.
type Loader func(ctx context.Context, env *runtime.Environment) error

// Module pairs an import name with its loader.
type Module struct {
	// Name is the string used in `import "name"`.
	Name string
	// Load is the implementation.
	Load Loader
}

// Registry is an immutable name to Module table.
// The zero value and a nil *Registry are both empty registries.
type Registry struct {
	mods map[string]Module
}

// NewRegistry builds a registry from mods. A later module replaces an
// earlier one with the same name.
func NewRegistry(mods ...Module) *Registry {
	r := &Registry{mods: make(map[string]Module, len(mods))}
	for _, m := range mods {
		r.mods[m.Name] = m
	}
	return r
}

// Lookup returns the module registered under name.
func (r *Registry) Lookup(name string) (Module, bool) {
	if r == nil {
		return Module{}, false
	}
	m, ok := r.mods[name]
	return m, ok
}

// Names returns the registered module names in sorted order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.mods))
	for n := range r.mods {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered modules.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.mods)
}

// With returns a new registry holding r's modules plus mods.
func (r *Registry) With(mods ...Module) *Registry {
	var all []Module
	if r != nil {
		all = make([]Module, 0, len(r.mods)+len(mods))
		for _, n := range r.Names() {
			all = append(all, r.mods[n])
		}
	}
	return NewRegistry(append(all, mods...)...)
}

// Without returns a new registry lacking the named modules.
func (r *Registry) Without(names ...string) *Registry {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	var keep []Module
	for _, n := range r.Names() {
		if !drop[n] {
			keep = append(keep, r.mods[n])
		}
	}
	return NewRegistry(keep...)
}
