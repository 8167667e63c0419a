// Package web provides the "web" module: page widget emission. Each call
// prints a ">> WEB:KIND a | b | c" line for the host to render, with unset
// or empty arguments replaced by the widget's default.
package web

import (
	"context"
	"strings"

	"github.com/sandrolain/hopelang/pkg/ext/extutil"
	"github.com/sandrolain/hopelang/pkg/modules"
	"github.com/sandrolain/hopelang/pkg/runtime"
)

// Name is the import name of the module.
const Name = "web"

// Module returns the module for registration.
func Module() modules.Module {
	return modules.Module{Name: Name, Load: Load}
}

// Load installs the module's functions into env.
func Load(_ context.Context, env *runtime.Environment) error {
	return extutil.Install(env, All()...)
}

// All returns all web widget definitions.
func All() []extutil.FunctionDef {
	return []extutil.FunctionDef{
		widget("heading", "HEADING", "", "white"),
		widget("text", "TEXT", "", "zinc-400"),
		widget("button", "BUTTON", "", "purple"),
		widget("card", "CARD", "", "", "zinc-800"),
		widget("image", "IMAGE", ""),
		widget("link", "LINK", "", "#", "blue"),
		widget("badge", "BADGE", "", "purple"),
		widget("listItem", "LIST_ITEM", "", "zinc-400"),
		widget("divider", "DIVIDER", "zinc-800"),
		widget("spacer", "SPACER", "20"),
	}
}

// widget builds a function whose i-th argument defaults to defaults[i].
// Arguments beyond the defaults are ignored.
func widget(name, kind string, defaults ...string) extutil.FunctionDef {
	return extutil.FunctionDef{
		Name:    name,
		MinArgs: 0,
		MaxArgs: -1,
		Fn: func(ctx context.Context, args []runtime.Value, env *runtime.Environment) (runtime.Value, error) {
			parts := make([]string, len(defaults))
			for i, def := range defaults {
				parts[i] = extutil.StringArg(args, i, def)
			}
			line := ">> WEB:" + kind + " " + strings.Join(parts, " | ")
			return runtime.Null{}, extutil.HostPrint(ctx, env, line)
		},
	}
}
