// Package painter provides the "painter" module: turtle-graphics drawing
// commands.
package painter

import (
	"context"

	"github.com/sandrolain/hopelang/pkg/ext/extutil"
	"github.com/sandrolain/hopelang/pkg/modules"
	"github.com/sandrolain/hopelang/pkg/runtime"
)

// Name is the import name of the module.
const Name = "painter"

// Module returns the module for registration.
func Module() modules.Module {
	return modules.Module{Name: Name, Load: Load}
}

// Load installs the module's functions into env.
func Load(_ context.Context, env *runtime.Environment) error {
	return extutil.Install(env, All()...)
}

// All returns all painter function definitions.
func All() []extutil.FunctionDef {
	return []extutil.FunctionDef{
		{Name: "forward", MinArgs: 1, MaxArgs: 1, Fn: extutil.EmitArgs("FORWARD")},
		{Name: "turn", MinArgs: 1, MaxArgs: 1, Fn: extutil.EmitArgs("TURN")},
		{Name: "penUp", MaxArgs: -1, Fn: extutil.Emit("PEN_UP")},
		{Name: "penDown", MaxArgs: -1, Fn: extutil.Emit("PEN_DOWN")},
		{Name: "setColor", MinArgs: 1, MaxArgs: 1, Fn: extutil.EmitArgs("COLOR")},
		{Name: "beginFill", MinArgs: 1, MaxArgs: 1, Fn: extutil.EmitArgs("BEGIN_FILL")},
		{Name: "endFill", MaxArgs: -1, Fn: extutil.Emit("END_FILL")},
	}
}
