// Package blocode provides the "blocode" module: block-programming
// movement commands for a host sprite.
//
//	import "blocode"
//	move(10)   # >> MOVE 10
//	turn(90)   # >> TURN 90
package blocode

import (
	"context"

	"github.com/sandrolain/hopelang/pkg/ext/extutil"
	"github.com/sandrolain/hopelang/pkg/modules"
	"github.com/sandrolain/hopelang/pkg/runtime"
)

// Name is the import name of the module.
const Name = "blocode"

// Module returns the module for registration.
func Module() modules.Module {
	return modules.Module{Name: Name, Load: Load}
}

// Load installs the module's functions into env.
func Load(_ context.Context, env *runtime.Environment) error {
	return extutil.Install(env, All()...)
}

// All returns all blocode function definitions.
func All() []extutil.FunctionDef {
	return []extutil.FunctionDef{
		Move(),
		Turn(),
	}
}

// Move returns the definition for move(steps).
func Move() extutil.FunctionDef {
	return extutil.FunctionDef{Name: "move", MinArgs: 1, MaxArgs: 1, Fn: extutil.EmitArgs("MOVE")}
}

// Turn returns the definition for turn(degrees).
func Turn() extutil.FunctionDef {
	return extutil.FunctionDef{Name: "turn", MinArgs: 1, MaxArgs: 1, Fn: extutil.EmitArgs("TURN")}
}
