// Package composer provides the "composer" module: note sequencing
// commands for a host synthesizer.
package composer

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/sandrolain/hopelang/pkg/ext/extutil"
	"github.com/sandrolain/hopelang/pkg/modules"
	"github.com/sandrolain/hopelang/pkg/runtime"
)

// Name is the import name of the module.
const Name = "composer"

// Module returns the module for registration.
func Module() modules.Module {
	return modules.Module{Name: Name, Load: Load}
}

// Load installs the module's functions into env.
func Load(_ context.Context, env *runtime.Environment) error {
	return extutil.Install(env, All()...)
}

// All returns all composer function definitions.
func All() []extutil.FunctionDef {
	return []extutil.FunctionDef{
		{Name: "note", MinArgs: 2, MaxArgs: 2, Fn: extutil.EmitArgs("NOTE")},
		Chord(),
		{Name: "rest", MinArgs: 1, MaxArgs: 1, Fn: extutil.EmitArgs("REST")},
		{Name: "tempo", MinArgs: 1, MaxArgs: 1, Fn: extutil.EmitArgs("TEMPO")},
		{Name: "instrument", MinArgs: 1, MaxArgs: 1, Fn: extutil.EmitArgs("INSTRUMENT")},
	}
}

// Chord returns the definition for chord(notes, duration). notes is a
// space separated list of note names, sent to the host as a JSON array:
//
//	chord("C4 E4 G4", 1)   # >> CHORD ["C4","E4","G4"] 1
func Chord() extutil.FunctionDef {
	return extutil.FunctionDef{
		Name:    "chord",
		MinArgs: 2,
		MaxArgs: 2,
		Fn: func(ctx context.Context, args []runtime.Value, env *runtime.Environment) (runtime.Value, error) {
			notes := strings.Fields(runtime.ToString(args[0]))
			if notes == nil {
				notes = []string{}
			}
			encoded, err := json.Marshal(notes)
			if err != nil {
				return nil, err
			}
			line := extutil.Command("CHORD", string(encoded), runtime.ToString(args[1]))
			return runtime.Null{}, extutil.HostPrint(ctx, env, line)
		},
	}
}
