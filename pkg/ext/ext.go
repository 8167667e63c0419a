// Package ext bundles the native modules shipped with HopeLang.
//
// The modules live in sub-packages:
//   - blocode  – move, turn
//   - painter  – forward, turn, penUp, penDown, setColor, beginFill, endFill
//   - composer – note, chord, rest, tempo, instrument
//   - web      – heading, text, button, card, image, link, badge, listItem, divider, spacer
//   - extmath  – the "math" module: sqrt, power, min, max, trig and log functions
//   - extwasm  – modules backed by WebAssembly binaries (not part of All)
//
// # Integration – all built-in modules
//
//	ev := evaluator.New(evaluator.WithModules(ext.Registry()))
//
// # Integration – a selection
//
//	reg := modules.NewRegistry(blocode.Module(), extmath.Module())
package ext

import (
	"github.com/sandrolain/hopelang/pkg/ext/blocode"
	"github.com/sandrolain/hopelang/pkg/ext/composer"
	"github.com/sandrolain/hopelang/pkg/ext/extmath"
	"github.com/sandrolain/hopelang/pkg/ext/painter"
	"github.com/sandrolain/hopelang/pkg/ext/web"
	"github.com/sandrolain/hopelang/pkg/modules"
)

// All returns every built-in module.
func All() []modules.Module {
	return []modules.Module{
		blocode.Module(),
		painter.Module(),
		composer.Module(),
		web.Module(),
		extmath.Module(),
	}
}

// Registry returns a registry holding every built-in module.
func Registry() *modules.Registry {
	return modules.NewRegistry(All()...)
}
