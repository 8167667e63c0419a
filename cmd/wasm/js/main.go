//go:build js && wasm

// Command hopelang-wasm-js is the WebAssembly entrypoint for browser and
// Node.js editors.
//
// It exposes a global `hopelang` object with the following API:
//
//	hopelang.version()    → string
//	hopelang.run(code)    → { output: string[], error: string | null }
//	hopelang.check(code)  → { error: string | null, incomplete: boolean }
//
// Host commands printed by native modules (">> MOVE 10", ">> WEB:HEADING Hi | white")
// are returned in output unchanged, for the page to intercept and render.
//
// Build:
//
//	GOOS=js GOARCH=wasm go build -o hopelang.wasm ./cmd/wasm/js/
package main

import (
	"context"
	"syscall/js"
	"time"

	"github.com/sandrolain/hopelang"
	"github.com/sandrolain/hopelang/pkg/evaluator"
	"github.com/sandrolain/hopelang/pkg/types"
)

// An editor re-runs the same buffer on every keystroke pause.
var runner = hopelang.NewRunner(64,
	evaluator.WithTimeout(5*time.Second),
	evaluator.WithMaxDepth(1000),
)

func errorValue(err error) interface{} {
	if err == nil {
		return nil
	}
	return err.Error()
}

// jsRun implements hopelang.run(code).
func jsRun(_ js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{
			"output": []interface{}{},
			"error":  "hopelang.run requires 1 argument: code (string)",
		})
	}

	lines, err := runner.Output(context.Background(), args[0].String())
	output := make([]interface{}, len(lines))
	for i, l := range lines {
		output[i] = l
	}
	return js.ValueOf(map[string]interface{}{
		"output": output,
		"error":  errorValue(err),
	})
}

// jsCheck implements hopelang.check(code).
func jsCheck(_ js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{
			"error":      "hopelang.check requires 1 argument: code (string)",
			"incomplete": false,
		})
	}
	_, err := hopelang.Parse(args[0].String())
	return js.ValueOf(map[string]interface{}{
		"error":      errorValue(err),
		"incomplete": types.IsIncomplete(err),
	})
}

func main() {
	api := map[string]interface{}{
		"run":   js.FuncOf(jsRun),
		"check": js.FuncOf(jsCheck),
		"version": js.FuncOf(func(_ js.Value, _ []js.Value) interface{} {
			return hopelang.Version()
		}),
	}
	js.Global().Set("hopelang", js.ValueOf(api))

	// The JS event loop owns execution from here.
	select {}
}
