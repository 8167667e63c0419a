//go:build wasip1

// Command hopelang-wasm-wasi is the WASI (wasip1) entrypoint for use from any
// language that supports the WebAssembly System Interface.
//
// Protocol: single JSON object on stdin → single JSON object on stdout.
//
//	stdin:  { "code": "<hopelang source>", "timeout_ms": 1000 }
//	stdout: { "output": ["line", ...] }                    on success
//	        { "output": [...], "error": "<message>" }      on failure (exit code 1)
//
// Build:
//
//	GOOS=wasip1 GOARCH=wasm go build -o hopelang.wasm ./cmd/wasm/wasi/
//
// Usage with wasmtime CLI:
//
//	echo '{"code":"print 1 + 2"}' | wasmtime hopelang.wasm
package main

import (
	"encoding/json"
	"os"
	"time"

	"github.com/sandrolain/hopelang"
	"github.com/sandrolain/hopelang/pkg/evaluator"
)

type request struct {
	Code      string `json:"code"`
	TimeoutMS int    `json:"timeout_ms,omitempty"`
}

type response struct {
	Output []string `json:"output"`
	Error  string   `json:"error,omitempty"`
}

func writeResponse(r response, exitCode int) {
	if r.Output == nil {
		r.Output = []string{}
	}
	_ = json.NewEncoder(os.Stdout).Encode(r)
	os.Exit(exitCode)
}

func main() {
	var req request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeResponse(response{Error: "invalid request JSON: " + err.Error()}, 1)
	}

	var opts []evaluator.EvalOption
	if req.TimeoutMS > 0 {
		opts = append(opts, evaluator.WithTimeout(time.Duration(req.TimeoutMS)*time.Millisecond))
	}

	lines, err := hopelang.Output(req.Code, opts...)
	if err != nil {
		writeResponse(response{Output: lines, Error: err.Error()}, 1)
	}
	writeResponse(response{Output: lines}, 0)
}
