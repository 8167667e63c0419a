// Package extwasm exposes WebAssembly modules to HopeLang programs.
//
// A Host owns one wazero runtime. Each WebAssembly binary registered through
// Host.Module becomes an importable module whose numeric exports (functions
// taking and returning only i32, i64, f32 or f64) are installed as native
// functions:
//
//	host := extwasm.NewHost(ctx)
//	defer host.Close(ctx)
//	reg := ext.Registry().With(host.Module("fastmath", wasmBytes))
//
// The binary is compiled and instantiated on first import and the instance
// is shared by every later import through the same Host.
package extwasm

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/sandrolain/hopelang/pkg/ext/extutil"
	"github.com/sandrolain/hopelang/pkg/modules"
	"github.com/sandrolain/hopelang/pkg/runtime"
)

// Host instantiates WebAssembly modules in a shared wazero runtime.
// It is safe for concurrent use.
type Host struct {
	mu        sync.Mutex
	rt        wazero.Runtime
	instances map[string]*instance
	logger    *slog.Logger
}

type instance struct {
	mod  api.Module
	defs map[string]api.FunctionDefinition
}

// Option configures a Host.
type Option func(*Host)

// WithLogger sets the logger used for instantiation events.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Host) {
		h.logger = logger
	}
}

// NewHost creates a Host with a fresh wazero runtime.
func NewHost(ctx context.Context, opts ...Option) *Host {
	h := &Host{
		rt:        wazero.NewRuntime(ctx),
		instances: make(map[string]*instance),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Module returns an importable module backed by the WebAssembly binary.
func (h *Host) Module(name string, wasm []byte) modules.Module {
	return modules.Module{
		Name: name,
		Load: func(ctx context.Context, env *runtime.Environment) error {
			inst, err := h.instantiate(ctx, name, wasm)
			if err != nil {
				return err
			}
			return extutil.Install(env, inst.functions()...)
		},
	}
}

// ModuleFromFile reads a WebAssembly binary from path and returns its module.
func (h *Host) ModuleFromFile(name, path string) (modules.Module, error) {
	wasm, err := os.ReadFile(path)
	if err != nil {
		return modules.Module{}, fmt.Errorf("reading wasm module %q: %w", name, err)
	}
	return h.Module(name, wasm), nil
}

// Close releases the runtime and every instantiated module.
func (h *Host) Close(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.instances = make(map[string]*instance)
	return h.rt.Close(ctx)
}

func (h *Host) instantiate(ctx context.Context, name string, wasm []byte) (*instance, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if inst, ok := h.instances[name]; ok {
		return inst, nil
	}

	compiled, err := h.rt.CompileModule(ctx, wasm)
	if err != nil {
		return nil, fmt.Errorf("compiling wasm module %q: %w", name, err)
	}
	mod, err := h.rt.InstantiateModule(ctx, compiled, wazero.NewModuleConfig().WithName(name))
	if err != nil {
		return nil, fmt.Errorf("instantiating wasm module %q: %w", name, err)
	}

	inst := &instance{mod: mod, defs: compiled.ExportedFunctions()}
	h.instances[name] = inst
	h.logger.Debug("instantiated wasm module", "module", name, "exports", len(inst.defs))
	return inst, nil
}

// functions returns a definition for every numeric export, sorted by name.
func (inst *instance) functions() []extutil.FunctionDef {
	names := make([]string, 0, len(inst.defs))
	for n, def := range inst.defs {
		if numericSignature(def) {
			names = append(names, n)
		}
	}
	sort.Strings(names)

	defs := make([]extutil.FunctionDef, 0, len(names))
	for _, n := range names {
		def := inst.defs[n]
		defs = append(defs, extutil.FunctionDef{
			Name:    n,
			MinArgs: len(def.ParamTypes()),
			MaxArgs: len(def.ParamTypes()),
			Fn:      inst.native(n, def),
		})
	}
	return defs
}

func (inst *instance) native(name string, def api.FunctionDefinition) runtime.NativeFunc {
	fn := inst.mod.ExportedFunction(name)
	params := def.ParamTypes()
	results := def.ResultTypes()

	return func(ctx context.Context, args []runtime.Value, _ *runtime.Environment) (runtime.Value, error) {
		in := make([]uint64, len(params))
		for i, vt := range params {
			x, err := extutil.NumberArg(name, args, i)
			if err != nil {
				return nil, err
			}
			in[i] = encode(vt, x)
		}

		out, err := fn.Call(ctx, in...)
		if err != nil {
			return nil, fmt.Errorf("calling wasm function %s: %w", name, err)
		}
		if len(results) == 0 || len(out) == 0 {
			return runtime.Null{}, nil
		}
		return runtime.Number(decode(results[0], out[0])), nil
	}
}

// numericSignature reports whether every parameter is numeric and there is
// at most one numeric result.
func numericSignature(def api.FunctionDefinition) bool {
	if len(def.ResultTypes()) > 1 {
		return false
	}
	return allNumeric(def.ParamTypes()) && allNumeric(def.ResultTypes())
}

func allNumeric(vts []api.ValueType) bool {
	for _, vt := range vts {
		switch vt {
		case api.ValueTypeI32, api.ValueTypeI64, api.ValueTypeF32, api.ValueTypeF64:
		default:
			return false
		}
	}
	return true
}

func encode(vt api.ValueType, x float64) uint64 {
	switch vt {
	case api.ValueTypeI32:
		return api.EncodeI32(int32(x))
	case api.ValueTypeI64:
		return uint64(int64(x))
	case api.ValueTypeF32:
		return api.EncodeF32(float32(x))
	default:
		return api.EncodeF64(x)
	}
}

func decode(vt api.ValueType, v uint64) float64 {
	switch vt {
	case api.ValueTypeI32:
		return float64(api.DecodeI32(v))
	case api.ValueTypeI64:
		return float64(int64(v))
	case api.ValueTypeF32:
		return float64(api.DecodeF32(v))
	default:
		return api.DecodeF64(v)
	}
}
