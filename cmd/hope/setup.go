package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/sandrolain/hopelang/pkg/config"
	"github.com/sandrolain/hopelang/pkg/evaluator"
	"github.com/sandrolain/hopelang/pkg/ext"
	"github.com/sandrolain/hopelang/pkg/ext/extwasm"
	"github.com/sandrolain/hopelang/pkg/modules"
)

// session is the evaluator stack built from a configuration.
type session struct {
	cfg    *config.Config
	logger *slog.Logger
	host   *extwasm.Host
	eval   *evaluator.Evaluator
}

// parseFlags handles the flags shared by run and repl and returns the
// remaining positional arguments.
func parseFlags(name string, args []string, stderr io.Writer) (cfgPath string, rest []string, err error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfgPath, "config", "", "path to a hope.yml configuration file")
	if err := fs.Parse(args); err != nil {
		return "", nil, err
	}
	return cfgPath, fs.Args(), nil
}

func newSession(ctx context.Context, cfgPath string, stdout, stderr io.Writer) (*session, error) {
	cfg, err := config.Find(cfgPath)
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	host := extwasm.NewHost(ctx, extwasm.WithLogger(logger))
	reg, err := buildRegistry(cfg, host, logger)
	if err != nil {
		_ = host.Close(ctx)
		return nil, err
	}

	ev := evaluator.New(
		evaluator.WithWriter(stdout),
		evaluator.WithModules(reg),
		evaluator.WithTimeout(cfg.Timeout()),
		evaluator.WithMaxDepth(cfg.MaxDepth),
		evaluator.WithLogger(logger),
		evaluator.WithDebug(cfg.SlogLevel() <= slog.LevelDebug),
	)
	return &session{cfg: cfg, logger: logger, host: host, eval: ev}, nil
}

func (s *session) close(ctx context.Context) {
	if err := s.host.Close(ctx); err != nil {
		s.logger.Warn("closing wasm host", "error", err)
	}
}

// buildRegistry starts from the built-in modules, drops the disabled ones and
// adds the configured WebAssembly modules.
func buildRegistry(cfg *config.Config, host *extwasm.Host, logger *slog.Logger) (*modules.Registry, error) {
	reg := ext.Registry()
	for _, name := range cfg.Disable {
		if _, ok := reg.Lookup(name); !ok {
			logger.Warn("disabled module is not built in", "module", name)
			continue
		}
		reg = reg.Without(name)
	}
	for _, wm := range cfg.WasmModules {
		mod, err := host.ModuleFromFile(wm.Name, wm.Path)
		if err != nil {
			return nil, fmt.Errorf("config %s: %w", cfg.Path, err)
		}
		reg = reg.With(mod)
		logger.Debug("registered wasm module", "module", wm.Name, "path", wm.Path)
	}
	return reg, nil
}
