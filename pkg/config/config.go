// Package config loads the hope command's YAML configuration file.
//
//	log_level: info
//	timeout: 5s
//	max_depth: 200
//	prompt: "> "
//	history_file: ~/.hope_history
//	disable: [web]
//	wasm_modules:
//	  - name: fastmath
//	    path: ./fastmath.wasm
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the configuration file looked up in the working directory
// when no path is given.
const DefaultFile = "hope.yml"

// Config is the decoded configuration.
type Config struct {
	// Path is the absolute path of the loaded file, empty for Default.
	Path string `yaml:"-"`

	LogLevel    string       `yaml:"log_level"`
	RunTimeout  Duration     `yaml:"timeout"`
	MaxDepth    int          `yaml:"max_depth"`
	Prompt      string       `yaml:"prompt"`
	HistoryFile string       `yaml:"history_file"`
	Disable     []string     `yaml:"disable"`
	WasmModules []WasmModule `yaml:"wasm_modules"`
}

// WasmModule names a WebAssembly binary to expose as an importable module.
// A relative Path is resolved against the configuration file's directory.
type WasmModule struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// Duration is a time.Duration written in YAML as a Go duration string.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		*d = 0
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("config: line %d: invalid timeout %q", value.Line, s)
	}
	*d = Duration(parsed)
	return nil
}

// ValidationError aggregates configuration problems.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		LogLevel:    "info",
		Prompt:      "> ",
		HistoryFile: "~/.hope_history",
	}
}

// Load reads and validates the file at path. Keys missing from the file keep
// their Default values; unknown keys are rejected.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	cfg := Default()
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse %s: %w", absPath, err)
	}
	cfg.Path = absPath

	dir := filepath.Dir(absPath)
	for i, m := range cfg.WasmModules {
		if m.Path != "" && !filepath.IsAbs(m.Path) {
			cfg.WasmModules[i].Path = filepath.Join(dir, m.Path)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Find loads path, or DefaultFile when path is empty and that file exists,
// or returns Default.
func Find(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	if _, err := os.Stat(DefaultFile); err == nil {
		return Load(DefaultFile)
	}
	return Default(), nil
}

// Validate reports every problem found, as a *ValidationError.
func (c *Config) Validate() error {
	var errs ValidationError
	if _, ok := parseLevel(c.LogLevel); !ok {
		errs.Issues = append(errs.Issues, fmt.Sprintf("log_level %q must be one of debug, info, warn, error", c.LogLevel))
	}
	if c.RunTimeout < 0 {
		errs.Issues = append(errs.Issues, "timeout must not be negative")
	}
	if c.MaxDepth < 0 {
		errs.Issues = append(errs.Issues, "max_depth must not be negative")
	}
	for i, name := range c.Disable {
		if strings.TrimSpace(name) == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("disable[%d] must be a non-empty module name", i))
		}
	}

	seen := make(map[string]int, len(c.WasmModules))
	for i, m := range c.WasmModules {
		if m.Name == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("wasm_modules[%d] missing name", i))
		} else if first, dup := seen[m.Name]; dup {
			errs.Issues = append(errs.Issues, fmt.Sprintf("wasm_modules[%d] repeats name %q from wasm_modules[%d]", i, m.Name, first))
		} else {
			seen[m.Name] = i
		}
		if m.Path == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("wasm_modules[%d] missing path", i))
		}
	}

	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// SlogLevel returns LogLevel as a slog.Level, Info when unrecognised.
func (c *Config) SlogLevel() slog.Level {
	lvl, _ := parseLevel(c.LogLevel)
	return lvl
}

// Timeout returns the evaluation timeout, zero for none.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.RunTimeout)
}

// HistoryPath returns HistoryFile with a leading ~ expanded, or "" when
// history is disabled or the home directory is unknown.
func (c *Config) HistoryPath() string {
	p := c.HistoryFile
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		return filepath.Join(home, strings.TrimPrefix(p, "~"))
	}
	return p
}

// Disabled reports whether the built-in module name is listed in Disable.
func (c *Config) Disabled(name string) bool {
	for _, d := range c.Disable {
		if strings.TrimSpace(d) == name {
			return true
		}
	}
	return false
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "", "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
