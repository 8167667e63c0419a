package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sandrolain/hopelang/pkg/parser"
)

const sourceExt = ".hl"

func cmdRun(args []string, stdout, stderr io.Writer) int {
	cfgPath, rest, err := parseFlags("run", args, stderr)
	if err != nil {
		return 2
	}
	if len(rest) != 1 {
		fmt.Fprintf(stderr, "usage: %s run [-config file] <file%s>\n", appName, sourceExt)
		return 2
	}

	file := rest[0]
	if filepath.Ext(file) != sourceExt {
		fmt.Fprintf(stderr, "%s: %s: file must have %q extension\n", appName, file, sourceExt)
		return 1
	}
	src, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(stderr, "%s: cannot read %s: %v\n", appName, file, err)
		return 1
	}

	ctx := context.Background()
	s, err := newSession(ctx, cfgPath, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", appName, err)
		return 1
	}
	defer s.close(ctx)

	prog, err := parser.Parse(string(src))
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", file, err)
		return 1
	}
	s.logger.Debug("running program", "file", file, "statements", len(prog.Body))

	if _, err := s.eval.Eval(ctx, prog); err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", file, err)
		return 1
	}
	return 0
}
