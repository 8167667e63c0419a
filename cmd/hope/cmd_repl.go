package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/sandrolain/hopelang"
	"github.com/sandrolain/hopelang/pkg/cache"
	"github.com/sandrolain/hopelang/pkg/parser"
	"github.com/sandrolain/hopelang/pkg/runtime"
	"github.com/sandrolain/hopelang/pkg/types"
)

const promptCont = "... "

// lineReader is the part of *liner.State the REPL loop needs.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

func cmdRepl(args []string, _ io.Reader, stdout, stderr io.Writer) int {
	cfgPath, _, err := parseFlags("repl", args, stderr)
	if err != nil {
		return 2
	}

	ctx := context.Background()
	s, err := newSession(ctx, cfgPath, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", appName, err)
		return 1
	}
	defer s.close(ctx)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := s.cfg.HistoryPath()
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	fmt.Fprintf(stdout, "HopeLang %s\n", hopelang.Version())
	repl(ctx, s, ln, stdout, stderr)
	return 0
}

// repl evaluates inputs in one persistent global Environment until the user
// enters an empty line or exit. An error aborts only the input that raised it.
func repl(ctx context.Context, s *session, in lineReader, stdout, stderr io.Writer) {
	env := s.eval.NewGlobalEnv()
	programs := cache.New(64)

	for {
		code, ok := readInput(in, s.cfg.Prompt, promptCont)
		if !ok {
			fmt.Fprintln(stdout)
			return
		}
		trimmed := strings.TrimSpace(code)
		if trimmed == "" || trimmed == "exit" {
			return
		}
		in.AppendHistory(strings.ReplaceAll(code, "\n", " "))

		prog, err := programs.GetOrParse(code, func() (*types.Program, error) {
			return parser.Parse(code)
		})
		if err != nil {
			fmt.Fprintln(stderr, err)
			continue
		}
		v, err := s.eval.EvalIn(ctx, prog, env)
		if err != nil {
			fmt.Fprintln(stderr, err)
			continue
		}
		if _, isNull := v.(runtime.Null); !isNull && v != nil {
			fmt.Fprintln(stdout, runtime.ToString(v))
		}
	}
}

// readInput reads one logical input, prompting for more lines while the
// source so far only fails for lack of input. A blank continuation line
// submits what has been typed.
func readInput(in lineReader, prompt, cont string) (string, bool) {
	var b strings.Builder
	for {
		p := prompt
		if b.Len() > 0 {
			p = cont
		}
		line, err := in.Prompt(p)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
				return "", false
			}
			return b.String(), true
		}
		if b.Len() > 0 && strings.TrimSpace(line) == "" {
			return b.String(), true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if _, err := parser.Parse(src); err != nil && types.IsIncomplete(err) {
			continue
		}
		return src, true
	}
}
