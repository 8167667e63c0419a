// Command hope runs HopeLang programs and hosts an interactive REPL.
//
//	hope run [-config hope.yml] program.hl
//	hope repl [-config hope.yml]
//	hope version
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sandrolain/hopelang"
)

const appName = "hope"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return 2
	}

	switch cmd := args[0]; cmd {
	case "run":
		return cmdRun(args[1:], stdout, stderr)
	case "repl":
		return cmdRepl(args[1:], stdin, stdout, stderr)
	case "version":
		fmt.Fprintln(stdout, hopelang.Version())
		return 0
	case "-h", "--help", "help":
		usage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "%s: unknown command %q\n", appName, cmd)
		usage(stderr)
		return 2
	}
}

func usage(w io.Writer) {
	fmt.Fprintf(w, `HopeLang %s

Usage:
  %s run [-config file] <file.hl>   Run a program.
  %s repl [-config file]            Start the REPL.
  %s version                        Print the version.

Without -config, %s is read from the working directory when present.
`, hopelang.Version(), appName, appName, appName, "hope.yml")
}
