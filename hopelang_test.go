package hopelang_test

import (
	"context"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/sandrolain/hopelang"
	"github.com/sandrolain/hopelang/pkg/evaluator"
	"github.com/sandrolain/hopelang/pkg/modules"
	"github.com/sandrolain/hopelang/pkg/runtime"
	"github.com/sandrolain/hopelang/pkg/types"
)

func TestVersion(t *testing.T) {
	if !strings.HasPrefix(hopelang.Version(), "v") {
		t.Errorf("Version() = %q", hopelang.Version())
	}
}

func TestRun(t *testing.T) {
	v, err := hopelang.Run(context.Background(), "fn sq(x)\n  return x * x\nend\nsq(7)",
		evaluator.WithWriter(nil))
	if err != nil {
		t.Fatal(err)
	}
	if !runtime.Equal(v, runtime.Number(49)) {
		t.Errorf("Run = %v, want 49", v)
	}
}

func TestOutput(t *testing.T) {
	lines, err := hopelang.Output(`import "blocode"
import "math"
print "start"
move(sqrt(9))
turn(90)`)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"start", ">> MOVE 3", ">> TURN 90"}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("Output = %q, want %q", lines, want)
	}
}

func TestOutputPartialOnError(t *testing.T) {
	lines, err := hopelang.Output("print 1\nprint 2\nmissing()\nprint 3")
	if !types.IsKind(err, types.KindNameError) {
		t.Fatalf("expected NameError, got %v", err)
	}
	if !reflect.DeepEqual(lines, []string{"1", "2"}) {
		t.Errorf("lines = %q", lines)
	}
}

func TestRunModulesOverride(t *testing.T) {
	_, err := hopelang.Output(`import "blocode"`, evaluator.WithModules(modules.NewRegistry()))
	if types.CodeOf(err) != types.ErrModuleNotFound {
		t.Fatalf("expected %s, got %v", types.ErrModuleNotFound, err)
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := hopelang.Parse("x = (1"); !types.IsKind(err, types.KindParseError) {
		t.Errorf("expected ParseError, got %v", err)
	}
	if _, err := hopelang.Run(context.Background(), "@"); !types.IsKind(err, types.KindLexError) {
		t.Errorf("expected LexError, got %v", err)
	}
}

func TestMustParse(t *testing.T) {
	if prog := hopelang.MustParse("x = 1"); len(prog.Body) != 1 {
		t.Errorf("MustParse body = %v", prog.Body)
	}
	defer func() {
		if recover() == nil {
			t.Error("MustParse did not panic on invalid source")
		}
	}()
	hopelang.MustParse("fn (")
}

func TestRunnerCachesPrograms(t *testing.T) {
	r := hopelang.NewRunner(8)
	ctx := context.Background()
	src := "x = 1\nwhile x < 4\n  print x\n  x = x + 1\nend"

	for i := 0; i < 3; i++ {
		lines, err := r.Output(ctx, src)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(lines, []string{"1", "2", "3"}) {
			t.Fatalf("run %d lines = %q", i, lines)
		}
	}
	if s := r.Cache().Stats(); s.Len != 1 || s.Hits != 2 || s.Misses != 1 {
		t.Errorf("Stats() = %+v", s)
	}
}

func TestRunnerFreshGlobals(t *testing.T) {
	r := hopelang.NewRunner(8)
	ctx := context.Background()
	if _, err := r.Output(ctx, "counter = 1"); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Output(ctx, "print counter"); !types.IsKind(err, types.KindNameError) {
		t.Errorf("globals leaked between runs: %v", err)
	}
}

func TestRunnerOptions(t *testing.T) {
	r := hopelang.NewRunner(4, evaluator.WithMaxDepth(10))
	_, err := r.Output(context.Background(), "fn f(n)\n  return f(n + 1)\nend\nf(0)")
	if types.CodeOf(err) != types.ErrStackOverflow {
		t.Errorf("expected %s, got %v", types.ErrStackOverflow, err)
	}
}

func TestRunnerConcurrent(t *testing.T) {
	r := hopelang.NewRunner(4)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			lines, err := r.Output(ctx, "import \"painter\"\npenDown()\nforward(10)")
			if err != nil {
				t.Error(err)
				return
			}
			if !reflect.DeepEqual(lines, []string{">> PEN_DOWN", ">> FORWARD 10"}) {
				t.Errorf("lines = %q", lines)
			}
		}()
	}
	wg.Wait()
}
