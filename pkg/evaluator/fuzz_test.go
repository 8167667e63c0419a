package evaluator_test

import (
	"context"
	"testing"
	"time"

	"github.com/sandrolain/hopelang/pkg/evaluator"
	"github.com/sandrolain/hopelang/pkg/ext"
	"github.com/sandrolain/hopelang/pkg/parser"
)

func FuzzEvaluator(f *testing.F) {
	seeds := []string{
		`print 1 + 2`,
		"x = 5\nprint x",
		"fn add(a, b) return a + b end\nprint add(2, 3)",
		`if 1 > 0 print "yes" else print "no" end`,
		"x = 0\nwhile x < 3\nx = x + 1\nend\nprint x",
		"import \"blocode\"\nmove(5)",
		"import \"math\"\nprint sqrt(16)",
		`fn f() return f() end f()`,
		`while true end`,
		`return 1`,
		`1/0`,
		``,
	}
	for _, s := range seeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, input string) {
		prog, err := parser.Parse(input)
		if err != nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()
		ev := evaluator.New(
			evaluator.WithOutput(func(string) {}),
			evaluator.WithModules(ext.Registry()),
			evaluator.WithMaxDepth(200),
		)
		_, _ = ev.Eval(ctx, prog)
	})
}
