package cache_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/sandrolain/hopelang/pkg/cache"
	"github.com/sandrolain/hopelang/pkg/parser"
	"github.com/sandrolain/hopelang/pkg/types"
)

func mustParse(t *testing.T, src string) *types.Program {
	t.Helper()
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	return prog
}

func TestNew(t *testing.T) {
	c := cache.New(10)
	if c.Len() != 0 || c.Capacity() != 10 {
		t.Fatalf("New(10): len %d capacity %d", c.Len(), c.Capacity())
	}
	if got := cache.New(0).Capacity(); got != cache.DefaultCapacity {
		t.Errorf("New(0).Capacity() = %d, want %d", got, cache.DefaultCapacity)
	}
}

func TestSetGet(t *testing.T) {
	c := cache.New(4)
	prog := mustParse(t, "x = 1")
	c.Set("x = 1", prog)

	got, ok := c.Get("x = 1")
	if !ok || got != prog {
		t.Fatalf("Get = %p, %v; want %p, true", got, ok, prog)
	}
	if _, ok := c.Get("y = 2"); ok {
		t.Error("expected miss")
	}
	if s := c.Stats(); s.Hits != 1 || s.Misses != 1 || s.Len != 1 {
		t.Errorf("Stats() = %+v", s)
	}
}

func TestSetReplaces(t *testing.T) {
	c := cache.New(4)
	first := mustParse(t, "1")
	second := mustParse(t, "1")
	c.Set("1", first)
	c.Set("1", second)
	if got, _ := c.Get("1"); got != second || c.Len() != 1 {
		t.Errorf("Set did not replace the existing entry")
	}
}

func TestEviction(t *testing.T) {
	c := cache.New(3)
	for _, k := range []string{"a", "b", "c"} {
		c.Set(k, mustParse(t, k))
	}
	// Touch a so that b becomes the oldest.
	c.Get("a")
	c.Set("d", mustParse(t, "d"))

	if c.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", c.Len())
	}
	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted")
	}
	for _, k := range []string{"a", "c", "d"} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("%s should still be cached", k)
		}
	}
}

func TestGetOrParse(t *testing.T) {
	c := cache.New(4)
	calls := 0
	parse := func(src string) func() (*types.Program, error) {
		return func() (*types.Program, error) {
			calls++
			return parser.Parse(src)
		}
	}

	p1, err := c.GetOrParse("print 1", parse("print 1"))
	if err != nil {
		t.Fatal(err)
	}
	p2, err := c.GetOrParse("print 1", parse("print 1"))
	if err != nil {
		t.Fatal(err)
	}
	if p1 != p2 || calls != 1 {
		t.Errorf("second lookup reparsed: calls=%d same=%v", calls, p1 == p2)
	}

	_, err = c.GetOrParse("x = ", parse("x = "))
	if !types.IsKind(err, types.KindParseError) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if _, ok := c.Get("x = "); ok {
		t.Error("failed parse must not be cached")
	}

	boom := errors.New("boom")
	if _, err := c.GetOrParse("z", func() (*types.Program, error) { return nil, boom }); !errors.Is(err, boom) {
		t.Errorf("error not propagated: %v", err)
	}
}

func TestInvalidateAndClear(t *testing.T) {
	c := cache.New(4)
	c.Set("a", mustParse(t, "a"))
	c.Set("b", mustParse(t, "b"))

	c.Invalidate("a")
	c.Invalidate("missing")
	if _, ok := c.Get("a"); ok || c.Len() != 1 {
		t.Errorf("Invalidate left len %d", c.Len())
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Clear left len %d", c.Len())
	}
	c.Set("c", mustParse(t, "c"))
	if _, ok := c.Get("c"); !ok {
		t.Error("cache unusable after Clear")
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := cache.New(8)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				src := fmt.Sprintf("x = %d", (i+j)%12)
				if _, err := c.GetOrParse(src, func() (*types.Program, error) { return parser.Parse(src) }); err != nil {
					t.Error(err)
					return
				}
			}
		}(i)
	}
	wg.Wait()
	if c.Len() > c.Capacity() {
		t.Errorf("Len() = %d exceeds capacity %d", c.Len(), c.Capacity())
	}
}
