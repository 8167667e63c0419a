// Package cache keeps parsed programs keyed by their source text.
//
// Hosts that run the same snippet repeatedly (the REPL history, the
// WebAssembly entry points, Runner) look the source up here before
// lexing and parsing it again. A Program is read-only once built, so one
// cached tree can be evaluated any number of times, concurrently.
//
//	c := cache.New(128)
//	prog, err := c.GetOrParse(src, func() (*types.Program, error) {
//		return parser.Parse(src)
//	})
package cache

import (
	"container/list"
	"sync"

	"github.com/sandrolain/hopelang/pkg/types"
)

// DefaultCapacity is used when New is given a non-positive capacity.
const DefaultCapacity = 256

type entry struct {
	key  string
	prog *types.Program
}

// Cache is an LRU cache of parsed programs. Once full, the least recently
// used entry is evicted. Safe for concurrent use.
type Cache struct {
	mu       sync.Mutex
	capacity int
	ll       *list.List
	items    map[string]*list.Element
	hits     uint64
	misses   uint64
}

// Stats is a snapshot of the cache counters.
type Stats struct {
	Hits   uint64
	Misses uint64
	Len    int
}

// New creates a cache holding at most capacity programs.
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		capacity: capacity,
		ll:       list.New(),
		items:    make(map[string]*list.Element, capacity),
	}
}

// Get returns the program cached for src and marks it most recently used.
func (c *Cache) Get(src string) (*types.Program, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[src]
	if !ok {
		c.misses++
		return nil, false
	}
	c.hits++
	c.ll.MoveToFront(el)
	return el.Value.(*entry).prog, true
}

// Set stores prog under src, replacing any previous entry.
func (c *Cache) Set(src string, prog *types.Program) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[src]; ok {
		el.Value.(*entry).prog = prog
		c.ll.MoveToFront(el)
		return
	}
	if c.ll.Len() >= c.capacity {
		c.evictLocked()
	}
	c.items[src] = c.ll.PushFront(&entry{key: src, prog: prog})
}

// GetOrParse returns the cached program for src, or calls parse and caches
// its result. Failed parses are not cached.
func (c *Cache) GetOrParse(src string, parse func() (*types.Program, error)) (*types.Program, error) {
	if prog, ok := c.Get(src); ok {
		return prog, nil
	}
	prog, err := parse()
	if err != nil {
		return nil, err
	}
	c.Set(src, prog)
	return prog, nil
}

// Len returns the number of cached programs.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Capacity returns the maximum number of cached programs.
func (c *Cache) Capacity() int {
	return c.capacity
}

// Stats returns the hit and miss counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{Hits: c.hits, Misses: c.misses, Len: len(c.items)}
}

// Invalidate drops the entry for src, if any.
func (c *Cache) Invalidate(src string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[src]; ok {
		c.ll.Remove(el)
		delete(c.items, src)
	}
}

// Clear drops every entry. Counters are kept.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ll.Init()
	c.items = make(map[string]*list.Element, c.capacity)
}

// evictLocked must be called with c.mu held.
func (c *Cache) evictLocked() {
	el := c.ll.Back()
	if el == nil {
		return
	}
	c.ll.Remove(el)
	delete(c.items, el.Value.(*entry).key)
}
