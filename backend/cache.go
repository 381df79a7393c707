package backend

import (
	"sync"

	"github.com/e-jerk/gawk/nfa"
)

// cacheKey distinguishes a pattern compiled case-sensitively from the same
// pattern compiled case-insensitively; sync.Map accepts any comparable key,
// so there is no need to fold the two into one string.
type cacheKey struct {
	pattern string
	ci      bool
}

// ProgramCache is a concurrency-safe cache of compiled regex programs:
// sync.Map gives lock-free reads on the hot path, a mutex-protected FIFO
// order slice bounds memory with simple eviction. Repeated dispatches for
// the same pattern string skip recompiling the NFA and rebuilding its
// bitmap pool.
type ProgramCache struct {
	cache   sync.Map
	orderMu sync.Mutex
	order   []cacheKey
	size    int
	maxSize int
}

// NewProgramCache creates a cache holding at most maxSize compiled
// programs. A non-positive maxSize is replaced with a sensible default.
func NewProgramCache(maxSize int) *ProgramCache {
	if maxSize <= 0 {
		maxSize = 128
	}
	return &ProgramCache{
		order:   make([]cacheKey, 0, maxSize),
		maxSize: maxSize,
	}
}

// Get returns the compiled program for pattern/caseInsensitive, compiling
// and caching it first if this is the first request for that combination.
func (c *ProgramCache) Get(pattern string, caseInsensitive bool) (*nfa.Program, error) {
	key := cacheKey{pattern: pattern, ci: caseInsensitive}

	if v, ok := c.cache.Load(key); ok {
		return v.(*nfa.Program), nil
	}

	prog, err := nfa.Compile(pattern, caseInsensitive)
	if err != nil {
		return nil, err
	}

	if existing, loaded := c.cache.LoadOrStore(key, prog); loaded {
		return existing.(*nfa.Program), nil
	}

	c.orderMu.Lock()
	c.order = append(c.order, key)
	c.size++
	for c.size > c.maxSize && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		c.cache.Delete(oldest)
		c.size--
	}
	c.orderMu.Unlock()

	return prog, nil
}

// Len reports the approximate number of cached programs.
func (c *ProgramCache) Len() int {
	c.orderMu.Lock()
	defer c.orderMu.Unlock()
	return c.size
}

// Clear empties the cache.
func (c *ProgramCache) Clear() {
	c.orderMu.Lock()
	defer c.orderMu.Unlock()
	for _, k := range c.order {
		c.cache.Delete(k)
	}
	c.order = c.order[:0]
	c.size = 0
}
