package driver

import (
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"cjslex/internal/cjs"
)

// ResultCache maps content hashes to scan results: an LRU in memory in front
// of an optional DiskCache. Safe for concurrent use.
type ResultCache struct {
	mem  *lru.Cache[[32]byte, *cjs.ParseResult] // nil when memory tier is off
	disk *DiskCache

	hits   atomic.Uint64
	misses atomic.Uint64
}

// CacheStats counts lookups since the cache was created.
type CacheStats struct {
	Hits   uint64
	Misses uint64
}

// NewResultCache creates a cache holding up to memEntries results in memory.
// memEntries <= 0 disables the memory tier; disk may be nil.
func NewResultCache(memEntries int, disk *DiskCache) (*ResultCache, error) {
	c := &ResultCache{disk: disk}
	if memEntries > 0 {
		mem, err := lru.New[[32]byte, *cjs.ParseResult](memEntries)
		if err != nil {
			return nil, fmt.Errorf("result cache: %w", err)
		}
		c.mem = mem
	}
	return c, nil
}

// Get returns the cached result for key. Disk hits are promoted to memory.
// The error is informational: a failing disk tier still yields a miss.
func (c *ResultCache) Get(key [32]byte) (*cjs.ParseResult, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	if c.mem != nil {
		if res, ok := c.mem.Get(key); ok {
			c.hits.Add(1)
			return res, true, nil
		}
	}
	res, ok, err := c.disk.Get(key)
	if ok {
		if c.mem != nil {
			c.mem.Add(key, res)
		}
		c.hits.Add(1)
		return res, true, nil
	}
	c.misses.Add(1)
	return nil, false, err
}

// Put stores res under key in both tiers.
func (c *ResultCache) Put(key [32]byte, res *cjs.ParseResult) error {
	if c == nil || res == nil {
		return nil
	}
	if c.mem != nil {
		c.mem.Add(key, res)
	}
	return c.disk.Put(key, res)
}

// Stats returns hit and miss counters.
func (c *ResultCache) Stats() CacheStats {
	if c == nil {
		return CacheStats{}
	}
	return CacheStats{Hits: c.hits.Load(), Misses: c.misses.Load()}
}

// Len returns the number of results held in memory.
func (c *ResultCache) Len() int {
	if c == nil || c.mem == nil {
		return 0
	}
	return c.mem.Len()
}
