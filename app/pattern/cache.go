package pattern

import (
	"log/slog"
	"sync"
)

// Source supplies rule lists together with a version that changes every time
// a list is reassigned.
type Source interface {
	List(name string) ([]string, uint64)
}

type cacheKey struct {
	name     string
	biScript bool
}

type cacheEntry struct {
	version  uint64
	matchers []Matcher
}

// Cache keeps compiled matchers per list and recompiles a list as soon as
// its version differs from the compiled one.
type Cache struct {
	variants Variants
	entries  map[cacheKey]cacheEntry
	mu       sync.Mutex
}

func NewCache(variants Variants) *Cache {
	return &Cache{
		variants: variants,
		entries:  make(map[cacheKey]cacheEntry),
	}
}

// Get returns the matchers for the named list. biScript selects the
// script-variant regular expressions, otherwise plain substring matchers.
func (c *Cache) Get(src Source, name string, biScript bool) []Matcher {
	values, version := src.List(name)
	key := cacheKey{name: name, biScript: biScript}

	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.entries[key]; ok && entry.version == version {
		return entry.matchers
	}

	var matchers []Matcher
	if biScript {
		matchers = CompileList(values, c.variants)
	} else {
		matchers = LiteralList(values)
	}
	c.entries[key] = cacheEntry{version: version, matchers: matchers}

	slog.Debug("Pattern list compiled", "list", name, "bi_script", biScript, "entries", len(values), "compiled", len(matchers))
	return matchers
}
