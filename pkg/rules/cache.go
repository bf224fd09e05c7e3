package rules

import (
	"sync"
	"time"
)

// Stamp identifies the state of a pattern source at parse time. A cache
// entry is valid only while the source's stamp is unchanged.
type Stamp struct {
	// Size and ModTime come from the pattern file's metadata.
	Size    int64
	ModTime time.Time

	// IgnoreCase records the fold setting baked into the parsed rules;
	// flipping core.ignoreCase invalidates the entry.
	IgnoreCase bool
}

// Equal reports whether two stamps describe the same source state.
func (s Stamp) Equal(o Stamp) bool {
	return s.Size == o.Size && s.ModTime.Equal(o.ModTime) && s.IgnoreCase == o.IgnoreCase
}

// Cache holds parsed rule sets keyed by their source. The internal mutex is
// held for the whole duration of a build, so translating pattern text into a
// RuleSet is mutually exclusive per cache; the RuleSets handed out are
// immutable snapshots and need no lock to use.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	stamp Stamp
	rules *RuleSet
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]cacheEntry)}
}

// GetOrBuild returns the cached RuleSet for key while stamp still matches,
// otherwise it rebuilds through build under the write lock and caches the
// result. A failed build caches nothing and the error is returned as-is.
func (c *Cache) GetOrBuild(key string, stamp Stamp, build func() (*RuleSet, error)) (*RuleSet, error) {
	c.mu.RLock()
	if e, ok := c.entries[key]; ok && e.stamp.Equal(stamp) {
		rs := e.rules
		c.mu.RUnlock()
		return rs, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Another goroutine may have built the entry while we waited.
	if e, ok := c.entries[key]; ok && e.stamp.Equal(stamp) {
		return e.rules, nil
	}

	rs, err := build()
	if err != nil {
		return nil, err
	}
	c.entries[key] = cacheEntry{stamp: stamp, rules: rs}
	return rs, nil
}

// Invalidate drops the cached entry for key, if any.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}
