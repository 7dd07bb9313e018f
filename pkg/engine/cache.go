package engine

import (
	"github.com/yourusername/tlengine/internal/positionid"
)

// Cache is a transposition table mapping canonical fingerprints to solved
// game values. It only ever holds PrevWins or NextWins: an Unknown result
// depends on the depth budget that produced it, while a resolved value
// holds at any larger budget.
//
// A Cache belongs to one assistant and is not safe for concurrent use.
// All methods accept a nil receiver, which behaves as an empty cache that
// discards writes.
type Cache struct {
	entries map[positionid.Fingerprint]Value

	// Statistics
	lookups uint64
	hits    uint64
	adds    uint64
}

// NewCache creates an empty cache
func NewCache() *Cache {
	return &Cache{entries: make(map[positionid.Fingerprint]Value)}
}

// Lookup returns the stored value for a fingerprint
func (c *Cache) Lookup(key positionid.Fingerprint) (Value, bool) {
	if c == nil {
		return Unknown, false
	}
	c.lookups++
	v, ok := c.entries[key]
	if ok {
		c.hits++
	}
	return v, ok
}

// Add stores a resolved value. Unknown values are ignored.
func (c *Cache) Add(key positionid.Fingerprint, v Value) {
	if c == nil || v == Unknown {
		return
	}
	c.entries[key] = v
	c.adds++
}

// Len returns the number of stored positions
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Range calls fn for every entry until fn returns false.
func (c *Cache) Range(fn func(key positionid.Fingerprint, v Value) bool) {
	if c == nil {
		return
	}
	for k, v := range c.entries {
		if !fn(k, v) {
			return
		}
	}
}

// Flush clears all entries and statistics
func (c *Cache) Flush() {
	if c == nil {
		return
	}
	c.entries = make(map[positionid.Fingerprint]Value)
	c.lookups = 0
	c.hits = 0
	c.adds = 0
}

// Clone returns an independent copy of the entries, with fresh statistics.
func (c *Cache) Clone() *Cache {
	out := NewCache()
	out.Merge(c)
	return out
}

// Merge copies every entry of src into c.
func (c *Cache) Merge(src *Cache) {
	if c == nil || src == nil {
		return
	}
	for k, v := range src.entries {
		c.entries[k] = v
	}
}

// Stats returns cache statistics
func (c *Cache) Stats() (lookups, hits, adds uint64) {
	if c == nil {
		return 0, 0, 0
	}
	return c.lookups, c.hits, c.adds
}

// HitRate returns the cache hit rate as a percentage
func (c *Cache) HitRate() float64 {
	if c == nil || c.lookups == 0 {
		return 0
	}
	return float64(c.hits) / float64(c.lookups) * 100
}
