package manager

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

type entry[V any] struct {
	value   V
	addedAt time.Time
}

// Cache is an LRU cache whose entries expire after a TTL. Board
// analyses are expensive (two network round trips plus scoring), so
// repeat requests for the same board within the TTL reuse the result.
// Safe for concurrent use.
type Cache[V any] struct {
	entries *lru.Cache[string, entry[V]]
	ttl     time.Duration
}

// NewCache creates a cache holding up to size entries for at most ttl.
func NewCache[V any](size int, ttl time.Duration) (*Cache[V], error) {
	entries, err := lru.New[string, entry[V]](size)
	if err != nil {
		return nil, err
	}
	return &Cache[V]{entries: entries, ttl: ttl}, nil
}

// Get returns the cached value for key if it is still fresh.
func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V
	e, ok := c.entries.Get(key)
	if !ok {
		return zero, false
	}
	if time.Since(e.addedAt) > c.ttl {
		c.entries.Remove(key)
		return zero, false
	}
	return e.value, true
}

// Add stores value under key, evicting the least recently used entry
// when full.
func (c *Cache[V]) Add(key string, value V) {
	c.entries.Add(key, entry[V]{value: value, addedAt: time.Now()})
}

// Len returns the number of cached entries, expired ones included.
func (c *Cache[V]) Len() int {
	return c.entries.Len()
}
