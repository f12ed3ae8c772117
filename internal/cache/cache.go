// Package cache memoises compiled programs keyed by a content digest.
package cache

import (
	"encoding/binary"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/golang/groupcache/lru"
	"golang.org/x/sync/singleflight"
)

// Stats reports cache effectiveness.
type Stats struct {
	Hits    uint64
	Misses  uint64
	Entries int
}

// Cache is a bounded LRU safe for concurrent use. Concurrent misses on the
// same key run compute once.
type Cache[V any] struct {
	mu     sync.Mutex
	lru    *lru.Cache
	group  singleflight.Group
	hits   atomic.Uint64
	misses atomic.Uint64
}

// New returns a cache holding at most size entries. size must be positive.
func New[V any](size int) *Cache[V] {
	if size <= 0 {
		size = 1
	}
	return &Cache[V]{lru: lru.New(size)}
}

// GetOrCompute returns the cached value for key, calling compute on a miss.
// Errors are not cached. The boolean reports a cache hit.
func (c *Cache[V]) GetOrCompute(key uint64, compute func() (V, error)) (V, bool, error) {
	if v, ok := c.get(key); ok {
		c.hits.Add(1)
		return v, true, nil
	}
	c.misses.Add(1)

	result, err, _ := c.group.Do(strconv.FormatUint(key, 16), func() (any, error) {
		if v, ok := c.get(key); ok {
			return v, nil
		}
		v, err := compute()
		if err != nil {
			return v, err
		}
		c.mu.Lock()
		c.lru.Add(key, v)
		c.mu.Unlock()
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, false, err
	}
	return result.(V), false, nil
}

func (c *Cache[V]) get(key uint64) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if raw, ok := c.lru.Get(key); ok {
		return raw.(V), true
	}
	var zero V
	return zero, false
}

// Len returns the number of cached entries.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Purge drops every entry.
func (c *Cache[V]) Purge() {
	c.mu.Lock()
	c.lru.Clear()
	c.mu.Unlock()
}

// Stats returns hit and miss counters and the current size.
func (c *Cache[V]) Stats() Stats {
	return Stats{Hits: c.hits.Load(), Misses: c.misses.Load(), Entries: c.Len()}
}

// Key accumulates length-prefixed fields into an xxhash digest, so field
// boundaries are unambiguous.
type Key struct {
	d *xxhash.Digest
}

// NewKey starts an empty key.
func NewKey() *Key {
	return &Key{d: xxhash.New()}
}

// Field adds s to the key.
func (k *Key) Field(s string) *Key {
	var n [8]byte
	binary.LittleEndian.PutUint64(n[:], uint64(len(s)))
	_, _ = k.d.Write(n[:])
	_, _ = k.d.WriteString(s)
	return k
}

// Bool adds b to the key.
func (k *Key) Bool(b bool) *Key {
	if b {
		return k.Field("1")
	}
	return k.Field("0")
}

// Sum64 returns the digest.
func (k *Key) Sum64() uint64 {
	return k.d.Sum64()
}
