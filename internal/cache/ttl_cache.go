package cache

import (
	"sync"
	"time"
)

// entry stores a cached value and its absolute expiration timestamp.
type entry[V any] struct {
	value     V
	expiresAt time.Time // zero means no expiration
}

// TTLCache is a goroutine-safe map-backed cache with per-item TTL.
// There is no background janitor; expired entries are treated as misses and
// reclaimed lazily or via PurgeExpired.
type TTLCache[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]entry[V]
}

// NewTTLCache constructs an empty cache.
func NewTTLCache[K comparable, V any]() *TTLCache[K, V] {
	return &TTLCache[K, V]{items: make(map[K]entry[V])}
}

// now is a small indirection to allow test stubbing.
var now = time.Now

// Get returns the value and whether it was present and not expired.
func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var zero V
	e, ok := c.items[key]
	if !ok {
		return zero, false
	}
	if !e.expiresAt.IsZero() && now().After(e.expiresAt) {
		return zero, false
	}
	return e.value, true
}

// Set stores the value with an optional TTL. If ttl <= 0 the entry does not
// expire.
func (c *TTLCache[K, V]) Set(key K, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var exp time.Time
	if ttl > 0 {
		exp = now().Add(ttl)
	}
	c.items[key] = entry[V]{value: value, expiresAt: exp}
}

// Delete removes a key if present.
func (c *TTLCache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// Len counts only non-expired entries.
func (c *TTLCache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	count := 0
	for _, e := range c.items {
		if e.expiresAt.IsZero() || now().Before(e.expiresAt) {
			count++
		}
	}
	return count
}

// PurgeExpired scans and removes expired entries.
func (c *TTLCache[K, V]) PurgeExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()
	nowTs := now()
	for k, e := range c.items {
		if !e.expiresAt.IsZero() && nowTs.After(e.expiresAt) {
			delete(c.items, k)
		}
	}
}
