package ttlcache

import (
	"sync"
	"time"

	"booking-orchestrator/internal/pkg/clock"
)

type entry[T any] struct {
	value  T
	expiry time.Time
}

// Cache is a process-local map with per-entry expiry. Expired entries are dropped on read.
type Cache[T any] struct {
	mu      sync.RWMutex
	entries map[string]entry[T]
	clock   clock.Clock
}

func New[T any](clk clock.Clock) *Cache[T] {
	return &Cache[T]{
		entries: make(map[string]entry[T]),
		clock:   clk,
	}
}

func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		var zero T
		return zero, false
	}
	if !c.clock.Now().Before(e.expiry) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		var zero T
		return zero, false
	}
	return e.value, true
}

// Set ignores ttl <= 0
func (c *Cache[T]) Set(key string, value T, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.entries[key] = entry[T]{value: value, expiry: c.clock.Now().Add(ttl)}
	c.mu.Unlock()
}
