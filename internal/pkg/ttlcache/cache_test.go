//go:build unit

package ttlcache_test

import (
	"testing"
	"time"

	"booking-orchestrator/internal/pkg/clock"
	"booking-orchestrator/internal/pkg/ttlcache"

	"github.com/stretchr/testify/assert"
)

func TestCache_Expiry(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	c := ttlcache.New[int](clk)

	c.Set("a", 1, 30*time.Second)
	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	clk.Add(29 * time.Second)
	_, ok = c.Get("a")
	assert.True(t, ok)

	clk.Add(time.Second)
	_, ok = c.Get("a")
	assert.False(t, ok, "entry expires exactly at ttl")
}

func TestCache_ZeroTTLDisablesCaching(t *testing.T) {
	c := ttlcache.New[string](clock.NewMockClock(time.Now()))
	c.Set("k", "v", 0)

	_, ok := c.Get("k")
	assert.False(t, ok)
}
