// Package cache provides a process-wide TTL cache for expensive or
// auth-gated upstream calls: provider data pulls and login tokens.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"

	"github.com/crisismap/signal-aggregator/internal/observability"
)

// Cache stores (value, expiry) pairs keyed by cache name. It is shared across
// concurrent aggregation runs; concurrent refills of the same expired key are
// coalesced into a single upstream call, and a failed refill serves the last
// good value when one exists.
type Cache struct {
	clock   clockwork.Clock
	metrics *observability.Metrics
	group   singleflight.Group

	mu      sync.Mutex
	entries map[string]entry
}

type entry struct {
	value     any
	expiresAt time.Time
}

// New creates a Cache. A nil clock defaults to the real clock; metrics may be
// nil to disable instrumentation.
func New(clock clockwork.Clock, metrics *observability.Metrics) *Cache {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Cache{
		clock:   clock,
		metrics: metrics,
		entries: make(map[string]entry),
	}
}

// GetOrFill returns the cached value for key if it has not expired, otherwise
// calls fill once (coalescing concurrent callers) and caches the result for
// ttl. When fill fails and a previously cached value exists, that stale value
// is served instead of the error.
func (c *Cache) GetOrFill(ctx context.Context, key string, ttl time.Duration, fill func(context.Context) (any, error)) (any, error) {
	if v, ok := c.lookup(key); ok {
		c.observe(key, "hit")
		return v, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		// A caller that held the flight may have refilled while we queued.
		if v, ok := c.lookup(key); ok {
			c.observe(key, "hit")
			return v, nil
		}
		c.observe(key, "miss")

		v, err := fill(ctx)
		if err != nil {
			if stale, ok := c.lookupAny(key); ok {
				c.observe(key, "stale")
				return stale, nil
			}
			return nil, err
		}

		c.mu.Lock()
		c.entries[key] = entry{value: v, expiresAt: c.clock.Now().Add(ttl)}
		c.mu.Unlock()
		return v, nil
	})
	return v, err
}

// Invalidate drops a key so the next GetOrFill refills it. Used when an
// upstream rejects a cached token before its expected expiry.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// lookup returns the value for key if present and not expired.
func (c *Cache) lookup(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || !c.clock.Now().Before(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

// lookupAny returns the value for key regardless of expiry.
func (c *Cache) lookupAny(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	return e.value, ok
}

func (c *Cache) observe(key, result string) {
	if c.metrics == nil {
		return
	}
	c.metrics.CacheLookups.WithLabelValues(key, result).Inc()
}
