// Package cache provides the TTL + LRU fetch cache shared by the catalog
// service. Lookups, eviction and in-flight de-duplication are keyed by
// string; the value map and the in-flight registry are kept separate so a
// pending fetch never occupies a cache slot.
package cache

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/simplelru"
	"golang.org/x/sync/singleflight"

	"github.com/mmcdole/gamedeck/internal/metrics"
)

const DefaultCapacity = 100

// Clock returns the current time. Tests substitute a fake.
type Clock func() time.Time

// Entry is one cached value and its freshness window.
type Entry[V any] struct {
	Key       string
	Value     V
	FetchedAt time.Time
	ExpiresAt time.Time
}

func (e Entry[V]) expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && !now.Before(e.ExpiresAt)
}

// Stats is a point-in-time view of the cache counters.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Shared    uint64
	Evictions uint64
}

// Cache is a bounded, expiring map with in-flight request de-duplication.
// It is safe for concurrent use.
type Cache[V any] struct {
	name   string
	ttl    time.Duration
	now    Clock
	logger *slog.Logger

	mu  sync.Mutex
	lru *simplelru.LRU[string, Entry[V]]

	flights singleflight.Group
	// afterMiss runs between Do's initial miss and joining a flight.
	afterMiss func(key string)

	hits      atomic.Uint64
	misses    atomic.Uint64
	shared    atomic.Uint64
	evictions atomic.Uint64
}

// Option configures a Cache.
type Option func(*options)

type options struct {
	capacity int
	ttl      time.Duration
	clock    Clock
	logger   *slog.Logger
}

// WithCapacity bounds the number of entries. Non-positive values fall back
// to DefaultCapacity.
func WithCapacity(n int) Option {
	return func(o *options) { o.capacity = n }
}

// WithTTL sets how long an entry stays fresh. Zero disables expiry.
func WithTTL(ttl time.Duration) Option {
	return func(o *options) { o.ttl = ttl }
}

func WithClock(c Clock) Option {
	return func(o *options) { o.clock = c }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// New creates a cache. name labels its metrics and log lines.
func New[V any](name string, opts ...Option) *Cache[V] {
	o := options{capacity: DefaultCapacity, clock: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if o.capacity <= 0 {
		o.capacity = DefaultCapacity
	}
	if o.clock == nil {
		o.clock = time.Now
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	// NewLRU only fails for a non-positive size, which is ruled out above.
	lru, _ := simplelru.NewLRU[string, Entry[V]](o.capacity, nil)

	return &Cache[V]{
		name:   name,
		ttl:    o.ttl,
		now:    o.clock,
		logger: o.logger,
		lru:    lru,
	}
}

// Get returns the value under key if present and not expired.
// A hit marks the entry most recently used; an expired entry is dropped.
func (c *Cache[V]) Get(key string) (V, bool) {
	v, ok := c.lookup(key)
	if ok {
		c.hits.Add(1)
		metrics.RecordCacheResult(c.name, metrics.ResultHit)
	}
	return v, ok
}

func (c *Cache[V]) lookup(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	e, ok := c.lru.Get(key)
	if !ok {
		return zero, false
	}
	if e.expired(c.now()) {
		c.lru.Remove(key)
		c.logger.Debug("cache entry expired", "cache", c.name, "key", key)
		return zero, false
	}
	return e.Value, true
}

// Set stores value under key, evicting the least recently used entry when
// the cache is full.
func (c *Cache[V]) Set(key string, value V) {
	now := c.now()
	e := Entry[V]{Key: key, Value: value, FetchedAt: now}
	if c.ttl > 0 {
		e.ExpiresAt = now.Add(c.ttl)
	}

	c.mu.Lock()
	evicted := c.lru.Add(key, e)
	c.mu.Unlock()

	if evicted {
		c.evictions.Add(1)
		metrics.RecordEviction(c.name)
		c.logger.Debug("cache evicted oldest entry", "cache", c.name)
	}
}

// Entry returns the stored entry for key without touching its recency.
// Expired entries are still returned.
func (c *Cache[V]) Entry(key string) (Entry[V], bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Peek(key)
}

// Do returns the cached value for key, or calls fetch to produce it.
// Concurrent calls for the same key share a single fetch. Only successful
// results are stored; a failed fetch leaves no trace in the cache.
func (c *Cache[V]) Do(ctx context.Context, key string, fetch func(context.Context) (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		c.logger.Debug("cache hit", "cache", c.name, "key", key)
		return v, nil
	}

	if c.afterMiss != nil {
		c.afterMiss(key)
	}

	var led, hit bool
	ch := c.flights.DoChan(key, func() (any, error) {
		led = true
		// A flight for this key may have finished between Get and DoChan.
		if v, ok := c.lookup(key); ok {
			hit = true
			return v, nil
		}
		v, err := fetch(ctx)
		if err != nil {
			return v, err
		}
		c.Set(key, v)
		return v, nil
	})

	var zero V
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		switch {
		case led && hit:
			c.hits.Add(1)
			metrics.RecordCacheResult(c.name, metrics.ResultHit)
		case led:
			c.misses.Add(1)
			metrics.RecordCacheResult(c.name, metrics.ResultMiss)
		default:
			c.shared.Add(1)
			metrics.RecordCacheResult(c.name, metrics.ResultShared)
			c.logger.Debug("joined in-flight fetch", "cache", c.name, "key", key)
		}
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(V), nil
	}
}

// Len returns the number of stored entries, expired ones included.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Keys returns the stored keys from least to most recently used.
func (c *Cache[V]) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Keys()
}

// Purge removes every entry. Fetches already in flight are unaffected.
func (c *Cache[V]) Purge() {
	c.mu.Lock()
	c.lru.Purge()
	c.mu.Unlock()
}

func (c *Cache[V]) Stats() Stats {
	return Stats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Shared:    c.shared.Load(),
		Evictions: c.evictions.Load(),
	}
}
