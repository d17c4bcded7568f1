// Package cache provides the in-memory feed cache: bounded-lifetime buckets
// of previously produced content items keyed by (kind, mood, reason). Nothing
// here survives a process restart.
package cache

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"decathlonminds/internal/core"
	"decathlonminds/internal/logger"
)

// DefaultTTL is the default whole-entry expiry.
const DefaultTTL = 30 * time.Minute

// wildcard is the key component used when mood or reason is unset. It is a
// distinct value, not equal to any concrete mood/reason string.
const wildcard = "any"

// Key identifies one cache bucket.
type Key struct {
	Kind   core.Kind
	Mood   string
	Reason string
}

// NewKey builds a key, mapping empty mood/reason to the wildcard component.
func NewKey(kind core.Kind, mood, reason string) Key {
	if mood == "" {
		mood = wildcard
	}
	if reason == "" {
		reason = wildcard
	}
	return Key{Kind: kind, Mood: mood, Reason: reason}
}

// String returns the canonical KIND|mood|reason form.
func (k Key) String() string {
	return string(k.Kind) + "|" + k.Mood + "|" + k.Reason
}

// entry is one cache bucket: an append-only item sequence plus its creation
// timestamp. The whole entry expires atomically; items are never removed
// individually.
type entry struct {
	items     []core.Item
	createdAt time.Time
	ttl       time.Duration
}

func (e *entry) expired(now time.Time) bool {
	return now.Sub(e.createdAt) > e.ttl
}

// FeedCache is an explicitly constructed service object; inject it where it
// is needed rather than sharing a package-level singleton, so tests can run
// isolated instances.
type FeedCache struct {
	mu      sync.RWMutex
	entries map[Key]*entry
	ttl     time.Duration
	now     func() time.Time // Overridable clock for expiry tests
	rand    *rand.Rand
}

// New creates an empty cache with the given whole-entry TTL (DefaultTTL when
// ttl <= 0).
func New(ttl time.Duration) *FeedCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &FeedCache{
		entries: make(map[Key]*entry),
		ttl:     ttl,
		now:     time.Now,
		rand:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Get returns a uniformly random item from the bucket for key, without
// removing it; repeated calls may return the same item. The second return is
// false on a miss or an empty bucket. A miss is a normal result, not an error.
func (c *FeedCache) Get(key Key) (core.Item, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || len(e.items) == 0 {
		return nil, false
	}
	return e.items[c.rand.Intn(len(e.items))], true
}

// Put appends item to the bucket for key, creating the bucket with a fresh
// timestamp if it does not exist. Appending never refreshes an existing
// bucket's timestamp: the entry ages from first insertion.
func (c *FeedCache) Put(key Key, item core.Item) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		e = &entry{createdAt: c.now(), ttl: c.ttl}
		c.entries[key] = e
	}
	e.items = append(e.items, item)
}

// IsValid reports whether a bucket exists for key and is younger than maxAge.
func (c *FeedCache) IsValid(key Key, maxAge time.Duration) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok {
		return false
	}
	return c.now().Sub(e.createdAt) < maxAge
}

// Cleanup removes every expired bucket and returns how many were evicted.
func (c *FeedCache) Cleanup() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, e := range c.entries {
		if e.expired(now) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of live buckets.
func (c *FeedCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Seed loads pre-authored content into the cache, one Put per item. Called
// once at process start with the stock fallback table.
func (c *FeedCache) Seed(seed map[Key][]core.Item) {
	for key, items := range seed {
		for _, it := range items {
			c.Put(key, it)
		}
	}
}

// StartSweeper runs Cleanup every interval until ctx is cancelled.
func (c *FeedCache) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = c.ttl
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed := c.Cleanup(); removed > 0 {
					logger.Debug("cache sweep evicted entries", "removed", removed, "remaining", c.Len())
				}
			}
		}
	}()
}
