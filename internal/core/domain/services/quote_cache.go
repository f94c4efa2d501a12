package services

import (
	"strings"
	"sync"
	"time"
)

// DefaultQuoteCacheTTL is used when a non-positive TTL is configured.
const DefaultQuoteCacheTTL = 5 * time.Minute

// QuoteCache memoizes calculation results for a short time. Values must be
// immutable once stored: every reader gets the same value.
type QuoteCache[V any] struct {
	ttl time.Duration
	now func() time.Time
	mu  sync.RWMutex
	m   map[string]quoteCacheEntry[V]
}

type quoteCacheEntry[V any] struct {
	value   V
	expires time.Time
}

// NewQuoteCache creates an empty cache. A nil now uses time.Now.
func NewQuoteCache[V any](ttl time.Duration, now func() time.Time) *QuoteCache[V] {
	if ttl <= 0 {
		ttl = DefaultQuoteCacheTTL
	}
	if now == nil {
		now = time.Now
	}
	return &QuoteCache[V]{
		ttl: ttl,
		now: now,
		m:   make(map[string]quoteCacheEntry[V]),
	}
}

// TTL returns how long an entry stays fresh.
func (c *QuoteCache[V]) TTL() time.Duration {
	return c.ttl
}

// Get returns the value stored under key if it has not expired.
func (c *QuoteCache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	entry, ok := c.m[key]
	c.mu.RUnlock()
	if !ok {
		var zero V
		return zero, false
	}
	if c.now().After(entry.expires) {
		c.mu.Lock()
		delete(c.m, key)
		c.mu.Unlock()
		var zero V
		return zero, false
	}
	return entry.value, true
}

// Put stores value under key.
func (c *QuoteCache[V]) Put(key string, value V) {
	c.mu.Lock()
	c.m[key] = quoteCacheEntry[V]{value: value, expires: c.now().Add(c.ttl)}
	c.mu.Unlock()
}

// Len returns the number of stored entries, expired ones included.
func (c *QuoteCache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}

// Purge drops every entry, e.g. after the rule snapshot was replaced.
func (c *QuoteCache[V]) Purge() {
	c.mu.Lock()
	clear(c.m)
	c.mu.Unlock()
}

// Sweep drops expired entries and returns how many were removed.
func (c *QuoteCache[V]) Sweep() int {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for key, entry := range c.m {
		if now.After(entry.expires) {
			delete(c.m, key)
			removed++
		}
	}
	return removed
}

// QuoteKey joins normalized key parts. Parts are trimmed and upper-cased so
// that "pl" and " PL" hit the same entry.
func QuoteKey(parts ...string) string {
	normalized := make([]string, len(parts))
	for i, p := range parts {
		normalized[i] = strings.ToUpper(strings.TrimSpace(p))
	}
	return strings.Join(normalized, "|")
}
