package services_test

import (
	"sync"
	"testing"
	"time"

	"pricing/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
)

func TestQuoteCache_Expiry(t *testing.T) {
	now := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
	cache := services.NewQuoteCache[string](time.Minute, func() time.Time { return now })
	key := services.QuoteKey("dpd", " domestic", "2.5")

	cache.Put(key, "42.00 PLN")

	got, ok := cache.Get(services.QuoteKey("DPD", "DOMESTIC ", "2.5"))
	assert.True(t, ok)
	assert.Equal(t, "42.00 PLN", got)

	now = now.Add(61 * time.Second)
	_, ok = cache.Get(key)
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Len())
}

func TestQuoteCache_PurgeAndMiss(t *testing.T) {
	cache := services.NewQuoteCache[int](0, nil)
	cache.Put("a", 1)
	cache.Put("b", 2)

	_, ok := cache.Get("c")
	assert.False(t, ok)
	assert.Equal(t, 2, cache.Len())

	cache.Purge()
	_, ok = cache.Get("a")
	assert.False(t, ok)
	assert.Equal(t, services.DefaultQuoteCacheTTL, cache.TTL())
}

func TestQuoteCache_Sweep(t *testing.T) {
	now := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
	cache := services.NewQuoteCache[int](time.Minute, func() time.Time { return now })
	cache.Put("old", 1)
	now = now.Add(45 * time.Second)
	cache.Put("fresh", 2)

	now = now.Add(30 * time.Second)
	assert.Equal(t, 1, cache.Sweep())
	assert.Equal(t, 1, cache.Len())

	v, ok := cache.Get("fresh")
	assert.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, 0, cache.Sweep())
}

func TestQuoteCache_ConcurrentAccess(t *testing.T) {
	cache := services.NewQuoteCache[int](time.Hour, nil)
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := services.QuoteKey("k", string(rune('a'+i)))
			cache.Put(key, i)
			v, ok := cache.Get(key)
			assert.True(t, ok)
			assert.Equal(t, i, v)
		}()
	}
	wg.Wait()
	assert.Equal(t, 16, cache.Len())
}
