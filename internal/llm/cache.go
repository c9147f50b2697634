package llm

import (
	"sync"
	"time"

	"github.com/greenloop/kerbside/internal/model"
)

// cacheEntry represents a cached classification result.
type cacheEntry struct {
	expiry time.Time
	result model.ClassificationResult
}

// resultCache provides thread-safe caching of classification results keyed by
// an input hash, so repeated lookups for the same photo or text skip the
// service round-trip.
type resultCache struct {
	entries map[string]cacheEntry
	stopCh  chan struct{}
	ttl     time.Duration
	mu      sync.RWMutex
}

// newResultCache creates a new cache with the specified TTL.
func newResultCache(ttl time.Duration) *resultCache {
	if ttl == 0 {
		ttl = 15 * time.Minute
	}

	cache := &resultCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		stopCh:  make(chan struct{}),
	}

	go cache.cleanup()

	return cache
}

// get retrieves a result from the cache if it exists and hasn't expired.
func (c *resultCache) get(key string) (model.ClassificationResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.entries[key]
	if !exists {
		return model.ClassificationResult{}, false
	}

	if time.Now().After(entry.expiry) {
		return model.ClassificationResult{}, false
	}

	return entry.result, true
}

// set stores a result in the cache.
func (c *resultCache) set(key string, result model.ClassificationResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		result: result,
		expiry: time.Now().Add(c.ttl),
	}
}

// cleanup periodically removes expired entries.
func (c *resultCache) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.mu.Lock()
			now := time.Now()
			for key, entry := range c.entries {
				if now.After(entry.expiry) {
					delete(c.entries, key)
				}
			}
			c.mu.Unlock()
		}
	}
}

// Close stops the cleanup goroutine.
func (c *resultCache) Close() {
	close(c.stopCh)
}
