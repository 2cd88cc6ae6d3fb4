package rewriter

import (
	"sync"
	"time"

	"github.com/zeebo/xxh3"
)

// RewriteCache memoizes successful rewrites for the lifetime of a run, keyed
// by the block's content hash. Nothing is persisted between runs.
type RewriteCache struct {
	mutex   sync.RWMutex
	entries map[uint64]string
	stats   *CacheStats
}

// CacheStats tracks cache performance metrics.
type CacheStats struct {
	TotalRequests int64
	CacheHits     int64
	CacheMisses   int64
	LastResetTime time.Time
	mutex         sync.RWMutex
}

// NewRewriteCache creates an empty in-memory rewrite cache.
func NewRewriteCache() *RewriteCache {
	return &RewriteCache{
		entries: make(map[uint64]string),
		stats: &CacheStats{
			LastResetTime: time.Now(),
		},
	}
}

func cacheKey(block string) uint64 {
	return xxh3.HashString(block)
}

// Get returns the cached rewrite for a block, if one was stored this run.
func (cache *RewriteCache) Get(block string) (string, bool) {
	cache.mutex.RLock()
	code, found := cache.entries[cacheKey(block)]
	cache.mutex.RUnlock()

	if found {
		cache.recordCacheHit()
		return code, true
	}

	cache.recordCacheMiss()
	return "", false
}

// Set stores a successful rewrite for a block. Fallback results are never
// stored so a transient provider failure cannot poison later lookups.
func (cache *RewriteCache) Set(block string, code string) {
	cache.mutex.Lock()
	cache.entries[cacheKey(block)] = code
	cache.mutex.Unlock()
}

// Len reports the number of cached rewrites.
func (cache *RewriteCache) Len() int {
	cache.mutex.RLock()
	defer cache.mutex.RUnlock()
	return len(cache.entries)
}

// recordCacheHit increments cache hit counters
func (cache *RewriteCache) recordCacheHit() {
	cache.stats.mutex.Lock()
	defer cache.stats.mutex.Unlock()
	cache.stats.TotalRequests++
	cache.stats.CacheHits++
}

// recordCacheMiss increments cache miss counters
func (cache *RewriteCache) recordCacheMiss() {
	cache.stats.mutex.Lock()
	defer cache.stats.mutex.Unlock()
	cache.stats.TotalRequests++
	cache.stats.CacheMisses++
}

// GetPerformanceStats returns cache performance counters for the run summary.
func (cache *RewriteCache) GetPerformanceStats() map[string]interface{} {
	cache.stats.mutex.RLock()
	defer cache.stats.mutex.RUnlock()

	hitRate := 0.0
	if cache.stats.TotalRequests > 0 {
		hitRate = float64(cache.stats.CacheHits) / float64(cache.stats.TotalRequests) * 100
	}

	return map[string]interface{}{
		"total_requests":   cache.stats.TotalRequests,
		"cache_hits":       cache.stats.CacheHits,
		"cache_misses":     cache.stats.CacheMisses,
		"hit_rate_percent": hitRate,
		"entries":          cache.Len(),
		"last_reset":       cache.stats.LastResetTime.Format(time.RFC3339),
	}
}

// ResetPerformanceStats resets all performance counters.
func (cache *RewriteCache) ResetPerformanceStats() {
	cache.stats.mutex.Lock()
	defer cache.stats.mutex.Unlock()

	cache.stats.TotalRequests = 0
	cache.stats.CacheHits = 0
	cache.stats.CacheMisses = 0
	cache.stats.LastResetTime = time.Now()
}
