// Package ml provides caching for model predictions.
package ml

import (
	"fmt"
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"
)

// CacheKey identifies a cached prediction
type CacheKey struct {
	GamePK int64
	Method string
}

// String returns string representation of cache key
func (k CacheKey) String() string {
	return fmt.Sprintf("%d:%s", k.GamePK, k.Method)
}

// PredictionCache provides in-memory caching for model predictions
type PredictionCache struct {
	cache     *cache.Cache
	ttl       time.Duration
	mu        sync.Mutex
	hitCount  uint64
	missCount uint64
}

// NewPredictionCache creates a new prediction cache
func NewPredictionCache(ttl time.Duration) *PredictionCache {
	return &PredictionCache{
		cache: cache.New(ttl, ttl*2),
		ttl:   ttl,
	}
}

// Get retrieves a cached prediction
func (pc *PredictionCache) Get(key CacheKey) *Prediction {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if v, found := pc.cache.Get(key.String()); found {
		if pred, ok := v.(*Prediction); ok {
			pc.hitCount++
			pc.updateMetrics()
			return pred
		}
	}

	pc.missCount++
	pc.updateMetrics()
	return nil
}

// Set stores a prediction
func (pc *PredictionCache) Set(key CacheKey, prediction *Prediction) {
	pc.cache.Set(key.String(), prediction, pc.ttl)
}

// Invalidate drops the cached predictions of a game
func (pc *PredictionCache) Invalidate(gamePK int64) {
	prefix := fmt.Sprintf("%d:", gamePK)
	for k := range pc.cache.Items() {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			pc.cache.Delete(k)
		}
	}
}

// Clear flushes the entire cache
func (pc *PredictionCache) Clear() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	pc.cache.Flush()
	pc.hitCount = 0
	pc.missCount = 0
}

// Stats returns cache statistics
func (pc *PredictionCache) Stats() (hits, misses uint64, ratio float64) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.stats()
}

func (pc *PredictionCache) stats() (hits, misses uint64, ratio float64) {
	hits = pc.hitCount
	misses = pc.missCount
	if total := hits + misses; total > 0 {
		ratio = float64(hits) / float64(total)
	}
	return
}

// updateMetrics expects pc.mu to be held
func (pc *PredictionCache) updateMetrics() {
	_, _, ratio := pc.stats()
	PredictionCacheHitRatio.Set(ratio)
}

// ItemCount returns the number of items in cache
func (pc *PredictionCache) ItemCount() int {
	return pc.cache.ItemCount()
}
