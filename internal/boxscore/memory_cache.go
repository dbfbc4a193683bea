package boxscore

import (
	"context"
	"strconv"
	"sync/atomic"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/yourusername/mlb-edge/internal/models"
)

// MemoryCache keeps recently used box scores in process
type MemoryCache struct {
	cache     *cache.Cache
	ttl       time.Duration
	hitCount  uint64
	missCount uint64
}

// NewMemoryCache creates an in-process box score cache
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		cache: cache.New(ttl, ttl*2),
		ttl:   ttl,
	}
}

// Get returns a cached record
func (m *MemoryCache) Get(_ context.Context, gamePK int64) (*models.BoxScoreRecord, bool) {
	if v, found := m.cache.Get(strconv.FormatInt(gamePK, 10)); found {
		if rec, ok := v.(models.BoxScoreRecord); ok {
			atomic.AddUint64(&m.hitCount, 1)
			return &rec, true
		}
	}
	atomic.AddUint64(&m.missCount, 1)
	return nil, false
}

// Set stores a copy of the record
func (m *MemoryCache) Set(_ context.Context, rec *models.BoxScoreRecord) {
	m.cache.Set(strconv.FormatInt(rec.GamePK, 10), *rec, m.ttl)
}

// Stats returns cache statistics
func (m *MemoryCache) Stats() (hits, misses uint64, ratio float64) {
	hits = atomic.LoadUint64(&m.hitCount)
	misses = atomic.LoadUint64(&m.missCount)
	if total := hits + misses; total > 0 {
		ratio = float64(hits) / float64(total)
	}
	return
}

// ItemCount returns the number of items in cache
func (m *MemoryCache) ItemCount() int {
	return m.cache.ItemCount()
}
