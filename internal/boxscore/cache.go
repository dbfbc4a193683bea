package boxscore

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/mlb-edge/internal/metrics"
	"github.com/yourusername/mlb-edge/internal/models"
)

// DefaultMinCacheAge is how old a current-season game must be before its box
// score is frozen in the store
const DefaultMinCacheAge = 14 * 24 * time.Hour

// Source tells where a box score came from
type Source string

const (
	SourceMemory Source = "memory"
	SourceStore  Source = "store"
	SourceAPI    Source = "api"
)

// Fetcher retrieves a raw box score from the league API
type Fetcher interface {
	FetchBoxScore(ctx context.Context, gamePK int64) (RawBoxScore, error)
}

// Store is the durable box-score cache. Store on an existing key is a no-op.
type Store interface {
	Exists(ctx context.Context, gamePK int64) (bool, error)
	Get(ctx context.Context, gamePK int64) (*models.BoxScoreRecord, error)
	Store(ctx context.Context, rec *models.BoxScoreRecord) error
}

// HotCache is an optional process or cluster level layer in front of Store
type HotCache interface {
	Get(ctx context.Context, gamePK int64) (*models.BoxScoreRecord, bool)
	Set(ctx context.Context, rec *models.BoxScoreRecord)
}

// Policy decides which fetched box scores are final enough to persist
type Policy struct {
	CurrentSeason int
	MinAge        time.Duration
	Now           func() time.Time
}

// ShouldStore reports whether a freshly fetched box score may be persisted.
// Past seasons are always final; current season games only once they are
// older than MinAge.
func (p Policy) ShouldStore(game models.Game) bool {
	if game.Season != p.CurrentSeason {
		return true
	}
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	minAge := p.MinAge
	if minAge <= 0 {
		minAge = DefaultMinCacheAge
	}
	return game.Age(now().UTC()) > minAge
}

// CacheAdapter serves normalized box scores, fetching each game at most once
type CacheAdapter struct {
	fetcher Fetcher
	store   Store
	hot     HotCache
	policy  Policy
	logger  *logrus.Entry
}

// NewCacheAdapter creates a cache adapter. hot may be nil.
func NewCacheAdapter(fetcher Fetcher, store Store, hot HotCache, policy Policy, logger *logrus.Logger) *CacheAdapter {
	if logger == nil {
		logger = logrus.New()
	}
	return &CacheAdapter{
		fetcher: fetcher,
		store:   store,
		hot:     hot,
		policy:  policy,
		logger:  logger.WithField("component", "boxscore_cache"),
	}
}

// WithStore returns a copy of the adapter bound to another store, typically
// one scoped to a transaction
func (c *CacheAdapter) WithStore(store Store) *CacheAdapter {
	cp := *c
	cp.store = store
	return &cp
}

// WithFetcher returns a copy of the adapter that fetches through f
func (c *CacheAdapter) WithFetcher(f Fetcher) *CacheAdapter {
	cp := *c
	cp.fetcher = f
	return &cp
}

// Fetcher returns the fetcher used on a cache miss
func (c *CacheAdapter) Fetcher() Fetcher {
	return c.fetcher
}

// Has reports whether a game is served without calling the fetcher
func (c *CacheAdapter) Has(ctx context.Context, gamePK int64) (bool, error) {
	if c.hot != nil {
		if _, ok := c.hot.Get(ctx, gamePK); ok {
			return true, nil
		}
	}
	exists, err := c.store.Exists(ctx, gamePK)
	if err != nil {
		return false, fmt.Errorf("failed to check box score cache: %w", err)
	}
	return exists, nil
}

// Get returns the normalized box score of a game
func (c *CacheAdapter) Get(ctx context.Context, game models.Game) (models.BoxScoreRecord, Source, error) {
	if c.hot != nil {
		if rec, ok := c.hot.Get(ctx, game.GamePK); ok {
			// the hot layer outlives a rolled back transaction, so the store may have lost the row
			if err := c.ensureStored(ctx, game, rec); err != nil {
				return models.BoxScoreRecord{}, "", err
			}
			metrics.RecordBoxScoreLookup(string(SourceMemory))
			return *rec, SourceMemory, nil
		}
	}

	exists, err := c.store.Exists(ctx, game.GamePK)
	if err != nil {
		return models.BoxScoreRecord{}, "", fmt.Errorf("failed to check box score cache: %w", err)
	}
	if exists {
		rec, err := c.load(ctx, game.GamePK)
		if err != nil {
			return models.BoxScoreRecord{}, "", err
		}
		metrics.RecordBoxScoreLookup(string(SourceStore))
		return rec, SourceStore, nil
	}

	raw, err := c.fetcher.FetchBoxScore(ctx, game.GamePK)
	if err != nil {
		return models.BoxScoreRecord{}, "", err
	}
	metrics.RecordBoxScoreLookup(string(SourceAPI))
	rec := Normalize(game.GamePK, raw)

	if !c.policy.ShouldStore(game) {
		metrics.RecordBoxScoreStore("deferred")
		c.logger.WithFields(logrus.Fields{
			"game_id":   game.GamePK,
			"date_time": game.DateTime,
		}).Debug("Box score too recent to cache")
		return rec, SourceAPI, nil
	}

	if err := c.store.Store(ctx, &rec); err != nil {
		return models.BoxScoreRecord{}, "", fmt.Errorf("failed to store box score %d: %w", game.GamePK, err)
	}
	metrics.RecordBoxScoreStore("stored")
	if c.hot != nil {
		c.hot.Set(ctx, &rec)
	}
	return rec, SourceAPI, nil
}

func (c *CacheAdapter) ensureStored(ctx context.Context, game models.Game, rec *models.BoxScoreRecord) error {
	if !c.policy.ShouldStore(game) {
		return nil
	}
	exists, err := c.store.Exists(ctx, game.GamePK)
	if err != nil {
		return fmt.Errorf("failed to check box score cache: %w", err)
	}
	if exists {
		return nil
	}
	if err := c.store.Store(ctx, rec); err != nil {
		return fmt.Errorf("failed to store box score %d: %w", game.GamePK, err)
	}
	metrics.RecordBoxScoreStore("restored")
	return nil
}

// load reads a stored record and runs it back through the normalizer so a
// cached game yields exactly what a fetched one would
func (c *CacheAdapter) load(ctx context.Context, gamePK int64) (models.BoxScoreRecord, error) {
	stored, err := c.store.Get(ctx, gamePK)
	if err != nil {
		return models.BoxScoreRecord{}, fmt.Errorf("failed to load box score %d: %w", gamePK, err)
	}
	raw, err := Reconstruct(*stored)
	if err != nil {
		return models.BoxScoreRecord{}, err
	}
	rec := Normalize(gamePK, raw)
	if c.hot != nil {
		c.hot.Set(ctx, &rec)
	}
	return rec, nil
}
