package replay

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/mlb-edge/internal/boxscore"
	"github.com/yourusername/mlb-edge/internal/events"
	"github.com/yourusername/mlb-edge/internal/logger"
	"github.com/yourusername/mlb-edge/internal/metrics"
	"github.com/yourusername/mlb-edge/internal/models"
	"github.com/yourusername/mlb-edge/internal/repository"
	"github.com/yourusername/mlb-edge/internal/stats"
)

// ScheduleSource lists the games of a season in replay order
type ScheduleSource interface {
	GamesForSeason(ctx context.Context, season int, current bool, now time.Time) ([]models.Game, error)
}

// TxRunner runs a function inside a database transaction
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error
}

// Dependencies groups what the engine reads from and writes to
type Dependencies struct {
	Schedule  ScheduleSource
	Tx        TxRunner
	Cache     *boxscore.CacheAdapter
	BoxScores repository.BoxScoreRepository
	Features  repository.FeatureRepository
	Runs      repository.ReplayRunRepository
	Publisher events.Publisher
	Now       func() time.Time
}

// SeasonResult summarizes a committed season
type SeasonResult struct {
	RunID           string
	Season          int
	GamesProcessed  int
	FeaturesEmitted int
	LastGamePK      int64
	Duration        time.Duration
	Features        []models.FeatureRecord
}

// Engine replays seasons and persists point-in-time feature records
type Engine struct {
	config  Config
	deps    Dependencies
	log     *logger.ReplayLogger
	rolling *stats.RollingAccumulator
	// KeepFeatures retains emitted records on the SeasonResult
	KeepFeatures bool
}

// NewEngine creates a replay engine
func NewEngine(cfg Config, deps Dependencies, log *logrus.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid replay config: %w", err)
	}
	if deps.Schedule == nil {
		return nil, fmt.Errorf("schedule source is required")
	}
	if deps.Tx == nil {
		return nil, fmt.Errorf("transaction runner is required")
	}
	if deps.Cache == nil {
		return nil, fmt.Errorf("box score cache is required")
	}
	if deps.BoxScores == nil || deps.Features == nil {
		return nil, fmt.Errorf("box score and feature repositories are required")
	}
	if deps.Publisher == nil {
		deps.Publisher = events.NoopPublisher{}
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if log == nil {
		log = logrus.New()
	}

	return &Engine{
		config: cfg,
		deps:   deps,
		log:    logger.NewReplayLogger(log),
	}, nil
}

// Config returns the replay configuration
func (e *Engine) Config() Config {
	return e.config
}

// Run replays seasons in order and stops at the first failed season. Seasons
// committed before the failure stay committed.
func (e *Engine) Run(ctx context.Context, seasons []int) ([]*SeasonResult, error) {
	results := make([]*SeasonResult, 0, len(seasons))
	for _, season := range seasons {
		res, err := e.RunSeason(ctx, season)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// RunSeason replays one season inside a single transaction. On any error the
// season's writes are rolled back and a *SeasonError is returned.
func (e *Engine) RunSeason(ctx context.Context, season int) (*SeasonResult, error) {
	current := season == e.config.CurrentSeason
	games, err := e.deps.Schedule.GamesForSeason(ctx, season, current, e.deps.Now().UTC())
	if err != nil {
		return nil, &SeasonError{Season: season, Err: fmt.Errorf("failed to load schedule: %w", err)}
	}

	run := models.NewReplayRun(season)
	e.recordRunStart(ctx, run)
	e.log.LogSeasonStart(run.ID.String(), season, len(games), current)

	state := NewSeasonState(season, e.rollingFor(), e.KeepFeatures)

	err = e.deps.Tx.WithTransaction(ctx, func(tx pgx.Tx) error {
		return e.replayGames(ctx, tx, games, state)
	})

	var last *int64
	if state.LastGamePK != 0 {
		pk := state.LastGamePK
		last = &pk
	}

	if err != nil {
		seasonErr := &SeasonError{Season: season, LastGamePK: state.LastGamePK, Err: err}
		run.Fail(state.GamesProcessed, state.FeaturesEmitted, last, seasonErr)
		e.finishRun(ctx, run)
		e.log.LogSeasonFailure(run.ID.String(), season, state.LastGamePK, err)
		return nil, seasonErr
	}

	if e.config.CarryRollingAcrossSeasons {
		e.rolling = state.Rolling
	}
	run.Complete(state.GamesProcessed, state.FeaturesEmitted, last)
	e.finishRun(ctx, run)
	e.log.LogSeasonComplete(run.ID.String(), season, state.GamesProcessed, state.FeaturesEmitted, run.Duration())

	return &SeasonResult{
		RunID:           run.ID.String(),
		Season:          season,
		GamesProcessed:  state.GamesProcessed,
		FeaturesEmitted: state.FeaturesEmitted,
		LastGamePK:      state.LastGamePK,
		Duration:        run.Duration(),
		Features:        state.Emitted,
	}, nil
}

// rollingFor returns the rolling state a new season starts from. A carried
// state is cloned so a failed season leaves it untouched.
func (e *Engine) rollingFor() *stats.RollingAccumulator {
	if e.config.CarryRollingAcrossSeasons && e.rolling != nil {
		return e.rolling.Clone()
	}
	// window was validated in NewEngine
	acc, _ := stats.NewRollingAccumulator(e.config.RollingWindow)
	return acc
}

func (e *Engine) replayGames(ctx context.Context, tx pgx.Tx, games []models.Game, state *SeasonState) error {
	features := e.deps.Features.WithTx(tx)
	cache := e.deps.Cache.WithStore(e.deps.BoxScores.WithTx(tx))

	var prefetcher *Prefetcher
	if e.config.Prefetch {
		prefetcher = NewPrefetcher(cache.Fetcher())
		cache = cache.WithFetcher(prefetcher)
	}

	fetchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	for i, game := range games {
		if err := ctx.Err(); err != nil {
			return err
		}
		if prefetcher != nil && i+1 < len(games) {
			if err := e.prefetch(fetchCtx, cache, prefetcher, games[i+1].GamePK); err != nil {
				return err
			}
		}
		if err := e.processGame(fetchCtx, cache, features, game, state); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) prefetch(ctx context.Context, cache *boxscore.CacheAdapter, p *Prefetcher, gamePK int64) error {
	cached, err := cache.Has(ctx, gamePK)
	if err != nil {
		return err
	}
	if !cached {
		p.Prefetch(ctx, gamePK)
	}
	return nil
}

func (e *Engine) processGame(ctx context.Context, cache *boxscore.CacheAdapter, features repository.FeatureRepository, game models.Game, state *SeasonState) error {
	// a game listed twice by the schedule is counted once
	if state.Applied(game.GamePK) {
		metrics.RecordGameSkipped(SkipDuplicate)
		e.log.LogGameSkipped(state.Season, game.GamePK, SkipDuplicate)
		return nil
	}

	rec, source, err := cache.Get(ctx, game)
	if err != nil {
		return fmt.Errorf("failed to load box score for game %d: %w", game.GamePK, err)
	}
	e.log.LogCacheDecision(game.GamePK, string(source), source != boxscore.SourceAPI)

	decision, reason, err := Decide(game, rec, state.SeasonStats, e.config.RollingWindow)
	switch decision {
	case DecisionFatal:
		return err
	case DecisionEmit:
		fr := state.BuildFeatures(rec)
		if err := features.Upsert(ctx, &fr); err != nil {
			return fmt.Errorf("failed to store features for game %d: %w", game.GamePK, err)
		}
		state.RecordEmitted(fr)
		metrics.RecordFeatureEmitted()
		e.log.LogFeatureEmitted(state.Season, game.GamePK, len(fr.Features))
	case DecisionUpdateOnly:
		metrics.RecordGameSkipped(reason)
		e.log.LogGameSkipped(state.Season, game.GamePK, reason)
	}

	state.Apply(rec)
	metrics.RecordGameProcessed()
	metrics.UpdateLastProcessedGame(strconv.Itoa(state.Season), game.GamePK)
	return nil
}

func (e *Engine) recordRunStart(ctx context.Context, run *models.ReplayRun) {
	if e.deps.Runs == nil {
		return
	}
	if err := e.deps.Runs.Create(ctx, run); err != nil {
		e.log.WithError(err).WithField("run_id", run.ID).Warn("Failed to record replay run start")
	}
}

// finishRun persists the final run row, then records metrics and publishes the summary
func (e *Engine) finishRun(ctx context.Context, run *models.ReplayRun) {
	metrics.RecordReplayRun(strconv.Itoa(run.Season), string(run.Status), run.Duration().Seconds())

	if e.deps.Runs != nil {
		if err := e.deps.Runs.Update(ctx, run); err != nil {
			e.log.WithError(err).WithField("run_id", run.ID).Warn("Failed to record replay run result")
		}
	}

	summary := events.SeasonSummary{
		RunID:           run.ID,
		Season:          run.Season,
		Status:          string(run.Status),
		GamesProcessed:  run.GamesProcessed,
		FeaturesEmitted: run.FeaturesEmitted,
		DurationMs:      run.Duration().Milliseconds(),
	}
	if run.LastGamePK != nil {
		summary.LastGamePK = *run.LastGamePK
	}
	if run.ErrorMessage != nil {
		summary.Error = *run.ErrorMessage
	}
	if run.FinishedAt != nil {
		summary.FinishedAt = *run.FinishedAt
	}
	if err := e.deps.Publisher.PublishSeasonSummary(ctx, summary); err != nil && !errors.Is(err, context.Canceled) {
		e.log.WithError(err).WithField("run_id", run.ID).Warn("Failed to publish season summary")
	}
}
