package main

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/mlb-edge/internal/boxscore"
	"github.com/yourusername/mlb-edge/internal/config"
	"github.com/yourusername/mlb-edge/internal/database"
	"github.com/yourusername/mlb-edge/internal/datasource"
	"github.com/yourusername/mlb-edge/internal/events"
	"github.com/yourusername/mlb-edge/internal/features"
	"github.com/yourusername/mlb-edge/internal/ml"
	"github.com/yourusername/mlb-edge/internal/replay"
	"github.com/yourusername/mlb-edge/internal/repository"
	"github.com/yourusername/mlb-edge/internal/service"
	"github.com/yourusername/mlb-edge/internal/staking"
)

// app holds the long-lived dependencies shared by the subcommands
type app struct {
	cfg   *config.Config
	log   *logrus.Logger
	db    *database.DB
	repos *repository.Repositories
	mlb   *datasource.MLBClient
	redis *boxscore.RedisCache
	model *ml.HTTPModelClient
	pub   events.Publisher
}

func newApp(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*app, error) {
	db, err := database.Initialize(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	repos, err := repository.NewRepositories(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize repositories: %w", err)
	}
	return &app{
		cfg:   cfg,
		log:   log,
		db:    db,
		repos: repos,
		mlb:   datasource.NewMLBClientFromConfig(cfg.MLBAPI, log),
	}, nil
}

func (a *app) Close() {
	if a.pub != nil {
		a.pub.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.WithError(err).Warn("Failed to close redis client")
		}
	}
	a.db.Close()
}

func (a *app) ingestion() *service.IngestionService {
	return service.NewIngestionService(a.mlb, a.repos, nil, a.log, service.DefaultBatchSize)
}

func (a *app) hotCache(ctx context.Context) (boxscore.HotCache, error) {
	switch a.cfg.Cache.Backend {
	case "memory":
		return boxscore.NewMemoryCache(a.cfg.Cache.TTL), nil
	case "redis":
		if a.redis == nil {
			rc, err := boxscore.NewRedisCache(ctx, a.cfg.Redis.URL, a.cfg.Cache.TTL, a.log)
			if err != nil {
				return nil, err
			}
			a.redis = rc
		}
		return a.redis, nil
	default:
		return nil, nil
	}
}

func (a *app) replayEngine(ctx context.Context, rc replay.Config) (*replay.Engine, error) {
	hot, err := a.hotCache(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to set up box score cache: %w", err)
	}
	if a.pub == nil {
		pub, err := events.NewPublisher(a.cfg.Events, a.log)
		if err != nil {
			return nil, fmt.Errorf("failed to set up event publisher: %w", err)
		}
		a.pub = pub
	}

	policy := boxscore.Policy{CurrentSeason: rc.CurrentSeason, MinAge: rc.CacheMinAge}
	cache := boxscore.NewCacheAdapter(a.mlb, a.repos.BoxScore, hot, policy, a.log)

	return replay.NewEngine(rc, replay.Dependencies{
		Schedule:  a.repos.Game,
		Tx:        a.db,
		Cache:     cache,
		BoxScores: a.repos.BoxScore,
		Features:  a.repos.Feature,
		Runs:      a.repos.ReplayRun,
		Publisher: a.pub,
	}, a.log)
}

func (a *app) modelClient() (*ml.HTTPModelClient, error) {
	if a.model == nil {
		client, err := ml.NewHTTPModelClient(&a.cfg.Model, a.log)
		if err != nil {
			return nil, fmt.Errorf("failed to create model client: %w", err)
		}
		a.model = client
	}
	return a.model, nil
}

// predictor returns the model client behind a per-game prediction cache
func (a *app) predictor() (ml.Predictor, features.Method, error) {
	client, err := a.modelClient()
	if err != nil {
		return nil, "", err
	}
	method := client.Method()
	return ml.NewCachedModelClient(client, method, a.cfg.Model.CacheTTL, a.log), method, nil
}

func (a *app) calculator() *staking.Calculator {
	return staking.NewCalculator(a.cfg.Staking.UnitMultiplier, a.log)
}
