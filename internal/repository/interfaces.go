package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yourusername/mlb-edge/internal/models"
)

// TeamRepository defines the interface for team data access
type TeamRepository interface {
	Upsert(ctx context.Context, team *models.Team) error
	UpsertBatch(ctx context.Context, teams []*models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	List(ctx context.Context) ([]*models.Team, error)
}

// GameRepository defines the interface for schedule data access
type GameRepository interface {
	Upsert(ctx context.Context, game *models.Game) error
	UpsertBatch(ctx context.Context, games []*models.Game) error
	GetByID(ctx context.Context, gamePK int64) (*models.Game, error)
	// GamesForSeason returns the replayable games of a season in chronological
	// order. Cancelled games are excluded, and for the current season so are
	// games dated after now's league day.
	GamesForSeason(ctx context.Context, season int, current bool, now time.Time) ([]models.Game, error)
	ListByDate(ctx context.Context, date time.Time) ([]models.Game, error)
	ListCompleted(ctx context.Context, season int) ([]models.Game, error)
}

// BoxScoreRepository is the durable box score cache
type BoxScoreRepository interface {
	Exists(ctx context.Context, gamePK int64) (bool, error)
	Get(ctx context.Context, gamePK int64) (*models.BoxScoreRecord, error)
	// Store inserts a record; storing an existing game is a no-op
	Store(ctx context.Context, rec *models.BoxScoreRecord) error
	Count(ctx context.Context) (int64, error)
	WithTx(tx pgx.Tx) BoxScoreRepository
}

// FeatureRepository defines the interface for feature record access
type FeatureRepository interface {
	Upsert(ctx context.Context, rec *models.FeatureRecord) error
	Get(ctx context.Context, gamePK int64) (*models.FeatureRecord, error)
	ListForSeason(ctx context.Context, season int) ([]*models.FeatureRecord, error)
	ListForDate(ctx context.Context, date time.Time) ([]*models.FeatureRecord, error)
	WithTx(tx pgx.Tx) FeatureRepository
}

// OddsRepository defines the interface for moneyline odds access
type OddsRepository interface {
	Upsert(ctx context.Context, odds *models.GameOdds) error
	Get(ctx context.Context, gamePK int64) (*models.GameOdds, error)
}

// ReplayRunRepository records replay driver runs
type ReplayRunRepository interface {
	Create(ctx context.Context, run *models.ReplayRun) error
	Update(ctx context.Context, run *models.ReplayRun) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.ReplayRun, error)
	ListRecent(ctx context.Context, limit int) ([]*models.ReplayRun, error)
}
