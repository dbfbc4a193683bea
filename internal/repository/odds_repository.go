package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/yourusername/mlb-edge/internal/database"
	"github.com/yourusername/mlb-edge/internal/models"
)

// PostgresOddsRepository implements OddsRepository for PostgreSQL
type PostgresOddsRepository struct {
	db *database.DB
}

// NewPostgresOddsRepository creates a new odds repository
func NewPostgresOddsRepository(db *database.DB) OddsRepository {
	return &PostgresOddsRepository{db: db}
}

// Upsert records the latest moneyline odds of a game
func (o *PostgresOddsRepository) Upsert(ctx context.Context, odds *models.GameOdds) error {
	query := `
		INSERT INTO odds (game_id, home_team_odds, away_team_odds, recorded_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (game_id) DO UPDATE SET
			home_team_odds = EXCLUDED.home_team_odds,
			away_team_odds = EXCLUDED.away_team_odds,
			recorded_at = NOW()
	`

	if _, err := o.db.GetPool().Exec(ctx, query, odds.GamePK, odds.HomeOdds, odds.AwayOdds); err != nil {
		return fmt.Errorf("failed to upsert odds for game %d: %w", odds.GamePK, err)
	}
	return nil
}

// Get retrieves the odds of a game
func (o *PostgresOddsRepository) Get(ctx context.Context, gamePK int64) (*models.GameOdds, error) {
	query := `SELECT game_id, home_team_odds, away_team_odds, recorded_at FROM odds WHERE game_id = $1`

	odds := &models.GameOdds{}
	err := o.db.GetPool().QueryRow(ctx, query, gamePK).Scan(&odds.GamePK, &odds.HomeOdds, &odds.AwayOdds, &odds.RecordedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get odds: %w", err)
	}
	return odds, nil
}
