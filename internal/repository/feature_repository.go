package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/yourusername/mlb-edge/internal/database"
	"github.com/yourusername/mlb-edge/internal/models"
)

// PostgresFeatureRepository implements FeatureRepository for PostgreSQL
type PostgresFeatureRepository struct {
	q database.Querier
}

// NewPostgresFeatureRepository creates a new feature repository
func NewPostgresFeatureRepository(db *database.DB) FeatureRepository {
	return &PostgresFeatureRepository{q: db.GetPool()}
}

// WithTx returns a repository whose statements run inside tx
func (r *PostgresFeatureRepository) WithTx(tx pgx.Tx) FeatureRepository {
	return &PostgresFeatureRepository{q: tx}
}

// Upsert writes a feature record, replacing any earlier one for the game
func (r *PostgresFeatureRepository) Upsert(ctx context.Context, rec *models.FeatureRecord) error {
	query := `
		INSERT INTO features (game_id, season, features, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (game_id) DO UPDATE SET
			season = EXCLUDED.season,
			features = EXCLUDED.features,
			updated_at = NOW()
	`

	payload, err := json.Marshal(rec.Features)
	if err != nil {
		return fmt.Errorf("failed to encode features for game %d: %w", rec.GamePK, err)
	}

	if _, err := r.q.Exec(ctx, query, rec.GamePK, rec.Season, payload); err != nil {
		return fmt.Errorf("failed to upsert features for game %d: %w", rec.GamePK, err)
	}
	return nil
}

func scanFeature(row pgx.Row) (*models.FeatureRecord, error) {
	rec := &models.FeatureRecord{}
	var payload []byte
	if err := row.Scan(&rec.GamePK, &rec.Season, &payload, &rec.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(payload, &rec.Features); err != nil {
		return nil, fmt.Errorf("failed to decode features for game %d: %w", rec.GamePK, err)
	}
	return rec, nil
}

// Get retrieves the feature record of a game
func (r *PostgresFeatureRepository) Get(ctx context.Context, gamePK int64) (*models.FeatureRecord, error) {
	query := `SELECT game_id, season, features, created_at FROM features WHERE game_id = $1`

	rec, err := scanFeature(r.q.QueryRow(ctx, query, gamePK))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get features: %w", err)
	}
	return rec, nil
}

// ListForSeason returns the feature records of a season in game order
func (r *PostgresFeatureRepository) ListForSeason(ctx context.Context, season int) ([]*models.FeatureRecord, error) {
	query := `
		SELECT f.game_id, f.season, f.features, f.created_at
		FROM features f
		JOIN games g ON g.game_id = f.game_id
		WHERE f.season = $1
		ORDER BY g.game_datetime ASC, f.game_id ASC
	`
	return r.list(ctx, query, season)
}

// ListForDate returns the feature records of games on a league calendar day.
// date is the day itself, as returned by models.LeagueDate.
func (r *PostgresFeatureRepository) ListForDate(ctx context.Context, date time.Time) ([]*models.FeatureRecord, error) {
	query := `
		SELECT f.game_id, f.season, f.features, f.created_at
		FROM features f
		JOIN games g ON g.game_id = f.game_id
		WHERE ` + leagueDateSQL("g.game_datetime") + ` = $1::date
		ORDER BY g.game_datetime ASC, f.game_id ASC
	`
	return r.list(ctx, query, date.Format("2006-01-02"))
}

func (r *PostgresFeatureRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.FeatureRecord, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query features: %w", err)
	}
	defer rows.Close()

	var recs []*models.FeatureRecord
	for rows.Next() {
		rec, err := scanFeature(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan features: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
