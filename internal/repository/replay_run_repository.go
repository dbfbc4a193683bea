package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yourusername/mlb-edge/internal/database"
	"github.com/yourusername/mlb-edge/internal/models"
)

const replayRunColumns = `id, season, status, games_processed, features_emitted, last_game_id,
	error_message, started_at, finished_at`

// PostgresReplayRunRepository implements ReplayRunRepository for PostgreSQL
type PostgresReplayRunRepository struct {
	db *database.DB
}

// NewPostgresReplayRunRepository creates a new replay run repository
func NewPostgresReplayRunRepository(db *database.DB) ReplayRunRepository {
	return &PostgresReplayRunRepository{db: db}
}

// Create inserts a new run
func (r *PostgresReplayRunRepository) Create(ctx context.Context, run *models.ReplayRun) error {
	query := `INSERT INTO replay_runs (` + replayRunColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.GetPool().Exec(ctx, query,
		run.ID, run.Season, string(run.Status), run.GamesProcessed, run.FeaturesEmitted,
		run.LastGamePK, run.ErrorMessage, run.StartedAt, run.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create replay run: %w", err)
	}
	return nil
}

// Update writes the progress and outcome of a run
func (r *PostgresReplayRunRepository) Update(ctx context.Context, run *models.ReplayRun) error {
	query := `
		UPDATE replay_runs
		SET status = $2, games_processed = $3, features_emitted = $4, last_game_id = $5,
		    error_message = $6, finished_at = $7
		WHERE id = $1
	`

	tag, err := r.db.GetPool().Exec(ctx, query,
		run.ID, string(run.Status), run.GamesProcessed, run.FeaturesEmitted,
		run.LastGamePK, run.ErrorMessage, run.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update replay run: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func scanReplayRun(row pgx.Row) (*models.ReplayRun, error) {
	run := &models.ReplayRun{}
	var status string
	err := row.Scan(
		&run.ID, &run.Season, &status, &run.GamesProcessed, &run.FeaturesEmitted,
		&run.LastGamePK, &run.ErrorMessage, &run.StartedAt, &run.FinishedAt,
	)
	run.Status = models.ReplayStatus(status)
	return run, err
}

// GetByID retrieves a run by id
func (r *PostgresReplayRunRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ReplayRun, error) {
	query := `SELECT ` + replayRunColumns + ` FROM replay_runs WHERE id = $1`

	run, err := scanReplayRun(r.db.GetPool().QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get replay run: %w", err)
	}
	return run, nil
}

// ListRecent returns the latest runs, newest first
func (r *PostgresReplayRunRepository) ListRecent(ctx context.Context, limit int) ([]*models.ReplayRun, error) {
	query := `SELECT ` + replayRunColumns + ` FROM replay_runs ORDER BY started_at DESC LIMIT $1`

	rows, err := r.db.GetPool().Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query replay runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.ReplayRun
	for rows.Next() {
		run, err := scanReplayRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan replay run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
