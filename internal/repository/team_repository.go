package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/yourusername/mlb-edge/internal/database"
	"github.com/yourusername/mlb-edge/internal/models"
)

const upsertTeamQuery = `
	INSERT INTO teams (id, name, abbreviation, short_name, updated_at)
	VALUES ($1, $2, $3, $4, NOW())
	ON CONFLICT (id) DO UPDATE SET
		name = EXCLUDED.name,
		abbreviation = EXCLUDED.abbreviation,
		short_name = EXCLUDED.short_name,
		updated_at = NOW()
`

// PostgresTeamRepository implements TeamRepository for PostgreSQL
type PostgresTeamRepository struct {
	db *database.DB
}

// NewPostgresTeamRepository creates a new team repository
func NewPostgresTeamRepository(db *database.DB) TeamRepository {
	return &PostgresTeamRepository{db: db}
}

// Upsert inserts or updates a team
func (r *PostgresTeamRepository) Upsert(ctx context.Context, team *models.Team) error {
	_, err := r.db.GetPool().Exec(ctx, upsertTeamQuery, team.ID, team.Name, team.Abbreviation, team.ShortName)
	if err != nil {
		return fmt.Errorf("failed to upsert team %d: %w", team.ID, err)
	}
	return nil
}

// UpsertBatch upserts teams in a single round trip
func (r *PostgresTeamRepository) UpsertBatch(ctx context.Context, teams []*models.Team) error {
	if len(teams) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, t := range teams {
		batch.Queue(upsertTeamQuery, t.ID, t.Name, t.Abbreviation, t.ShortName)
	}

	results := r.db.GetPool().SendBatch(ctx, batch)
	defer results.Close()
	for range teams {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to batch upsert teams: %w", err)
		}
	}
	return nil
}

// GetByID retrieves a team by id
func (r *PostgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `SELECT id, name, abbreviation, short_name, updated_at FROM teams WHERE id = $1`

	team := &models.Team{}
	err := r.db.GetPool().QueryRow(ctx, query, id).Scan(
		&team.ID, &team.Name, &team.Abbreviation, &team.ShortName, &team.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return team, nil
}

// List returns every team ordered by id
func (r *PostgresTeamRepository) List(ctx context.Context) ([]*models.Team, error) {
	query := `SELECT id, name, abbreviation, short_name, updated_at FROM teams ORDER BY id`

	rows, err := r.db.GetPool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams: %w", err)
	}
	defer rows.Close()

	var teams []*models.Team
	for rows.Next() {
		team := &models.Team{}
		if err := rows.Scan(&team.ID, &team.Name, &team.Abbreviation, &team.ShortName, &team.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, team)
	}
	return teams, rows.Err()
}
