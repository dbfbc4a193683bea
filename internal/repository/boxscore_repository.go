package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/yourusername/mlb-edge/internal/boxscore"
	"github.com/yourusername/mlb-edge/internal/database"
	"github.com/yourusername/mlb-edge/internal/models"
)

var (
	boxScoreColumns     = append(boxscore.Columns(models.SideHome), boxscore.Columns(models.SideAway)...)
	boxScoreSelectQuery = fmt.Sprintf("SELECT game_id, %s FROM %s WHERE game_id = $1",
		strings.Join(boxScoreColumns, ", "), database.BoxScoreTable)
	boxScoreInsertQuery = buildBoxScoreInsert()
)

func buildBoxScoreInsert() string {
	placeholders := make([]string, 0, len(boxScoreColumns)+1)
	for i := 0; i <= len(boxScoreColumns); i++ {
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
	}
	return fmt.Sprintf("INSERT INTO %s (game_id, %s) VALUES (%s) ON CONFLICT (game_id) DO NOTHING",
		database.BoxScoreTable, strings.Join(boxScoreColumns, ", "), strings.Join(placeholders, ", "))
}

// PostgresBoxScoreRepository implements BoxScoreRepository for PostgreSQL
type PostgresBoxScoreRepository struct {
	q database.Querier
}

// NewPostgresBoxScoreRepository creates a new box score repository
func NewPostgresBoxScoreRepository(db *database.DB) BoxScoreRepository {
	return &PostgresBoxScoreRepository{q: db.GetPool()}
}

// WithTx returns a repository whose statements run inside tx
func (r *PostgresBoxScoreRepository) WithTx(tx pgx.Tx) BoxScoreRepository {
	return &PostgresBoxScoreRepository{q: tx}
}

// Exists reports whether the game has a stored box score
func (r *PostgresBoxScoreRepository) Exists(ctx context.Context, gamePK int64) (bool, error) {
	query := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE game_id = $1)", database.BoxScoreTable)

	var exists bool
	if err := r.q.QueryRow(ctx, query, gamePK).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check box score %d: %w", gamePK, err)
	}
	return exists, nil
}

// Get loads a stored box score
func (r *PostgresBoxScoreRepository) Get(ctx context.Context, gamePK int64) (*models.BoxScoreRecord, error) {
	rec := &models.BoxScoreRecord{}
	targets := make([]interface{}, 0, len(boxScoreColumns)+1)
	targets = append(targets, &rec.GamePK)
	targets = append(targets, boxscore.ScanTargets(&rec.Home)...)
	targets = append(targets, boxscore.ScanTargets(&rec.Away)...)

	err := r.q.QueryRow(ctx, boxScoreSelectQuery, gamePK).Scan(targets...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get box score %d: %w", gamePK, err)
	}
	return rec, nil
}

// Store inserts a box score. An existing row for the game is left untouched.
func (r *PostgresBoxScoreRepository) Store(ctx context.Context, rec *models.BoxScoreRecord) error {
	args := make([]interface{}, 0, len(boxScoreColumns)+1)
	args = append(args, rec.GamePK)
	args = append(args, boxscore.Values(&rec.Home)...)
	args = append(args, boxscore.Values(&rec.Away)...)

	if _, err := r.q.Exec(ctx, boxScoreInsertQuery, args...); err != nil {
		return fmt.Errorf("failed to store box score %d: %w", rec.GamePK, err)
	}
	return nil
}

// Count returns the number of cached box scores
func (r *PostgresBoxScoreRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, "SELECT COUNT(*) FROM "+database.BoxScoreTable).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count box scores: %w", err)
	}
	return n, nil
}
