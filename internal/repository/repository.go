// Package repository provides PostgreSQL data access for the pipeline.
package repository

import (
	"fmt"

	"github.com/yourusername/mlb-edge/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	Team      TeamRepository
	Game      GameRepository
	BoxScore  BoxScoreRepository
	Feature   FeatureRepository
	Odds      OddsRepository
	ReplayRun ReplayRunRepository
}

// NewRepositories creates and returns all repository implementations
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		Team:      NewPostgresTeamRepository(db),
		Game:      NewPostgresGameRepository(db),
		BoxScore:  NewPostgresBoxScoreRepository(db),
		Feature:   NewPostgresFeatureRepository(db),
		Odds:      NewPostgresOddsRepository(db),
		ReplayRun: NewPostgresReplayRunRepository(db),
	}, nil
}

// batchSize caps the statements queued in one pgx batch
const batchSize = 500
