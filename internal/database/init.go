package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/yourusername/mlb-edge/internal/boxscore"
	"github.com/yourusername/mlb-edge/internal/config"
	"github.com/yourusername/mlb-edge/internal/models"
)

// Initialize creates a database connection pool and makes sure the schema exists
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := EnsureSchema(ctx, db.pool); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// EnsureSchema creates every table the pipeline uses if it is missing
func EnsureSchema(ctx context.Context, q Querier) error {
	for _, stmt := range SchemaStatements() {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

// SchemaStatements returns the DDL in dependency order
func SchemaStatements() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS teams (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			abbreviation TEXT NOT NULL DEFAULT '',
			short_name TEXT NOT NULL DEFAULT '',
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS games (
			game_id BIGINT PRIMARY KEY,
			season INTEGER NOT NULL,
			game_type TEXT NOT NULL,
			game_datetime TIMESTAMPTZ NOT NULL,
			home_team_id INTEGER NOT NULL,
			away_team_id INTEGER NOT NULL,
			home_team_name TEXT NOT NULL DEFAULT '',
			away_team_name TEXT NOT NULL DEFAULT '',
			home_score INTEGER,
			away_score INTEGER,
			status_code TEXT NOT NULL,
			venue_id INTEGER NOT NULL DEFAULT 0,
			day_night TEXT NOT NULL DEFAULT '',
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_games_season_datetime ON games (season, game_datetime, game_id)`,
		boxScoreTableDDL(),
		`CREATE TABLE IF NOT EXISTS features (
			game_id BIGINT PRIMARY KEY,
			season INTEGER NOT NULL,
			features JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_features_season ON features (season)`,
		`CREATE TABLE IF NOT EXISTS odds (
			game_id BIGINT PRIMARY KEY,
			home_team_odds TEXT NOT NULL,
			away_team_odds TEXT NOT NULL,
			recorded_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS replay_runs (
			id UUID PRIMARY KEY,
			season INTEGER NOT NULL,
			status TEXT NOT NULL,
			games_processed INTEGER NOT NULL DEFAULT 0,
			features_emitted INTEGER NOT NULL DEFAULT 0,
			last_game_id BIGINT,
			error_message TEXT,
			started_at TIMESTAMPTZ NOT NULL,
			finished_at TIMESTAMPTZ
		)`,
	}
}

// BoxScoreTable stores flattened box scores, one row per game
const BoxScoreTable = "boxscores"

func boxScoreTableDDL() string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (\n\t\t\tgame_id BIGINT PRIMARY KEY", BoxScoreTable)
	for _, side := range []models.Side{models.SideHome, models.SideAway} {
		fmt.Fprintf(&b, ",\n\t\t\t%s INTEGER NOT NULL", boxscore.ColumnName(side, boxscore.TeamIDColumn))
		for _, f := range boxscore.Fields {
			colType := "INTEGER"
			if f.IsFloat() {
				colType = "DOUBLE PRECISION"
			}
			fmt.Fprintf(&b, ",\n\t\t\t%s %s NOT NULL DEFAULT 0", boxscore.ColumnName(side, f.Column), colType)
		}
	}
	b.WriteString(",\n\t\t\tcreated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()\n\t\t)")
	return b.String()
}
