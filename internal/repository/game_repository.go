package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/yourusername/mlb-edge/internal/database"
	"github.com/yourusername/mlb-edge/internal/models"
)

const errScanGame = "failed to scan game: %w"

const gameColumns = `game_id, season, game_type, game_datetime, home_team_id, away_team_id,
	home_team_name, away_team_name, home_score, away_score, status_code, venue_id, day_night, updated_at`

const upsertGameQuery = `
	INSERT INTO games (game_id, season, game_type, game_datetime, home_team_id, away_team_id,
		home_team_name, away_team_name, home_score, away_score, status_code, venue_id, day_night, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW())
	ON CONFLICT (game_id) DO UPDATE SET
		season = EXCLUDED.season,
		game_type = EXCLUDED.game_type,
		game_datetime = EXCLUDED.game_datetime,
		home_team_id = EXCLUDED.home_team_id,
		away_team_id = EXCLUDED.away_team_id,
		home_team_name = EXCLUDED.home_team_name,
		away_team_name = EXCLUDED.away_team_name,
		home_score = EXCLUDED.home_score,
		away_score = EXCLUDED.away_score,
		status_code = EXCLUDED.status_code,
		venue_id = EXCLUDED.venue_id,
		day_night = EXCLUDED.day_night,
		updated_at = NOW()
`

// leagueDateSQL converts a timestamptz expression to its league calendar day
func leagueDateSQL(expr string) string {
	return fmt.Sprintf("((%s AT TIME ZONE 'UTC') - INTERVAL '%d hours')::date", expr, int(models.LeagueDayOffset.Hours()))
}

// PostgresGameRepository implements GameRepository for PostgreSQL
type PostgresGameRepository struct {
	db *database.DB
}

// NewPostgresGameRepository creates a new game repository
func NewPostgresGameRepository(db *database.DB) GameRepository {
	return &PostgresGameRepository{db: db}
}

func gameArgs(g *models.Game) []interface{} {
	return []interface{}{
		g.GamePK, g.Season, g.GameType, g.DateTime, g.HomeTeamID, g.AwayTeamID,
		g.HomeTeamName, g.AwayTeamName, g.HomeScore, g.AwayScore, string(g.Status), g.VenueID, g.DayNight,
	}
}

func scanGame(row pgx.Row) (models.Game, error) {
	var g models.Game
	var status string
	err := row.Scan(
		&g.GamePK, &g.Season, &g.GameType, &g.DateTime, &g.HomeTeamID, &g.AwayTeamID,
		&g.HomeTeamName, &g.AwayTeamName, &g.HomeScore, &g.AwayScore, &status, &g.VenueID, &g.DayNight, &g.UpdatedAt,
	)
	g.Status = models.GameStatus(status)
	g.DateTime = g.DateTime.UTC()
	return g, err
}

// Upsert inserts or updates a scheduled game
func (r *PostgresGameRepository) Upsert(ctx context.Context, game *models.Game) error {
	if _, err := r.db.GetPool().Exec(ctx, upsertGameQuery, gameArgs(game)...); err != nil {
		return fmt.Errorf("failed to upsert game %d: %w", game.GamePK, err)
	}
	return nil
}

// UpsertBatch upserts games in chunks of batchSize
func (r *PostgresGameRepository) UpsertBatch(ctx context.Context, games []*models.Game) error {
	for start := 0; start < len(games); start += batchSize {
		end := start + batchSize
		if end > len(games) {
			end = len(games)
		}
		if err := r.upsertChunk(ctx, games[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func (r *PostgresGameRepository) upsertChunk(ctx context.Context, games []*models.Game) error {
	batch := &pgx.Batch{}
	for _, g := range games {
		batch.Queue(upsertGameQuery, gameArgs(g)...)
	}

	results := r.db.GetPool().SendBatch(ctx, batch)
	defer results.Close()
	for _, g := range games {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to batch upsert game %d: %w", g.GamePK, err)
		}
	}
	return nil
}

// GetByID retrieves a game by its id
func (r *PostgresGameRepository) GetByID(ctx context.Context, gamePK int64) (*models.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE game_id = $1`

	g, err := scanGame(r.db.GetPool().QueryRow(ctx, query, gamePK))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	return &g, nil
}

// GamesForSeason returns the replayable regular season games of a season
func (r *PostgresGameRepository) GamesForSeason(ctx context.Context, season int, current bool, now time.Time) ([]models.Game, error) {
	query := `SELECT ` + gameColumns + `
		FROM games
		WHERE season = $1
		  AND game_type = $2
		  AND status_code <> $3
		  AND (NOT $4::boolean OR ` + leagueDateSQL("game_datetime") + ` <= ` + leagueDateSQL("$5::timestamptz") + `)
		ORDER BY game_datetime ASC, game_id ASC`

	return r.queryGames(ctx, query, season, models.GameTypeRegular, string(models.GameStatusCancelled), current, now.UTC())
}

// ListByDate returns the games played on a league calendar day. date is the
// day itself, as returned by models.LeagueDate; only its y-m-d is used.
func (r *PostgresGameRepository) ListByDate(ctx context.Context, date time.Time) ([]models.Game, error) {
	query := `SELECT ` + gameColumns + `
		FROM games
		WHERE ` + leagueDateSQL("game_datetime") + ` = $1::date
		  AND status_code <> $2
		ORDER BY game_datetime ASC, game_id ASC`

	return r.queryGames(ctx, query, date.Format("2006-01-02"), string(models.GameStatusCancelled))
}

// ListCompleted returns the games of a season with both scores recorded
func (r *PostgresGameRepository) ListCompleted(ctx context.Context, season int) ([]models.Game, error) {
	query := `SELECT ` + gameColumns + `
		FROM games
		WHERE season = $1 AND home_score IS NOT NULL AND away_score IS NOT NULL AND status_code <> $2
		ORDER BY game_datetime ASC, game_id ASC`

	return r.queryGames(ctx, query, season, string(models.GameStatusCancelled))
}

func (r *PostgresGameRepository) queryGames(ctx context.Context, query string, args ...interface{}) ([]models.Game, error) {
	rows, err := r.db.GetPool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}
	defer rows.Close()

	var games []models.Game
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf(errScanGame, err)
		}
		games = append(games, g)
	}
	return games, rows.Err()
}
