package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/mlb-edge/internal/datasource"
	"github.com/yourusername/mlb-edge/internal/models"
	"github.com/yourusername/mlb-edge/internal/repository"
)

// DefaultBatchSize is how many rows each repository batch carries
const DefaultBatchSize = 100

// IngestionService loads teams, schedules and odds into the database
type IngestionService struct {
	source     datasource.StatsSource
	teams      repository.TeamRepository
	games      repository.GameRepository
	odds       repository.OddsRepository
	validator  *DataValidator
	normalizer *DataNormalizer
	logger     *logrus.Entry
	batchSize  int
}

// NewIngestionService creates a new ingestion service
func NewIngestionService(
	source datasource.StatsSource,
	repos *repository.Repositories,
	validator *DataValidator,
	logger *logrus.Logger,
	batchSize int,
) *IngestionService {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if logger == nil {
		logger = logrus.New()
	}
	if validator == nil {
		validator = NewDataValidator(logger)
	}

	return &IngestionService{
		source:     source,
		teams:      repos.Team,
		games:      repos.Game,
		odds:       repos.Odds,
		validator:  validator,
		normalizer: NewDataNormalizer(),
		logger:     logger.WithField("component", "ingestion"),
		batchSize:  batchSize,
	}
}

// IngestTeams fetches the major league clubs and upserts them
func (s *IngestionService) IngestTeams(ctx context.Context) (*IngestionMetrics, error) {
	m := NewIngestionMetrics()
	defer m.Finish()

	teams, err := s.source.FetchTeams(ctx)
	if err != nil {
		m.RecordError()
		return m, fmt.Errorf("failed to fetch teams: %w", err)
	}
	m.Fetched = len(teams)

	valid := make([]*models.Team, 0, len(teams))
	for i := range teams {
		team := s.normalizer.NormalizeTeam(teams[i])
		if errs := s.validator.ValidateTeam(&team); len(errs) > 0 {
			m.RecordValidationError()
			s.logger.WithFields(logrus.Fields{"team_id": team.ID, "errors": errs}).Warn("Team failed validation")
			continue
		}
		valid = append(valid, &team)
	}

	if err := s.teams.UpsertBatch(ctx, valid); err != nil {
		m.RecordError()
		return m, fmt.Errorf("failed to store teams: %w", err)
	}
	m.RecordStored(len(valid))

	s.logger.WithField("teams", len(valid)).Info("Teams ingested")
	return m, nil
}

// IngestSchedule fetches a season's regular season schedule and upserts it
// in batches. A failed batch is logged and counted; the remaining batches
// are still written.
func (s *IngestionService) IngestSchedule(ctx context.Context, season int) (*IngestionMetrics, error) {
	m := NewIngestionMetrics()
	defer m.Finish()

	games, err := s.source.FetchSchedule(ctx, season)
	if err != nil {
		m.RecordError()
		return m, fmt.Errorf("failed to fetch schedule for %d: %w", season, err)
	}
	m.Fetched = len(games)

	valid := make([]*models.Game, 0, len(games))
	for i := range games {
		game := s.normalizer.NormalizeGame(games[i])
		if game.GameType != models.GameTypeRegular {
			m.RecordFiltered()
			continue
		}
		if errs := s.validator.ValidateGame(&game); len(errs) > 0 {
			m.RecordValidationError()
			s.logger.WithFields(logrus.Fields{"game_id": game.GamePK, "errors": errs}).Warn("Game failed validation")
			continue
		}
		valid = append(valid, &game)
	}

	for start := 0; start < len(valid); start += s.batchSize {
		if err := ctx.Err(); err != nil {
			return m, err
		}
		end := start + s.batchSize
		if end > len(valid) {
			end = len(valid)
		}
		if err := s.games.UpsertBatch(ctx, valid[start:end]); err != nil {
			m.RecordError()
			s.logger.WithError(err).WithField("batch_start", start).Error("Failed to store schedule batch")
			continue
		}
		m.RecordStored(end - start)
	}

	s.logger.WithFields(logrus.Fields{
		"season":  season,
		"fetched": m.Fetched,
		"stored":  m.Stored,
		"errors":  m.Errors,
	}).Info("Schedule ingested")

	if m.Errors > 0 {
		return m, fmt.Errorf("schedule ingestion for %d finished with %d failed batches", season, m.Errors)
	}
	return m, nil
}

// RecordOdds validates and stores the moneyline odds of a game
func (s *IngestionService) RecordOdds(ctx context.Context, odds *models.GameOdds) error {
	if errs := s.validator.ValidateOdds(odds); len(errs) > 0 {
		return fmt.Errorf("%w: odds for game %d: %v", models.ErrInvalidInput, odds.GamePK, errs)
	}
	if err := s.odds.Upsert(ctx, odds); err != nil {
		return fmt.Errorf("failed to store odds for game %d: %w", odds.GamePK, err)
	}
	return nil
}
