package replay

import (
	"github.com/yourusername/mlb-edge/internal/features"
	"github.com/yourusername/mlb-edge/internal/models"
	"github.com/yourusername/mlb-edge/internal/stats"
)

// SeasonState tracks the accumulators and progress of one season replay
type SeasonState struct {
	Season          int
	SeasonStats     *stats.SeasonAccumulator
	Rolling         *stats.RollingAccumulator
	GamesProcessed  int
	FeaturesEmitted int
	LastGamePK      int64
	Emitted         []models.FeatureRecord
	keepEmitted     bool
	applied         map[int64]struct{}
}

// NewSeasonState starts a season with empty season stats and the given rolling state
func NewSeasonState(season int, rolling *stats.RollingAccumulator, keepEmitted bool) *SeasonState {
	return &SeasonState{
		Season:      season,
		SeasonStats: stats.NewSeasonAccumulator(),
		Rolling:     rolling,
		keepEmitted: keepEmitted,
		applied:     make(map[int64]struct{}),
	}
}

// TeamState returns a team's accumulator state as of now
func (s *SeasonState) TeamState(teamID int) features.TeamState {
	return features.TeamState{
		TeamID:  teamID,
		Season:  s.SeasonStats.Get(teamID),
		Rolling: s.Rolling.Get(teamID),
	}
}

// BuildFeatures builds the record of a game from the pre-game state
func (s *SeasonState) BuildFeatures(rec models.BoxScoreRecord) models.FeatureRecord {
	return features.Build(features.Input{
		GamePK:   rec.GamePK,
		Season:   s.Season,
		Home:     s.TeamState(rec.Home.TeamID),
		Away:     s.TeamState(rec.Away.TeamID),
		HomeRuns: rec.Home.Runs,
		AwayRuns: rec.Away.Runs,
	})
}

// RecordEmitted counts a stored feature record
func (s *SeasonState) RecordEmitted(fr models.FeatureRecord) {
	s.FeaturesEmitted++
	if s.keepEmitted {
		s.Emitted = append(s.Emitted, fr)
	}
}

// Applied reports whether a game has already been folded into the accumulators
func (s *SeasonState) Applied(gamePK int64) bool {
	_, ok := s.applied[gamePK]
	return ok
}

// Apply folds a game into both accumulators for both teams
func (s *SeasonState) Apply(rec models.BoxScoreRecord) {
	home, away := stats.LinesFromRecord(rec)
	s.SeasonStats.Update(rec.Home.TeamID, home)
	s.SeasonStats.Update(rec.Away.TeamID, away)
	s.Rolling.Update(rec.Home.TeamID, home)
	s.Rolling.Update(rec.Away.TeamID, away)
	s.GamesProcessed++
	s.LastGamePK = rec.GamePK
	s.applied[rec.GamePK] = struct{}{}
}
