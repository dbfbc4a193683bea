// Package features turns accumulator state into labeled per-game feature records.
package features

import (
	"fmt"

	"github.com/yourusername/mlb-edge/internal/models"
	"github.com/yourusername/mlb-edge/internal/stats"
)

// TeamState is one team's accumulator state as of before the game
type TeamState struct {
	TeamID  int
	Season  stats.SeasonStats
	Rolling stats.RollingSnapshot
}

// Input is everything needed to build the record of one game
type Input struct {
	GamePK   int64
	Season   int
	Home     TeamState
	Away     TeamState
	HomeRuns int
	AwayRuns int
}

// Feature key scopes
const (
	ScopeSeason  = "season"
	ScopeRolling = "rolling"
)

// Key names a metric column, e.g. season_home_avg_era
func Key(scope string, side models.Side, metric string) string {
	return fmt.Sprintf("%s_%s_avg_%s", scope, side, metric)
}

// SeasonKey names a season-to-date metric for a side
func SeasonKey(side models.Side, metric string) string {
	return Key(ScopeSeason, side, metric)
}

// RollingKey names a rolling-window metric for a side
func RollingKey(side models.Side, metric string) string {
	return Key(ScopeRolling, side, metric)
}

// Build assembles the feature record. It has no side effects.
func Build(in Input) models.FeatureRecord {
	feats := make(map[string]float64, 4*len(stats.MetricNames)+3)

	for _, team := range []struct {
		side  models.Side
		state TeamState
	}{
		{models.SideHome, in.Home},
		{models.SideAway, in.Away},
	} {
		season := stats.SeasonMetrics(team.state.Season).Values()
		rolling := stats.RollingMetrics(team.state.Rolling).Values()
		for i, name := range stats.MetricNames {
			feats[SeasonKey(team.side, name)] = season[i]
			feats[RollingKey(team.side, name)] = rolling[i]
		}
	}

	feats[models.FeatureHomeTeamID] = float64(in.Home.TeamID)
	feats[models.FeatureAwayTeamID] = float64(in.Away.TeamID)
	label := 0.0
	if in.HomeRuns > in.AwayRuns {
		label = 1
	}
	feats[models.FeatureLabel] = label

	return models.FeatureRecord{
		GamePK:   in.GamePK,
		Season:   in.Season,
		Features: feats,
	}
}
