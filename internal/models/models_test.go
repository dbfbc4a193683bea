package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestLeagueDate(t *testing.T) {
	// 01:10 UTC is still the previous evening on the league calendar
	late := time.Date(2024, 6, 2, 1, 10, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), LeagueDate(late))

	afternoon := time.Date(2024, 6, 2, 17, 5, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC), LeagueDate(afternoon))
}

func TestGameOutcome(t *testing.T) {
	g := Game{HomeScore: intPtr(5), AwayScore: intPtr(3)}
	assert.True(t, g.HasFinalScore())
	assert.True(t, g.HomeWon())

	g.AwayScore = intPtr(5)
	assert.False(t, g.HomeWon(), "a tie is not a home win")

	g.HomeScore = nil
	assert.False(t, g.HasFinalScore())
	assert.False(t, g.HomeWon())
}

func TestGameAge(t *testing.T) {
	start := time.Date(2024, 5, 1, 23, 0, 0, 0, time.UTC)
	g := Game{DateTime: start}
	assert.Equal(t, 15*24*time.Hour, g.Age(start.Add(15*24*time.Hour)))
}

func TestReplayRunLifecycle(t *testing.T) {
	run := NewReplayRun(2023)
	assert.Equal(t, ReplayStatusRunning, run.Status)
	assert.Zero(t, run.Duration())

	last := int64(717000)
	run.Fail(10, 4, &last, errors.New("boom"))
	assert.Equal(t, ReplayStatusFailed, run.Status)
	require.NotNil(t, run.ErrorMessage)
	assert.Equal(t, "boom", *run.ErrorMessage)
	assert.Equal(t, int64(717000), *run.LastGamePK)
	require.NotNil(t, run.FinishedAt)
}

func TestFeatureRecordAccessors(t *testing.T) {
	rec := FeatureRecord{Features: map[string]float64{
		FeatureHomeTeamID:     147,
		FeatureAwayTeamID:     111,
		FeatureLabel:          1,
		"season_home_avg_era": 3.5,
	}}

	assert.Equal(t, 147, rec.HomeTeamID())
	assert.Equal(t, 111, rec.AwayTeamID())
	assert.Equal(t, 1, rec.Label())
	assert.Equal(t, []string{FeatureAwayTeamID, FeatureHomeTeamID, FeatureLabel, "season_home_avg_era"}, rec.Keys())

	_, err := rec.Value("rolling_home_avg_era")
	assert.ErrorIs(t, err, ErrNotFound)
}
