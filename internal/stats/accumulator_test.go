package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/mlb-edge/internal/models"
)

func line(runs, given float64) CountingStats {
	return CountingStats{
		RunsScored:     runs,
		RunsGiven:      given,
		BattingHits:    8,
		AtBats:         32,
		InningsPitched: 9,
	}
}

func TestLinesFromRecord(t *testing.T) {
	rec := models.BoxScoreRecord{
		GamePK: 1,
		Home: models.TeamBoxScore{
			TeamID: 111, Runs: 5, Hits: 9, AtBats: 32, Walks: 3, InningsPitched: 9,
			PitchingHits: 7, PitchingStrikeouts: 9, PitchingBattersFaced: 37,
		},
		Away: models.TeamBoxScore{TeamID: 147, Runs: 3, Hits: 7, InningsPitched: 8.0},
	}

	home, away := LinesFromRecord(rec)

	assert.Equal(t, 5.0, home.RunsScored)
	assert.Equal(t, 3.0, home.RunsGiven)
	assert.Equal(t, 9.0, home.BattingHits)
	assert.Equal(t, 3.0, home.BattingWalks)
	assert.Equal(t, 9.0, home.PitchingStrikeOuts)
	assert.Equal(t, 37.0, home.PitchingBattersFaced)

	assert.Equal(t, 3.0, away.RunsScored)
	assert.Equal(t, 5.0, away.RunsGiven)
	assert.Equal(t, 8.0, away.InningsPitched)
}

func TestSeasonAccumulatorLazyZero(t *testing.T) {
	acc := NewSeasonAccumulator()

	s := acc.Get(999)
	assert.Equal(t, SeasonStats{}, s)
	assert.Equal(t, 0, acc.GamesPlayed(999))
	assert.Equal(t, []int{999}, acc.Teams())
}

func TestSeasonAccumulatorUpdate(t *testing.T) {
	acc := NewSeasonAccumulator()

	acc.Update(111, line(5, 3))
	acc.Update(111, line(2, 7))
	acc.Update(147, line(3, 5))

	s := acc.Get(111)
	assert.Equal(t, 2, s.GamesPlayed)
	assert.Equal(t, 7.0, s.RunsScored)
	assert.Equal(t, 10.0, s.RunsGiven)
	assert.Equal(t, 64.0, s.AtBats)
	assert.Equal(t, 18.0, s.InningsPitched)

	assert.Equal(t, 1, acc.GamesPlayed(147))
	assert.Equal(t, []int{111, 147}, acc.Teams())
}

func TestSeasonAccumulatorGetReturnsCopy(t *testing.T) {
	acc := NewSeasonAccumulator()
	acc.Update(111, line(5, 3))

	s := acc.Get(111)
	s.RunsScored = 100
	s.GamesPlayed = 100

	assert.Equal(t, 5.0, acc.Get(111).RunsScored)
	assert.Equal(t, 1, acc.GamesPlayed(111))
}

func TestNewRollingAccumulatorRejectsBadSize(t *testing.T) {
	_, err := NewRollingAccumulator(0)
	assert.Error(t, err)
}

func TestRollingAccumulatorBound(t *testing.T) {
	const n = 5
	acc, err := NewRollingAccumulator(n)
	require.NoError(t, err)

	for games := 1; games <= 12; games++ {
		acc.Update(111, line(float64(games), 1))

		snap := acc.Get(111)
		want := games
		if want > n {
			want = n
		}
		assert.Equal(t, want, snap.Games, "after %d games", games)

		for name, values := range acc.Window(111) {
			assert.Len(t, values, want, "stat %s", name)
		}
	}
}

func TestRollingAccumulatorSums(t *testing.T) {
	acc, err := NewRollingAccumulator(3)
	require.NoError(t, err)

	for _, runs := range []float64{1, 2, 3, 4, 5} {
		acc.Update(111, line(runs, 0))
	}

	snap := acc.Get(111)
	assert.Equal(t, 3, snap.Games)
	assert.Equal(t, 12.0, snap.Sums.RunsScored)
	assert.Equal(t, 96.0, snap.Sums.AtBats)
	assert.Equal(t, []float64{3, 4, 5}, acc.Window(111)["runsScored"])
	assert.Equal(t, 3, acc.Size())
}

func TestRollingAccumulatorUnknownTeam(t *testing.T) {
	acc, err := NewRollingAccumulator(5)
	require.NoError(t, err)

	snap := acc.Get(42)
	assert.Equal(t, 0, snap.Games)
	assert.Equal(t, CountingStats{}, snap.Sums)
	assert.Equal(t, []int{42}, acc.Teams())
}

func TestStatNames(t *testing.T) {
	names := StatNames()
	assert.Len(t, names, 23)
	assert.Equal(t, "runsScored", names[0])
	assert.Equal(t, "pitchingBattersFaced", names[len(names)-1])
}

func TestRollingAccumulatorCloneIsIndependent(t *testing.T) {
	acc, err := NewRollingAccumulator(2)
	require.NoError(t, err)
	acc.Update(111, CountingStats{RunsScored: 4})

	cp := acc.Clone()
	cp.Update(111, CountingStats{RunsScored: 7})
	cp.Update(147, CountingStats{RunsScored: 1})

	assert.Equal(t, 1, acc.Get(111).Games)
	assert.Equal(t, 4.0, acc.Get(111).Sums.RunsScored)
	assert.Equal(t, 2, cp.Get(111).Games)
	assert.Equal(t, 11.0, cp.Get(111).Sums.RunsScored)
	assert.Equal(t, []int{111}, acc.Teams())
}
