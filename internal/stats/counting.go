// Package stats maintains per-team season and rolling counting statistics and
// derives rate statistics from them.
package stats

import "github.com/yourusername/mlb-edge/internal/models"

// CountingStats are the raw per-team counts the rate statistics are derived
// from. Pitching fields count what the team's pitchers allowed.
type CountingStats struct {
	RunsScored       float64
	BattingHits      float64
	AtBats           float64
	BattingWalks     float64
	HitByPitch       float64
	SacFlies         float64
	TotalBases       float64
	Strikeouts       float64
	PlateAppearances float64
	HomeRuns         float64

	RunsGiven            float64
	PitchingHits         float64
	PitchingWalks        float64
	EarnedRuns           float64
	InningsPitched       float64
	PitchingHitBatsmen   float64
	PitchingSacFlies     float64
	PitchingAtBats       float64
	PitchingDoubles      float64
	PitchingTriples      float64
	PitchingHomeRuns     float64
	PitchingStrikeOuts   float64
	PitchingBattersFaced float64
}

type statField struct {
	name string
	get  func(*CountingStats) *float64
}

// statFields fixes the order the rolling windows are kept in
var statFields = []statField{
	{"runsScored", func(c *CountingStats) *float64 { return &c.RunsScored }},
	{"battingHits", func(c *CountingStats) *float64 { return &c.BattingHits }},
	{"atBats", func(c *CountingStats) *float64 { return &c.AtBats }},
	{"battingWalks", func(c *CountingStats) *float64 { return &c.BattingWalks }},
	{"hitByPitch", func(c *CountingStats) *float64 { return &c.HitByPitch }},
	{"sacFlies", func(c *CountingStats) *float64 { return &c.SacFlies }},
	{"totalBases", func(c *CountingStats) *float64 { return &c.TotalBases }},
	{"strikeouts", func(c *CountingStats) *float64 { return &c.Strikeouts }},
	{"plateAppearances", func(c *CountingStats) *float64 { return &c.PlateAppearances }},
	{"homeRuns", func(c *CountingStats) *float64 { return &c.HomeRuns }},
	{"runsGiven", func(c *CountingStats) *float64 { return &c.RunsGiven }},
	{"pitchingHits", func(c *CountingStats) *float64 { return &c.PitchingHits }},
	{"pitchingWalks", func(c *CountingStats) *float64 { return &c.PitchingWalks }},
	{"earnedRuns", func(c *CountingStats) *float64 { return &c.EarnedRuns }},
	{"inningsPitched", func(c *CountingStats) *float64 { return &c.InningsPitched }},
	{"pitchingHitBatsmen", func(c *CountingStats) *float64 { return &c.PitchingHitBatsmen }},
	{"pitchingSacFlies", func(c *CountingStats) *float64 { return &c.PitchingSacFlies }},
	{"pitchingAtBats", func(c *CountingStats) *float64 { return &c.PitchingAtBats }},
	{"pitchingDoubles", func(c *CountingStats) *float64 { return &c.PitchingDoubles }},
	{"pitchingTriples", func(c *CountingStats) *float64 { return &c.PitchingTriples }},
	{"pitchingHomeRuns", func(c *CountingStats) *float64 { return &c.PitchingHomeRuns }},
	{"pitchingStrikeOuts", func(c *CountingStats) *float64 { return &c.PitchingStrikeOuts }},
	{"pitchingBattersFaced", func(c *CountingStats) *float64 { return &c.PitchingBattersFaced }},
}

// StatNames returns the counting stat names in window order
func StatNames() []string {
	names := make([]string, len(statFields))
	for i, f := range statFields {
		names[i] = f.name
	}
	return names
}

// Add folds o into c
func (c *CountingStats) Add(o CountingStats) {
	for _, f := range statFields {
		*f.get(c) += *f.get(&o)
	}
}

// LineFor builds one team's single-game counting stats. Runs given is what
// the opponent scored.
func LineFor(team, opponent models.TeamBoxScore) CountingStats {
	return CountingStats{
		RunsScored:       float64(team.Runs),
		BattingHits:      float64(team.Hits),
		AtBats:           float64(team.AtBats),
		BattingWalks:     float64(team.Walks),
		HitByPitch:       float64(team.HitByPitch),
		SacFlies:         float64(team.SacFlies),
		TotalBases:       float64(team.TotalBases),
		Strikeouts:       float64(team.Strikeouts),
		PlateAppearances: float64(team.PlateAppearances),
		HomeRuns:         float64(team.HomeRuns),

		RunsGiven:            float64(opponent.Runs),
		PitchingHits:         float64(team.PitchingHits),
		PitchingWalks:        float64(team.PitchingWalks),
		EarnedRuns:           float64(team.EarnedRuns),
		InningsPitched:       team.InningsPitched,
		PitchingHitBatsmen:   float64(team.PitchingHitBatsmen),
		PitchingSacFlies:     float64(team.PitchingSacFlies),
		PitchingAtBats:       float64(team.PitchingAtBats),
		PitchingDoubles:      float64(team.PitchingDoubles),
		PitchingTriples:      float64(team.PitchingTriples),
		PitchingHomeRuns:     float64(team.PitchingHomeRuns),
		PitchingStrikeOuts:   float64(team.PitchingStrikeouts),
		PitchingBattersFaced: float64(team.PitchingBattersFaced),
	}
}

// LinesFromRecord returns the home and away single-game lines of a box score
func LinesFromRecord(rec models.BoxScoreRecord) (home, away CountingStats) {
	return LineFor(rec.Home, rec.Away), LineFor(rec.Away, rec.Home)
}
