package stats

// MetricNames lists the derived rate statistics in output order
var MetricNames = []string{
	"runs_scored",
	"batting_avg",
	"obp",
	"slg",
	"ops",
	"batting_k_pct",
	"bb_pct",
	"babip",
	"runs_given",
	"era",
	"whip",
	"opponent_obp",
	"opponent_slg",
	"opponent_ops",
	"k_per_9",
	"pitching_k_pct",
	"bb_per_9",
	"hr_per_9",
}

// Metrics are rate statistics derived from counting stats
type Metrics struct {
	RunsScored   float64
	BattingAvg   float64
	OBP          float64
	SLG          float64
	OPS          float64
	BattingKPct  float64
	BBPct        float64
	BABIP        float64
	RunsGiven    float64
	ERA          float64
	WHIP         float64
	OpponentOBP  float64
	OpponentSLG  float64
	OpponentOPS  float64
	KPer9        float64
	PitchingKPct float64
	BBPer9       float64
	HRPer9       float64
}

// Values returns the metrics in MetricNames order
func (m Metrics) Values() []float64 {
	return []float64{
		m.RunsScored, m.BattingAvg, m.OBP, m.SLG, m.OPS, m.BattingKPct, m.BBPct, m.BABIP,
		m.RunsGiven, m.ERA, m.WHIP, m.OpponentOBP, m.OpponentSLG, m.OpponentOPS,
		m.KPer9, m.PitchingKPct, m.BBPer9, m.HRPer9,
	}
}

// Map returns the metrics keyed by name
func (m Metrics) Map() map[string]float64 {
	vals := m.Values()
	out := make(map[string]float64, len(MetricNames))
	for i, name := range MetricNames {
		out[name] = vals[i]
	}
	return out
}

// safeDiv returns 0 when the denominator is not positive
func safeDiv(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return num / den
}

// CalculateMetrics derives rate statistics from counting stats over the given
// number of games. Season metrics pass games played; rolling metrics pass the
// window sums and the window length.
func CalculateMetrics(c CountingStats, games int) Metrics {
	g := float64(games)

	obp := safeDiv(c.BattingHits+c.BattingWalks+c.HitByPitch,
		c.AtBats+c.BattingWalks+c.HitByPitch+c.SacFlies)
	slg := safeDiv(c.TotalBases, c.AtBats)

	oppOBP := safeDiv(c.PitchingHits+c.PitchingWalks+c.PitchingHitBatsmen,
		c.PitchingAtBats+c.PitchingWalks+c.PitchingHitBatsmen+c.PitchingSacFlies)
	singlesAllowed := c.PitchingHits - c.PitchingDoubles - c.PitchingTriples - c.PitchingHomeRuns
	basesAllowed := singlesAllowed + 2*c.PitchingDoubles + 3*c.PitchingTriples + 4*c.PitchingHomeRuns
	oppSLG := safeDiv(basesAllowed, c.PitchingAtBats)

	ip := c.InningsPitched

	return Metrics{
		RunsScored:  safeDiv(c.RunsScored, g),
		BattingAvg:  safeDiv(c.BattingHits, c.AtBats),
		OBP:         obp,
		SLG:         slg,
		OPS:         obp + slg,
		BattingKPct: safeDiv(c.Strikeouts, c.PlateAppearances),
		BBPct:       safeDiv(c.BattingWalks, c.PlateAppearances),
		BABIP: safeDiv(c.BattingHits-c.HomeRuns,
			c.AtBats-c.Strikeouts-c.HomeRuns+c.SacFlies),

		RunsGiven:    safeDiv(c.RunsGiven, g),
		ERA:          safeDiv(c.EarnedRuns*9, ip),
		WHIP:         safeDiv(c.PitchingHits+c.PitchingWalks, ip),
		OpponentOBP:  oppOBP,
		OpponentSLG:  oppSLG,
		OpponentOPS:  oppOBP + oppSLG,
		KPer9:        safeDiv(c.PitchingStrikeOuts*9, ip),
		PitchingKPct: safeDiv(c.PitchingStrikeOuts, c.PitchingBattersFaced),
		BBPer9:       safeDiv(c.PitchingWalks*9, ip),
		HRPer9:       safeDiv(c.PitchingHomeRuns*9, ip),
	}
}

// SeasonMetrics derives metrics from season-to-date totals
func SeasonMetrics(s SeasonStats) Metrics {
	return CalculateMetrics(s.CountingStats, s.GamesPlayed)
}

// RollingMetrics derives metrics from a rolling window
func RollingMetrics(r RollingSnapshot) Metrics {
	return CalculateMetrics(r.Sums, r.Games)
}
