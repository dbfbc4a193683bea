package boxscore

import (
	"fmt"

	"github.com/yourusername/mlb-edge/internal/models"
)

// Field maps one flat column of a TeamBoxScore to its key in the raw payload.
// Exactly one of Int and Float is set.
type Field struct {
	Section string
	Key     string
	Column  string
	Int     func(*models.TeamBoxScore) *int
	Float   func(*models.TeamBoxScore) *float64
}

// IsFloat reports whether the field goes through SafeFloat
func (f Field) IsFloat() bool {
	return f.Float != nil
}

// Ptr returns a pointer to the field inside t, for scanning rows
func (f Field) Ptr(t *models.TeamBoxScore) interface{} {
	if f.Float != nil {
		return f.Float(t)
	}
	return f.Int(t)
}

// Value returns the field value of t
func (f Field) Value(t *models.TeamBoxScore) interface{} {
	if f.Float != nil {
		return *f.Float(t)
	}
	return *f.Int(t)
}

func intField(section, key, column string, get func(*models.TeamBoxScore) *int) Field {
	return Field{Section: section, Key: key, Column: column, Int: get}
}

func floatField(section, key, column string, get func(*models.TeamBoxScore) *float64) Field {
	return Field{Section: section, Key: key, Column: column, Float: get}
}

type tbs = models.TeamBoxScore

// Fields lists every stat column in storage order. team_id is handled separately.
var Fields = []Field{
	intField(SectionBatting, "runs", "runs", func(t *tbs) *int { return &t.Runs }),
	intField(SectionBatting, "hits", "hits", func(t *tbs) *int { return &t.Hits }),
	intField(SectionBatting, "doubles", "doubles", func(t *tbs) *int { return &t.Doubles }),
	intField(SectionBatting, "triples", "triples", func(t *tbs) *int { return &t.Triples }),
	intField(SectionBatting, "homeRuns", "home_runs", func(t *tbs) *int { return &t.HomeRuns }),
	intField(SectionBatting, "strikeOuts", "strikeouts", func(t *tbs) *int { return &t.Strikeouts }),
	intField(SectionBatting, "baseOnBalls", "walks", func(t *tbs) *int { return &t.Walks }),
	intField(SectionBatting, "hitByPitch", "hit_by_pitch", func(t *tbs) *int { return &t.HitByPitch }),
	intField(SectionBatting, "atBats", "at_bats", func(t *tbs) *int { return &t.AtBats }),
	intField(SectionBatting, "plateAppearances", "plate_appearances", func(t *tbs) *int { return &t.PlateAppearances }),
	intField(SectionBatting, "totalBases", "total_bases", func(t *tbs) *int { return &t.TotalBases }),
	intField(SectionBatting, "sacFlies", "sac_flies", func(t *tbs) *int { return &t.SacFlies }),
	intField(SectionBatting, "sacBunts", "sac_bunts", func(t *tbs) *int { return &t.SacBunts }),
	floatField(SectionBatting, "obp", "obp", func(t *tbs) *float64 { return &t.OBP }),
	floatField(SectionBatting, "slg", "slg", func(t *tbs) *float64 { return &t.SLG }),
	floatField(SectionBatting, "ops", "ops", func(t *tbs) *float64 { return &t.OPS }),
	floatField(SectionBatting, "avg", "avg", func(t *tbs) *float64 { return &t.AVG }),
	intField(SectionBatting, "rbi", "rbi", func(t *tbs) *int { return &t.RBI }),
	intField(SectionBatting, "leftOnBase", "left_on_base", func(t *tbs) *int { return &t.LeftOnBase }),
	intField(SectionBatting, "caughtStealing", "caught_stealing", func(t *tbs) *int { return &t.CaughtStealing }),
	intField(SectionBatting, "stolenBases", "stolen_bases", func(t *tbs) *int { return &t.StolenBases }),
	floatField(SectionBatting, "stolenBasePercentage", "stolen_base_percentage", func(t *tbs) *float64 { return &t.StolenBasePercentage }),
	intField(SectionBatting, "groundIntoDoublePlay", "ground_into_double_play", func(t *tbs) *int { return &t.GroundIntoDoublePlay }),
	intField(SectionBatting, "groundIntoTriplePlay", "ground_into_triple_play", func(t *tbs) *int { return &t.GroundIntoTriplePlay }),
	intField(SectionBatting, "pickoffs", "pickoffs_batting", func(t *tbs) *int { return &t.PickoffsBatting }),

	intField(SectionPitching, "earnedRuns", "earned_runs", func(t *tbs) *int { return &t.EarnedRuns }),
	floatField(SectionPitching, "inningsPitched", "innings_pitched", func(t *tbs) *float64 { return &t.InningsPitched }),
	intField(SectionPitching, "strikeOuts", "pitching_strikeouts", func(t *tbs) *int { return &t.PitchingStrikeouts }),
	intField(SectionPitching, "baseOnBalls", "pitching_walks", func(t *tbs) *int { return &t.PitchingWalks }),
	intField(SectionPitching, "hits", "pitching_hits", func(t *tbs) *int { return &t.PitchingHits }),
	intField(SectionPitching, "doubles", "pitching_doubles", func(t *tbs) *int { return &t.PitchingDoubles }),
	intField(SectionPitching, "triples", "pitching_triples", func(t *tbs) *int { return &t.PitchingTriples }),
	intField(SectionPitching, "hitBatsmen", "pitching_hit_batsmen", func(t *tbs) *int { return &t.PitchingHitBatsmen }),
	intField(SectionPitching, "sacFlies", "pitching_sac_flies", func(t *tbs) *int { return &t.PitchingSacFlies }),
	intField(SectionPitching, "atBats", "pitching_at_bats", func(t *tbs) *int { return &t.PitchingAtBats }),
	intField(SectionPitching, "homeRuns", "pitching_home_runs", func(t *tbs) *int { return &t.PitchingHomeRuns }),
	floatField(SectionPitching, "era", "pitching_era", func(t *tbs) *float64 { return &t.PitchingERA }),
	floatField(SectionPitching, "whip", "pitching_whip", func(t *tbs) *float64 { return &t.PitchingWHIP }),
	floatField(SectionPitching, "obp", "pitching_obp", func(t *tbs) *float64 { return &t.PitchingOBP }),
	intField(SectionPitching, "battersFaced", "pitching_batters_faced", func(t *tbs) *int { return &t.PitchingBattersFaced }),
	intField(SectionPitching, "strikes", "pitching_strikes", func(t *tbs) *int { return &t.PitchingStrikes }),
	intField(SectionPitching, "balls", "pitching_balls", func(t *tbs) *int { return &t.PitchingBalls }),
	floatField(SectionPitching, "strikePercentage", "pitching_strike_pct", func(t *tbs) *float64 { return &t.PitchingStrikePct }),
	intField(SectionPitching, "pickoffs", "pitching_pickoffs", func(t *tbs) *int { return &t.PitchingPickoffs }),
	intField(SectionPitching, "inheritedRunners", "pitching_inherited_runners", func(t *tbs) *int { return &t.PitchingInheritedRunners }),
	intField(SectionPitching, "inheritedRunnersScored", "pitching_inherited_runners_scored", func(t *tbs) *int { return &t.PitchingInheritedRunnersScored }),

	intField(SectionFielding, "errors", "errors", func(t *tbs) *int { return &t.Errors }),
	intField(SectionFielding, "assists", "assists", func(t *tbs) *int { return &t.Assists }),
	intField(SectionFielding, "putOuts", "putouts", func(t *tbs) *int { return &t.Putouts }),
	intField(SectionFielding, "chances", "fielding_chances", func(t *tbs) *int { return &t.FieldingChances }),
	intField(SectionFielding, "passedBall", "passed_ball", func(t *tbs) *int { return &t.PassedBall }),
	intField(SectionFielding, "caughtStealing", "fielding_caught_stealing", func(t *tbs) *int { return &t.FieldingCaughtStealing }),
	intField(SectionFielding, "stolenBases", "fielding_stolen_bases", func(t *tbs) *int { return &t.FieldingStolenBases }),
	floatField(SectionFielding, "stolenBasePercentage", "fielding_stolen_base_pct", func(t *tbs) *float64 { return &t.FieldingStolenBasePct }),
	intField(SectionFielding, "pickoffs", "fielding_pickoffs", func(t *tbs) *int { return &t.FieldingPickoffs }),
}

// TeamIDColumn is the flat column holding the club id
const TeamIDColumn = "team_id"

// Columns returns the prefixed storage columns of one side, team id first
func Columns(side models.Side) []string {
	cols := make([]string, 0, len(Fields)+1)
	cols = append(cols, ColumnName(side, TeamIDColumn))
	for _, f := range Fields {
		cols = append(cols, ColumnName(side, f.Column))
	}
	return cols
}

// ColumnName prefixes a flat column with its side
func ColumnName(side models.Side, column string) string {
	return fmt.Sprintf("%s_%s", side, column)
}

// Values returns the values of one side in Columns order
func Values(t *models.TeamBoxScore) []interface{} {
	vals := make([]interface{}, 0, len(Fields)+1)
	vals = append(vals, t.TeamID)
	for _, f := range Fields {
		vals = append(vals, f.Value(t))
	}
	return vals
}

// ScanTargets returns pointers into t in Columns order
func ScanTargets(t *models.TeamBoxScore) []interface{} {
	ptrs := make([]interface{}, 0, len(Fields)+1)
	ptrs = append(ptrs, &t.TeamID)
	for _, f := range Fields {
		ptrs = append(ptrs, f.Ptr(t))
	}
	return ptrs
}

// Flatten returns the record as a column map, the shape stored in the cache table
func Flatten(rec *models.BoxScoreRecord) map[string]interface{} {
	out := make(map[string]interface{}, 2*(len(Fields)+1)+1)
	out["game_id"] = rec.GamePK
	for _, side := range []models.Side{models.SideHome, models.SideAway} {
		t := rec.Home
		if side == models.SideAway {
			t = rec.Away
		}
		cols := Columns(side)
		vals := Values(&t)
		for i, c := range cols {
			out[c] = vals[i]
		}
	}
	return out
}
