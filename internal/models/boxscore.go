package models

import "fmt"

// Side identifies the home or away half of a game
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

// Valid reports whether s is home or away
func (s Side) Valid() bool {
	return s == SideHome || s == SideAway
}

// TeamBoxScore is the flat per-team stat line of one game.
// Batting counts come first, then pitching (allowed) counts, then fielding.
type TeamBoxScore struct {
	TeamID int `json:"team_id"`

	Runs                 int     `json:"runs"`
	Hits                 int     `json:"hits"`
	Doubles              int     `json:"doubles"`
	Triples              int     `json:"triples"`
	HomeRuns             int     `json:"home_runs"`
	Strikeouts           int     `json:"strikeouts"`
	Walks                int     `json:"walks"`
	HitByPitch           int     `json:"hit_by_pitch"`
	AtBats               int     `json:"at_bats"`
	PlateAppearances     int     `json:"plate_appearances"`
	TotalBases           int     `json:"total_bases"`
	SacFlies             int     `json:"sac_flies"`
	SacBunts             int     `json:"sac_bunts"`
	OBP                  float64 `json:"obp"`
	SLG                  float64 `json:"slg"`
	OPS                  float64 `json:"ops"`
	AVG                  float64 `json:"avg"`
	RBI                  int     `json:"rbi"`
	LeftOnBase           int     `json:"left_on_base"`
	CaughtStealing       int     `json:"caught_stealing"`
	StolenBases          int     `json:"stolen_bases"`
	StolenBasePercentage float64 `json:"stolen_base_percentage"`
	GroundIntoDoublePlay int     `json:"ground_into_double_play"`
	GroundIntoTriplePlay int     `json:"ground_into_triple_play"`
	PickoffsBatting      int     `json:"pickoffs_batting"`

	EarnedRuns                     int     `json:"earned_runs"`
	InningsPitched                 float64 `json:"innings_pitched"`
	PitchingStrikeouts             int     `json:"pitching_strikeouts"`
	PitchingWalks                  int     `json:"pitching_walks"`
	PitchingHits                   int     `json:"pitching_hits"`
	PitchingDoubles                int     `json:"pitching_doubles"`
	PitchingTriples                int     `json:"pitching_triples"`
	PitchingHitBatsmen             int     `json:"pitching_hit_batsmen"`
	PitchingSacFlies               int     `json:"pitching_sac_flies"`
	PitchingAtBats                 int     `json:"pitching_at_bats"`
	PitchingHomeRuns               int     `json:"pitching_home_runs"`
	PitchingERA                    float64 `json:"pitching_era"`
	PitchingWHIP                   float64 `json:"pitching_whip"`
	PitchingOBP                    float64 `json:"pitching_obp"`
	PitchingBattersFaced           int     `json:"pitching_batters_faced"`
	PitchingStrikes                int     `json:"pitching_strikes"`
	PitchingBalls                  int     `json:"pitching_balls"`
	PitchingStrikePct              float64 `json:"pitching_strike_pct"`
	PitchingPickoffs               int     `json:"pitching_pickoffs"`
	PitchingInheritedRunners       int     `json:"pitching_inherited_runners"`
	PitchingInheritedRunnersScored int     `json:"pitching_inherited_runners_scored"`

	Errors                 int     `json:"errors"`
	Assists                int     `json:"assists"`
	Putouts                int     `json:"putouts"`
	FieldingChances        int     `json:"fielding_chances"`
	PassedBall             int     `json:"passed_ball"`
	FieldingCaughtStealing int     `json:"fielding_caught_stealing"`
	FieldingStolenBases    int     `json:"fielding_stolen_bases"`
	FieldingStolenBasePct  float64 `json:"fielding_stolen_base_pct"`
	FieldingPickoffs       int     `json:"fielding_pickoffs"`
}

// BoxScoreRecord is the normalized box score of one game, keyed by game id
type BoxScoreRecord struct {
	GamePK int64        `json:"game_id"`
	Home   TeamBoxScore `json:"home"`
	Away   TeamBoxScore `json:"away"`
}

// Team returns the stat line for the given side
func (r *BoxScoreRecord) Team(side Side) (TeamBoxScore, error) {
	switch side {
	case SideHome:
		return r.Home, nil
	case SideAway:
		return r.Away, nil
	default:
		return TeamBoxScore{}, fmt.Errorf("%w: %q", ErrInvalidSide, side)
	}
}

// IsTie reports whether both sides scored the same number of runs
func (r *BoxScoreRecord) IsTie() bool {
	return r.Home.Runs == r.Away.Runs
}
