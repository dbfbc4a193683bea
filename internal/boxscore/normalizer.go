package boxscore

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/yourusername/mlb-edge/internal/models"
)

// placeholders the API uses for undefined rate stats
var floatPlaceholders = map[string]struct{}{
	"":     {},
	".---": {},
	"-.--": {},
}

// SafeFloat converts a raw stat value to float64. Missing values and the
// placeholder strings the API emits for undefined ratios become 0.
func SafeFloat(v interface{}) float64 {
	switch val := v.(type) {
	case nil:
		return 0
	case float64:
		return val
	case float32:
		return float64(val)
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		s := strings.TrimSpace(val)
		if _, ok := floatPlaceholders[s]; ok {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0
		}
		return f
	}
	return 0
}

// SafeInt converts a raw counting stat to int, defaulting to 0
func SafeInt(v interface{}) int {
	switch val := v.(type) {
	case nil:
		return 0
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		return int(val)
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return int(i)
		}
		return int(SafeFloat(val))
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			return i
		}
		return int(SafeFloat(val))
	}
	return 0
}

// NormalizeTeam flattens one side of a raw box score
func NormalizeTeam(raw RawTeam) models.TeamBoxScore {
	t := models.TeamBoxScore{TeamID: raw.Team.ID}
	for _, f := range Fields {
		v := raw.TeamStats.section(f.Section)[f.Key]
		if f.IsFloat() {
			*f.Float(&t) = SafeFloat(v)
			continue
		}
		*f.Int(&t) = SafeInt(v)
	}
	return t
}

// Normalize flattens both sides of a raw box score
func Normalize(gamePK int64, raw RawBoxScore) models.BoxScoreRecord {
	return models.BoxScoreRecord{
		GamePK: gamePK,
		Home:   NormalizeTeam(raw.Teams.Home),
		Away:   NormalizeTeam(raw.Teams.Away),
	}
}

// ReconstructTeam rebuilds the nested API shape of one side
func ReconstructTeam(t models.TeamBoxScore) RawTeam {
	stats := RawTeamStats{
		Batting:  map[string]interface{}{},
		Pitching: map[string]interface{}{},
		Fielding: map[string]interface{}{},
	}
	for _, f := range Fields {
		stats.section(f.Section)[f.Key] = f.Value(&t)
	}
	return RawTeam{
		Team:      RawTeamRef{ID: t.TeamID},
		TeamStats: stats,
	}
}

// Reconstruct rebuilds the raw box score from a stored record so cached games
// replay through the same path as fetched ones
func Reconstruct(rec models.BoxScoreRecord) (RawBoxScore, error) {
	switch {
	case rec.GamePK <= 0:
		return RawBoxScore{}, &CacheInconsistencyError{GamePK: rec.GamePK, Field: "game_id"}
	case rec.Home.TeamID <= 0:
		return RawBoxScore{}, &CacheInconsistencyError{GamePK: rec.GamePK, Field: ColumnName(models.SideHome, TeamIDColumn)}
	case rec.Away.TeamID <= 0:
		return RawBoxScore{}, &CacheInconsistencyError{GamePK: rec.GamePK, Field: ColumnName(models.SideAway, TeamIDColumn)}
	case rec.Home.TeamID == rec.Away.TeamID:
		return RawBoxScore{}, &CacheInconsistencyError{GamePK: rec.GamePK, Field: ColumnName(models.SideAway, TeamIDColumn)}
	}
	for _, f := range Fields {
		if f.IsFloat() {
			for _, side := range []*models.TeamBoxScore{&rec.Home, &rec.Away} {
				v := *f.Float(side)
				if math.IsNaN(v) || math.IsInf(v, 0) {
					return RawBoxScore{}, &CacheInconsistencyError{GamePK: rec.GamePK, Field: f.Column}
				}
			}
		}
	}
	return RawBoxScore{
		Teams: RawTeams{
			Home: ReconstructTeam(rec.Home),
			Away: ReconstructTeam(rec.Away),
		},
	}, nil
}
