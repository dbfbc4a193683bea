package boxscore

// Stat sections of teamStats in the MLB boxscore payload
const (
	SectionBatting  = "batting"
	SectionPitching = "pitching"
	SectionFielding = "fielding"
)

// RawBoxScore is the subset of the MLB Stats API boxscore payload the normalizer reads
type RawBoxScore struct {
	Teams RawTeams `json:"teams"`
}

// RawTeams holds both sides of a raw box score
type RawTeams struct {
	Home RawTeam `json:"home"`
	Away RawTeam `json:"away"`
}

// RawTeam is one side of a raw box score
type RawTeam struct {
	Team      RawTeamRef   `json:"team"`
	TeamStats RawTeamStats `json:"teamStats"`
}

// RawTeamRef identifies the club
type RawTeamRef struct {
	ID   int    `json:"id"`
	Name string `json:"name,omitempty"`
}

// RawTeamStats keeps the stat sections as loosely typed maps; the API mixes
// numbers with formatted strings such as ".312" or "-.--"
type RawTeamStats struct {
	Batting  map[string]interface{} `json:"batting"`
	Pitching map[string]interface{} `json:"pitching"`
	Fielding map[string]interface{} `json:"fielding"`
}

func (s RawTeamStats) section(name string) map[string]interface{} {
	switch name {
	case SectionBatting:
		return s.Batting
	case SectionPitching:
		return s.Pitching
	case SectionFielding:
		return s.Fielding
	}
	return nil
}
