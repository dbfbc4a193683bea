package stats

import "sort"

// SeasonStats are a team's season-to-date totals
type SeasonStats struct {
	GamesPlayed int
	CountingStats
}

// SeasonAccumulator holds season totals per team. Teams are created with zero
// totals the first time they are referenced.
type SeasonAccumulator struct {
	teams map[int]*SeasonStats
}

// NewSeasonAccumulator creates an empty accumulator
func NewSeasonAccumulator() *SeasonAccumulator {
	return &SeasonAccumulator{teams: make(map[int]*SeasonStats)}
}

func (a *SeasonAccumulator) team(teamID int) *SeasonStats {
	s, ok := a.teams[teamID]
	if !ok {
		s = &SeasonStats{}
		a.teams[teamID] = s
	}
	return s
}

// Get returns a copy of the team's current totals
func (a *SeasonAccumulator) Get(teamID int) SeasonStats {
	return *a.team(teamID)
}

// GamesPlayed returns how many games have been folded in for the team
func (a *SeasonAccumulator) GamesPlayed(teamID int) int {
	return a.team(teamID).GamesPlayed
}

// Update folds one game into the team's totals
func (a *SeasonAccumulator) Update(teamID int, line CountingStats) {
	s := a.team(teamID)
	s.GamesPlayed++
	s.Add(line)
}

// Teams returns the ids of every team seen, sorted
func (a *SeasonAccumulator) Teams() []int {
	ids := make([]int, 0, len(a.teams))
	for id := range a.teams {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
