package stats

import (
	"fmt"
	"sort"
)

// RollingStats keeps the last N single-game values of every counting stat.
// All windows are pushed together so they always hold the same number of games.
type RollingStats struct {
	windows []*RingBuffer
}

func newRollingStats(size int) *RollingStats {
	windows := make([]*RingBuffer, len(statFields))
	for i := range windows {
		windows[i] = NewRingBuffer(size)
	}
	return &RollingStats{windows: windows}
}

func (r *RollingStats) push(line CountingStats) {
	for i, f := range statFields {
		r.windows[i].PushEvict(*f.get(&line))
	}
}

// Games returns the number of games in the window
func (r *RollingStats) Games() int {
	return r.windows[0].Len()
}

// Sums returns the per-stat sums over the window
func (r *RollingStats) Sums() CountingStats {
	var c CountingStats
	for i, f := range statFields {
		*f.get(&c) = r.windows[i].Sum()
	}
	return c
}

// RollingSnapshot is a read-only view of a team's window
type RollingSnapshot struct {
	Games int
	Sums  CountingStats
}

// RollingAccumulator holds the last-N-games window of every team
type RollingAccumulator struct {
	size  int
	teams map[int]*RollingStats
}

// NewRollingAccumulator creates an accumulator with window size n
func NewRollingAccumulator(n int) (*RollingAccumulator, error) {
	if n < 1 {
		return nil, fmt.Errorf("rolling window size must be at least 1, got %d", n)
	}
	return &RollingAccumulator{size: n, teams: make(map[int]*RollingStats)}, nil
}

// Size returns the window capacity
func (a *RollingAccumulator) Size() int {
	return a.size
}

func (a *RollingAccumulator) team(teamID int) *RollingStats {
	r, ok := a.teams[teamID]
	if !ok {
		r = newRollingStats(a.size)
		a.teams[teamID] = r
	}
	return r
}

// Update pushes one game into the team's window
func (a *RollingAccumulator) Update(teamID int, line CountingStats) {
	a.team(teamID).push(line)
}

// Get returns the team's window length and sums
func (a *RollingAccumulator) Get(teamID int) RollingSnapshot {
	r := a.team(teamID)
	return RollingSnapshot{Games: r.Games(), Sums: r.Sums()}
}

// Window returns the raw window contents per stat, oldest first
func (a *RollingAccumulator) Window(teamID int) map[string][]float64 {
	r := a.team(teamID)
	out := make(map[string][]float64, len(statFields))
	for i, f := range statFields {
		out[f.name] = r.windows[i].Values()
	}
	return out
}

// Teams returns the ids of every team seen, sorted
func (a *RollingAccumulator) Teams() []int {
	ids := make([]int, 0, len(a.teams))
	for id := range a.teams {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Clone returns a deep copy, so a failed season can be discarded without
// touching the state carried into it
func (a *RollingAccumulator) Clone() *RollingAccumulator {
	cp := &RollingAccumulator{size: a.size, teams: make(map[int]*RollingStats, len(a.teams))}
	for id, r := range a.teams {
		windows := make([]*RingBuffer, len(r.windows))
		for i, w := range r.windows {
			windows[i] = w.Clone()
		}
		cp.teams[id] = &RollingStats{windows: windows}
	}
	return cp
}
