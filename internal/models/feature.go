package models

import (
	"fmt"
	"sort"
	"time"
)

// Reserved feature keys
const (
	FeatureHomeTeamID = "home_team_id"
	FeatureAwayTeamID = "away_team_id"
	FeatureLabel      = "label"
)

// FeatureRecord is the point-in-time feature vector of one game
type FeatureRecord struct {
	GamePK    int64              `db:"game_id" json:"game_id"`
	Season    int                `db:"season" json:"season"`
	Features  map[string]float64 `db:"features_json" json:"features"`
	CreatedAt time.Time          `db:"created_at" json:"created_at"`
}

// HomeTeamID returns the home team id stored in the record
func (f *FeatureRecord) HomeTeamID() int {
	return int(f.Features[FeatureHomeTeamID])
}

// AwayTeamID returns the away team id stored in the record
func (f *FeatureRecord) AwayTeamID() int {
	return int(f.Features[FeatureAwayTeamID])
}

// Label is 1 when the home team won
func (f *FeatureRecord) Label() int {
	return int(f.Features[FeatureLabel])
}

// Value returns a named feature
func (f *FeatureRecord) Value(name string) (float64, error) {
	v, ok := f.Features[name]
	if !ok {
		return 0, fmt.Errorf("%w: feature %q", ErrNotFound, name)
	}
	return v, nil
}

// Keys returns the feature names in sorted order
func (f *FeatureRecord) Keys() []string {
	keys := make([]string, 0, len(f.Features))
	for k := range f.Features {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
