package models

import (
	"time"

	"github.com/google/uuid"
)

// ReplayStatus is the lifecycle state of a season replay
type ReplayStatus string

const (
	ReplayStatusRunning   ReplayStatus = "running"
	ReplayStatusCompleted ReplayStatus = "completed"
	ReplayStatusFailed    ReplayStatus = "failed"
)

// ReplayRun records one pass of the replay driver over a season
type ReplayRun struct {
	ID              uuid.UUID    `db:"id" json:"id"`
	Season          int          `db:"season" json:"season"`
	Status          ReplayStatus `db:"status" json:"status"`
	GamesProcessed  int          `db:"games_processed" json:"games_processed"`
	FeaturesEmitted int          `db:"features_emitted" json:"features_emitted"`
	LastGamePK      *int64       `db:"last_game_id" json:"last_game_id"`
	ErrorMessage    *string      `db:"error_message" json:"error_message"`
	StartedAt       time.Time    `db:"started_at" json:"started_at"`
	FinishedAt      *time.Time   `db:"finished_at" json:"finished_at"`
}

// NewReplayRun starts a run for the season
func NewReplayRun(season int) *ReplayRun {
	return &ReplayRun{
		ID:        uuid.New(),
		Season:    season,
		Status:    ReplayStatusRunning,
		StartedAt: time.Now().UTC(),
	}
}

// Complete marks the run finished
func (r *ReplayRun) Complete(processed, emitted int, last *int64) {
	now := time.Now().UTC()
	r.Status = ReplayStatusCompleted
	r.GamesProcessed = processed
	r.FeaturesEmitted = emitted
	r.LastGamePK = last
	r.FinishedAt = &now
}

// Fail marks the run failed with the error that stopped it
func (r *ReplayRun) Fail(processed, emitted int, last *int64, err error) {
	r.Complete(processed, emitted, last)
	r.Status = ReplayStatusFailed
	msg := err.Error()
	r.ErrorMessage = &msg
}

// Duration returns how long the run took, or zero while it is running
func (r *ReplayRun) Duration() time.Duration {
	if r.FinishedAt == nil {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
