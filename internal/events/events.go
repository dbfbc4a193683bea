// Package events publishes replay lifecycle messages.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Subject suffixes appended to the configured base subject
const (
	SuffixSeasonCompleted = "season.completed"
	SuffixSeasonFailed    = "season.failed"
)

// SeasonSummary is published after every season replay
type SeasonSummary struct {
	RunID           uuid.UUID `json:"run_id"`
	Season          int       `json:"season"`
	Status          string    `json:"status"`
	GamesProcessed  int       `json:"games_processed"`
	FeaturesEmitted int       `json:"features_emitted"`
	LastGamePK      int64     `json:"last_game_id,omitempty"`
	Error           string    `json:"error,omitempty"`
	DurationMs      int64     `json:"duration_ms"`
	FinishedAt      time.Time `json:"finished_at"`
}

// Publisher sends season summaries to interested consumers
type Publisher interface {
	PublishSeasonSummary(ctx context.Context, summary SeasonSummary) error
	Close()
}

// NoopPublisher drops every message
type NoopPublisher struct{}

// PublishSeasonSummary does nothing
func (NoopPublisher) PublishSeasonSummary(context.Context, SeasonSummary) error { return nil }

// Close does nothing
func (NoopPublisher) Close() {}

func encodeSummary(summary SeasonSummary) ([]byte, error) {
	data, err := json.Marshal(summary)
	if err != nil {
		return nil, fmt.Errorf("failed to encode season summary: %w", err)
	}
	return data, nil
}

func summarySubject(base string, summary SeasonSummary) string {
	suffix := SuffixSeasonCompleted
	if summary.Error != "" {
		suffix = SuffixSeasonFailed
	}
	return base + "." + suffix
}
