// Package datasource fetches schedules, teams and box scores from the MLB Stats API.
package datasource

import (
	"context"
	"errors"
	"fmt"

	"github.com/yourusername/mlb-edge/internal/boxscore"
	"github.com/yourusername/mlb-edge/internal/models"
)

// StatsSource is everything the pipeline reads from the league API
type StatsSource interface {
	boxscore.Fetcher
	FetchSchedule(ctx context.Context, season int) ([]models.Game, error)
	FetchTeams(ctx context.Context) ([]models.Team, error)
}

var (
	ErrRateLimited      = errors.New("rate limit exceeded")
	ErrCircuitOpen      = errors.New("circuit breaker open")
	ErrNotFound         = errors.New("resource not found")
	ErrServerError      = errors.New("server error")
	ErrInvalidData      = errors.New("invalid data format")
	ErrUnexpectedStatus = errors.New("unexpected response status")
)

// FetchError reports a failed request to the league API. GamePK is zero for
// requests not tied to a single game.
type FetchError struct {
	Endpoint   string
	GamePK     int64
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	target := e.Endpoint
	if e.GamePK != 0 {
		target = fmt.Sprintf("%s (game %d)", e.Endpoint, e.GamePK)
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s failed with status %d: %v", target, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s failed: %v", target, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// statusError maps a non-2xx status to a sentinel
func statusError(code int) error {
	switch {
	case code == 404:
		return ErrNotFound
	case code == 429:
		return ErrRateLimited
	case code >= 500:
		return ErrServerError
	default:
		return ErrUnexpectedStatus
	}
}
