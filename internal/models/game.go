package models

import (
	"time"
)

// GameStatus mirrors the detailedState reported by the MLB schedule endpoint
type GameStatus string

const (
	GameStatusScheduled GameStatus = "Scheduled"
	GameStatusFinal     GameStatus = "Final"
	GameStatusCancelled GameStatus = "Cancelled"
	GameStatusPostponed GameStatus = "Postponed"
)

// GameTypeRegular is the schedule gameType for regular season games
const GameTypeRegular = "R"

// LeagueDayOffset shifts UTC start times onto the US eastern calendar day the
// schedule is published in
const LeagueDayOffset = 4 * time.Hour

// LeagueDate returns the calendar day t falls on in league time, at midnight UTC
func LeagueDate(t time.Time) time.Time {
	shifted := t.UTC().Add(-LeagueDayOffset)
	return time.Date(shifted.Year(), shifted.Month(), shifted.Day(), 0, 0, 0, 0, time.UTC)
}

// Game is one row of a season schedule
type Game struct {
	GamePK       int64      `db:"game_id" json:"game_id" validate:"required,gt=0"`
	Season       int        `db:"season" json:"season" validate:"required,gte=1900"`
	GameType     string     `db:"game_type" json:"game_type" validate:"required"`
	DateTime     time.Time  `db:"date_time" json:"date_time" validate:"required"`
	HomeTeamID   int        `db:"home_team_id" json:"home_team_id" validate:"required,gt=0"`
	AwayTeamID   int        `db:"away_team_id" json:"away_team_id" validate:"required,gt=0,nefield=HomeTeamID"`
	HomeTeamName string     `db:"home_team_name" json:"home_team_name"`
	AwayTeamName string     `db:"away_team_name" json:"away_team_name"`
	HomeScore    *int       `db:"home_score" json:"home_score"`
	AwayScore    *int       `db:"away_score" json:"away_score"`
	Status       GameStatus `db:"status_code" json:"status_code" validate:"required"`
	VenueID      int        `db:"venue_id" json:"venue_id"`
	DayNight     string     `db:"day_night" json:"day_night"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// IsCancelled reports whether the game was called off
func (g *Game) IsCancelled() bool {
	return g.Status == GameStatusCancelled
}

// HasFinalScore reports whether both scores are known
func (g *Game) HasFinalScore() bool {
	return g.HomeScore != nil && g.AwayScore != nil
}

// HomeWon reports whether the home side won. Ties and unknown scores count as away.
func (g *Game) HomeWon() bool {
	if !g.HasFinalScore() {
		return false
	}
	return *g.HomeScore > *g.AwayScore
}

// Age returns how long ago the game started
func (g *Game) Age(now time.Time) time.Duration {
	return now.Sub(g.DateTime)
}

// LeagueDate returns the league calendar day of the game
func (g *Game) LeagueDate() time.Time {
	return LeagueDate(g.DateTime)
}
