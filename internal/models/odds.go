package models

import "time"

// GameOdds holds the moneyline odds captured for a game, as American odds strings
type GameOdds struct {
	GamePK     int64     `db:"game_id" json:"game_id" validate:"required,gt=0"`
	HomeOdds   string    `db:"home_team_odds" json:"home_team_odds" validate:"required"`
	AwayOdds   string    `db:"away_team_odds" json:"away_team_odds" validate:"required"`
	RecordedAt time.Time `db:"recorded_at" json:"recorded_at"`
}
