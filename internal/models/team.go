package models

import "time"

// MLBSportName is the sport name of major league clubs in the teams endpoint
const MLBSportName = "Major League Baseball"

// Team is a major league club
type Team struct {
	ID           int       `db:"id" json:"id" validate:"required,gt=0"`
	Name         string    `db:"name" json:"name" validate:"required"`
	Abbreviation string    `db:"abbreviation" json:"abbreviation"`
	ShortName    string    `db:"short_name" json:"short_name"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
