package service

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/mlb-edge/internal/models"
	"github.com/yourusername/mlb-edge/internal/staking"
)

// DataValidator validates schedule, team and odds rows before they are written
type DataValidator struct {
	validate *validator.Validate
	logger   *logrus.Entry
}

// NewDataValidator creates a new data validator
func NewDataValidator(logger *logrus.Logger) *DataValidator {
	if logger == nil {
		logger = logrus.New()
	}
	return &DataValidator{
		validate: validator.New(),
		logger:   logger.WithField("component", "validator"),
	}
}

// ValidateGame checks struct constraints and schedule consistency
func (v *DataValidator) ValidateGame(game *models.Game) []string {
	errs := v.structErrors(game)

	if game.DateTime.Year() < game.Season-1 || game.DateTime.Year() > game.Season+1 {
		errs = append(errs, fmt.Sprintf("date_time %s is outside season %d", game.DateTime.Format(time.RFC3339), game.Season))
	}
	if (game.HomeScore == nil) != (game.AwayScore == nil) {
		errs = append(errs, "home_score and away_score must both be set or both be empty")
	}
	if (game.HomeScore != nil && *game.HomeScore < 0) || (game.AwayScore != nil && *game.AwayScore < 0) {
		errs = append(errs, "scores cannot be negative")
	}
	return errs
}

// ValidateTeam checks struct constraints of a club
func (v *DataValidator) ValidateTeam(team *models.Team) []string {
	return v.structErrors(team)
}

// ValidateOdds checks that both moneylines parse
func (v *DataValidator) ValidateOdds(odds *models.GameOdds) []string {
	errs := v.structErrors(odds)
	if _, err := staking.ParseMoneyline(odds.HomeOdds); err != nil {
		errs = append(errs, err.Error())
	}
	if _, err := staking.ParseMoneyline(odds.AwayOdds); err != nil {
		errs = append(errs, err.Error())
	}
	return errs
}

func (v *DataValidator) structErrors(s interface{}) []string {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
	}
	return out
}
