package service

import (
	"strings"

	"github.com/yourusername/mlb-edge/internal/models"
)

// DataNormalizer canonicalises schedule rows from the league API
type DataNormalizer struct {
	statusMap map[string]models.GameStatus
}

// NewDataNormalizer creates a new data normalizer
func NewDataNormalizer() *DataNormalizer {
	return &DataNormalizer{statusMap: buildStatusMap()}
}

// NormalizeGame trims names, folds detailed states onto the stored statuses
// and moves the start time to UTC
func (n *DataNormalizer) NormalizeGame(game models.Game) models.Game {
	game.HomeTeamName = strings.TrimSpace(game.HomeTeamName)
	game.AwayTeamName = strings.TrimSpace(game.AwayTeamName)
	game.DayNight = strings.ToLower(strings.TrimSpace(game.DayNight))
	game.DateTime = game.DateTime.UTC()
	game.Status = n.normalizeStatus(game.Status)
	return game
}

// NormalizeTeam trims the text fields of a club
func (n *DataNormalizer) NormalizeTeam(team models.Team) models.Team {
	team.Name = strings.TrimSpace(team.Name)
	team.Abbreviation = strings.ToUpper(strings.TrimSpace(team.Abbreviation))
	team.ShortName = strings.TrimSpace(team.ShortName)
	return team
}

func (n *DataNormalizer) normalizeStatus(status models.GameStatus) models.GameStatus {
	key := strings.ToUpper(strings.TrimSpace(string(status)))
	if canonical, ok := n.statusMap[key]; ok {
		return canonical
	}
	return models.GameStatus(strings.TrimSpace(string(status)))
}

// buildStatusMap maps detailedState variants to stored statuses
func buildStatusMap() map[string]models.GameStatus {
	return map[string]models.GameStatus{
		"FINAL":                               models.GameStatusFinal,
		"GAME OVER":                           models.GameStatusFinal,
		"COMPLETED EARLY":                     models.GameStatusFinal,
		"COMPLETED EARLY: RAIN":               models.GameStatusFinal,
		"FINAL: TIED":                         models.GameStatusFinal,
		"CANCELLED":                           models.GameStatusCancelled,
		"CANCELED":                            models.GameStatusCancelled,
		"POSTPONED":                           models.GameStatusPostponed,
		"SCHEDULED":                           models.GameStatusScheduled,
		"PRE-GAME":                            models.GameStatusScheduled,
		"WARMUP":                              models.GameStatusScheduled,
		"DELAYED START":                       models.GameStatusScheduled,
		"DELAYED START: RAIN":                 models.GameStatusScheduled,
		"SCHEDULED: MAKEUP OF POSTPONED GAME": models.GameStatusScheduled,
	}
}
