package logger

import (
	"github.com/sirupsen/logrus"
)

// StakeLogger provides dedicated logging for stake recommendations.
type StakeLogger struct {
	*logrus.Entry
}

// NewStakeLogger creates a new stake logger.
func NewStakeLogger(baseLogger *logrus.Logger) *StakeLogger {
	return &StakeLogger{
		Entry: baseLogger.WithField("component", "staking"),
	}
}

// LogRecommendation logs a sized stake. An empty side means no bet.
func (sl *StakeLogger) LogRecommendation(gamePK int64, pHome, pAway float64, homeOdds, awayOdds, side string, homeEV, awayEV, stake, roiPercent float64) {
	entry := sl.WithFields(logrus.Fields{
		"game_id":     gamePK,
		"p_home":      pHome,
		"p_away":      pAway,
		"home_odds":   homeOdds,
		"away_odds":   awayOdds,
		"home_ev":     homeEV,
		"away_ev":     awayEV,
		"side":        side,
		"stake":       stake,
		"roi_percent": roiPercent,
	})
	if side == "" {
		entry.Debug("No positive EV side")
		return
	}
	entry.Info("Stake recommended")
}

// LogRejectedOdds logs odds input that failed validation.
func (sl *StakeLogger) LogRejectedOdds(gamePK int64, input, reason string) {
	sl.WithFields(logrus.Fields{
		"game_id": gamePK,
		"input":   input,
		"reason":  reason,
	}).Warn("Odds rejected")
}
