package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// ReplayLogger provides dedicated logging for the season replay.
type ReplayLogger struct {
	*logrus.Entry
}

// NewReplayLogger creates a new replay logger.
func NewReplayLogger(baseLogger *logrus.Logger) *ReplayLogger {
	return &ReplayLogger{
		Entry: baseLogger.WithField("component", "replay"),
	}
}

// LogSeasonStart logs the start of a season replay.
func (rl *ReplayLogger) LogSeasonStart(runID string, season, games int, current bool) {
	rl.WithFields(logrus.Fields{
		"run_id":         runID,
		"season":         season,
		"games":          games,
		"current_season": current,
	}).Info("Season replay started")
}

// LogSeasonComplete logs a committed season.
func (rl *ReplayLogger) LogSeasonComplete(runID string, season, processed, emitted int, duration time.Duration) {
	rl.WithFields(logrus.Fields{
		"run_id":           runID,
		"season":           season,
		"games_processed":  processed,
		"features_emitted": emitted,
		"duration_ms":      duration.Milliseconds(),
	}).Info("Season replay completed")
}

// LogFeatureEmitted logs one emitted feature record.
func (rl *ReplayLogger) LogFeatureEmitted(season int, gamePK int64, featureCount int) {
	rl.WithFields(logrus.Fields{
		"season":        season,
		"game_id":       gamePK,
		"feature_count": featureCount,
	}).Debug("Feature record emitted")
}

// LogGameSkipped logs a game folded into state without a feature record.
func (rl *ReplayLogger) LogGameSkipped(season int, gamePK int64, reason string) {
	rl.WithFields(logrus.Fields{
		"season":  season,
		"game_id": gamePK,
		"reason":  reason,
	}).Debug("Game skipped for features")
}

// LogCacheDecision logs where a box score came from and whether it was persisted.
func (rl *ReplayLogger) LogCacheDecision(gamePK int64, source string, stored bool) {
	rl.WithFields(logrus.Fields{
		"game_id": gamePK,
		"source":  source,
		"stored":  stored,
	}).Debug("Box score resolved")
}

// LogSeasonFailure logs a rolled-back season.
func (rl *ReplayLogger) LogSeasonFailure(runID string, season int, lastGamePK int64, err error) {
	rl.WithFields(logrus.Fields{
		"run_id":       runID,
		"season":       season,
		"last_game_id": lastGamePK,
	}).WithError(err).Error("Season replay failed, transaction rolled back")
}
