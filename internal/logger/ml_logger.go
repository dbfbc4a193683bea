// Package logger provides ML-specific logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// MLLogger provides dedicated logging for model predictions.
type MLLogger struct {
	*logrus.Entry
}

// NewMLLogger creates a new ML logger.
func NewMLLogger(baseLogger *logrus.Logger) *MLLogger {
	return &MLLogger{
		Entry: baseLogger.WithField("component", "ml"),
	}
}

// LogPredictionRequest logs a model prediction request.
func (ml *MLLogger) LogPredictionRequest(gamePK int64, method string, featuresCount int, cacheHit bool, latencyMs float64) {
	ml.WithFields(logrus.Fields{
		"game_id":        gamePK,
		"feature_method": method,
		"features_count": featuresCount,
		"cache_hit":      cacheHit,
		"latency_ms":     latencyMs,
	}).Info("Model prediction request completed")
}

// LogPrediction logs the probabilities returned for a game.
func (ml *MLLogger) LogPrediction(gamePK int64, pHome, pAway float64, doubleHeader bool) {
	ml.WithFields(logrus.Fields{
		"game_id":       gamePK,
		"p_home":        pHome,
		"p_away":        pAway,
		"double_header": doubleHeader,
	}).Info("Game prediction produced")
}

// LogPredictionError logs model prediction errors.
func (ml *MLLogger) LogPredictionError(gamePK int64, errorReason string) {
	ml.WithFields(logrus.Fields{
		"game_id":      gamePK,
		"error_reason": errorReason,
	}).Error("Model prediction failed")
}
