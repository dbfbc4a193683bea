// Package logger builds the logrus loggers used across mlb-edge and the
// component wrappers that give replay and staking events a fixed field set.
package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger returns a logger for the given level and app environment. Logs go
// to stderr so command output on stdout stays machine readable. Production
// gets JSON lines; every other environment gets timestamped text.
func NewLogger(logLevel, environment string) *logrus.Logger {
	return newLogger(os.Stderr, logLevel, environment)
}

func newLogger(out io.Writer, logLevel, environment string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)

	if environment == "production" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		log.WithField("log_level", logLevel).Warn("Unknown log level, using info")
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}
