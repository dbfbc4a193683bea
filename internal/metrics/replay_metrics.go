// Package metrics defines replay-specific metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Replay counter vectors
var (
	ReplayRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "replay_runs_total",
		Help:      "Total number of season replays by status",
	}, []string{"status"})
)

// Replay histograms
var (
	ReplayDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "replay_duration_seconds",
		Help:      "Duration of season replays in seconds",
		Buckets:   []float64{1, 5, 10, 30, 60, 300, 600, 1800},
	}, []string{"season"})
)

// RecordReplayRun records a finished season replay.
// status should be one of: "success", "failure"
func RecordReplayRun(season, status string, durationSeconds float64) {
	ReplayRunsTotal.WithLabelValues(status).Inc()
	ReplayDuration.WithLabelValues(season).Observe(durationSeconds)
}
