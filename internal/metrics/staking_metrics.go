// Package metrics defines stake sizing metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	StakeRecommendationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stake_recommendations_total",
		Help:      "Stake recommendations by chosen side (home, away, none)",
	}, []string{"side"})

	StakeROIPercent = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "stake_expected_roi_percent",
		Help:      "Expected ROI percent of recommended bets",
		Buckets:   []float64{0, 5, 10, 20, 30, 40, 50, 65, 80, 100},
	})
)

// RecordStakeRecommendation records one calculator result.
func RecordStakeRecommendation(side string, roiPercent float64) {
	StakeRecommendationsTotal.WithLabelValues(side).Inc()
	if side != "none" {
		StakeROIPercent.Observe(roiPercent)
	}
}
