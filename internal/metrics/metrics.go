// Package metrics provides the centralized Prometheus registry for the feature pipeline.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mlb_edge"

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	GamesProcessedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "games_processed_total",
		Help:      "Total number of games folded into the accumulators",
	})
	FeaturesEmittedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "features_emitted_total",
		Help:      "Total number of feature records written",
	})
	GamesSkippedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "games_skipped_total",
		Help:      "Games that produced no feature record, by reason",
	}, []string{"reason"})
	BoxScoreLookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "boxscore_lookups_total",
		Help:      "Box score lookups by source (memory, store, api)",
	}, []string{"source"})
	BoxScoreStoresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "boxscore_stores_total",
		Help:      "Box score store decisions by outcome (stored, deferred)",
	}, []string{"outcome"})
	APIRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_requests_total",
		Help:      "MLB Stats API requests by endpoint and status",
	}, []string{"endpoint", "status"})
	CircuitBreakerTripsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "circuit_breaker_trips_total",
		Help:      "Total number of HTTP circuit breaker trips",
	})
)

// Gauge metrics
var (
	LastProcessedGame = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_processed_game_id",
		Help:      "Id of the last game folded into the accumulators per season",
	}, []string{"season"})
)

// Histogram metrics
var (
	APIRequestLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "api_request_latency_seconds",
		Help:      "Latency of MLB Stats API requests in seconds",
		Buckets:   prometheus.DefBuckets,
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(GamesProcessedTotal)
		registry.MustRegister(FeaturesEmittedTotal)
		registry.MustRegister(GamesSkippedTotal)
		registry.MustRegister(BoxScoreLookupsTotal)
		registry.MustRegister(BoxScoreStoresTotal)
		registry.MustRegister(APIRequestsTotal)
		registry.MustRegister(CircuitBreakerTripsTotal)

		registry.MustRegister(LastProcessedGame)

		registry.MustRegister(APIRequestLatency)

		// replay metrics
		registry.MustRegister(ReplayRunsTotal)
		registry.MustRegister(ReplayDuration)

		// staking metrics
		registry.MustRegister(StakeRecommendationsTotal)
		registry.MustRegister(StakeROIPercent)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler. It also gathers the default
// registry, where the model client's promauto metrics live.
func Handler() http.Handler {
	return promhttp.HandlerFor(prometheus.Gatherers{GetRegistry(), prometheus.DefaultGatherer}, promhttp.HandlerOpts{})
}

// RecordGameProcessed records one game folded into the accumulators.
func RecordGameProcessed() {
	GamesProcessedTotal.Inc()
}

// RecordFeatureEmitted records one feature record written.
func RecordFeatureEmitted() {
	FeaturesEmittedTotal.Inc()
}

// RecordGameSkipped records a game that emitted no features.
// reason should be one of: "tie", "insufficient_history"
func RecordGameSkipped(reason string) {
	GamesSkippedTotal.WithLabelValues(reason).Inc()
}

// RecordBoxScoreLookup records where a box score came from.
func RecordBoxScoreLookup(source string) {
	BoxScoreLookupsTotal.WithLabelValues(source).Inc()
}

// RecordBoxScoreStore records whether a fetched box score was persisted.
func RecordBoxScoreStore(outcome string) {
	BoxScoreStoresTotal.WithLabelValues(outcome).Inc()
}

// RecordAPIRequest records an MLB Stats API request.
func RecordAPIRequest(endpoint, status string, durationSeconds float64) {
	APIRequestsTotal.WithLabelValues(endpoint, status).Inc()
	APIRequestLatency.Observe(durationSeconds)
}

// RecordCircuitBreakerTrip records a circuit breaker trip event.
func RecordCircuitBreakerTrip() {
	CircuitBreakerTripsTotal.Inc()
}

// UpdateLastProcessedGame sets the last processed game for a season.
func UpdateLastProcessedGame(season string, gamePK int64) {
	LastProcessedGame.WithLabelValues(season).Set(float64(gamePK))
}
