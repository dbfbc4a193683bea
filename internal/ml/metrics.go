// Package ml provides Prometheus metrics for model predictions.
package ml

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PredictionsTotal tracks model predictions served
	PredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mlb_edge_model_predictions_total",
			Help: "Total number of model predictions served",
		},
		[]string{"feature_method", "cache_hit"},
	)

	// PredictionLatency tracks model server latency
	PredictionLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mlb_edge_model_prediction_latency_seconds",
			Help:    "Model server prediction latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"feature_method"},
	)

	// PredictionCacheHitRatio tracks the prediction cache hit ratio
	PredictionCacheHitRatio = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mlb_edge_model_cache_hit_ratio",
			Help: "Model prediction cache hit ratio",
		},
	)

	// PredictionErrorsTotal tracks failed predictions
	PredictionErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mlb_edge_model_prediction_errors_total",
			Help: "Total number of failed model predictions",
		},
		[]string{"error_type"},
	)
)
