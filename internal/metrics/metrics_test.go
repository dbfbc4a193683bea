package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRegistry(t *testing.T) {
	InitRegistry()
	registry := GetRegistry()

	assert.NotNil(t, registry)
	assert.IsType(t, &prometheus.Registry{}, registry)
	assert.Same(t, registry, InitRegistry())
}

func TestRecordGameProcessed(t *testing.T) {
	InitRegistry()
	before := testutil.ToFloat64(GamesProcessedTotal)

	RecordGameProcessed()
	RecordGameProcessed()

	assert.Equal(t, before+2, testutil.ToFloat64(GamesProcessedTotal))
}

func TestRecordGameSkipped(t *testing.T) {
	InitRegistry()

	tests := []struct {
		name   string
		reason string
	}{
		{name: "tie game", reason: "tie"},
		{name: "short history", reason: "insufficient_history"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(GamesSkippedTotal.WithLabelValues(tt.reason))
			RecordGameSkipped(tt.reason)
			assert.Equal(t, before+1, testutil.ToFloat64(GamesSkippedTotal.WithLabelValues(tt.reason)))
		})
	}
}

func TestBoxScoreMetrics(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordBoxScoreLookup("memory")
		RecordBoxScoreLookup("store")
		RecordBoxScoreLookup("api")
		RecordBoxScoreStore("stored")
		RecordBoxScoreStore("deferred")
		RecordAPIRequest("boxscore", "200", 0.12)
		RecordCircuitBreakerTrip()
	})
}

func TestUpdateLastProcessedGame(t *testing.T) {
	InitRegistry()

	UpdateLastProcessedGame("2024", 745123)
	assert.Equal(t, float64(745123), testutil.ToFloat64(LastProcessedGame.WithLabelValues("2024")))
}

func TestStakeMetrics(t *testing.T) {
	InitRegistry()
	before := testutil.ToFloat64(StakeRecommendationsTotal.WithLabelValues("none"))

	RecordStakeRecommendation("none", 0)
	RecordStakeRecommendation("home", 40.95)

	assert.Equal(t, before+1, testutil.ToFloat64(StakeRecommendationsTotal.WithLabelValues("none")))
}

func TestReplayMetrics(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordReplayRun("2023", "success", 42)
		RecordReplayRun("2023", "failure", 3)
	})
}

func TestMetricsHandler(t *testing.T) {
	InitRegistry()
	RecordFeatureEmitted()

	handler := Handler()
	require.NotNil(t, handler)
	assert.Implements(t, (*http.Handler)(nil), handler)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "mlb_edge_features_emitted_total"))
}

func BenchmarkRecordGameProcessed(b *testing.B) {
	InitRegistry()

	for i := 0; i < b.N; i++ {
		RecordGameProcessed()
	}
}
