package ml

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/mlb-edge/internal/config"
	"github.com/yourusername/mlb-edge/internal/features"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPModelClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	client, err := NewHTTPModelClient(&config.ModelConfig{
		Endpoint:      srv.URL + "/",
		Timeout:       2 * time.Second,
		CacheTTL:      time.Minute,
		FeatureMethod: "diff",
	}, log)
	require.NoError(t, err)
	return client
}

func TestHTTPModelClientPredict(t *testing.T) {
	var got PredictRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/predict", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(PredictResponse{PHome: 0.62, PAway: 0.38})
	})

	inputs := features.Vector{Names: []string{"season_avg_era_diff"}, Values: []float64{-0.4}}
	pred, err := client.Predict(context.Background(), 745001, inputs)
	require.NoError(t, err)

	assert.Equal(t, int64(745001), got.GamePK)
	assert.Equal(t, "diff", got.Method)
	assert.Equal(t, inputs.Names, got.Names)
	assert.Equal(t, inputs.Values, got.Features)
	assert.Equal(t, 0.62, pred.PHome)
	assert.Equal(t, 0.38, pred.PAway)
}

func TestHTTPModelClientErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    error
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "model not loaded", http.StatusServiceUnavailable)
			},
			want: ErrModelUnavailable,
		},
		{
			name: "garbage body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("not json"))
			},
			want: ErrInvalidResponse,
		},
		{
			name: "probabilities do not sum to one",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_ = json.NewEncoder(w).Encode(PredictResponse{PHome: 0.7, PAway: 0.7})
			},
			want: ErrInvalidPrediction,
		},
		{
			name: "probability out of range",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_ = json.NewEncoder(w).Encode(PredictResponse{PHome: 1.2, PAway: -0.2})
			},
			want: ErrInvalidPrediction,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.handler)
			_, err := client.Predict(context.Background(), 1, features.Vector{})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestHTTPModelClientHealthCheck(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})
	assert.NoError(t, client.HealthCheck(context.Background()))
}

func TestNewHTTPModelClientRejectsUnknownMethod(t *testing.T) {
	_, err := NewHTTPModelClient(&config.ModelConfig{Endpoint: "http://localhost", FeatureMethod: "ratio"}, nil)
	assert.Error(t, err)
}
