package ml

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/mlb-edge/internal/config"
	"github.com/yourusername/mlb-edge/internal/features"
	"github.com/yourusername/mlb-edge/internal/logger"
)

// HTTPModelClient calls the model server's predict endpoint
type HTTPModelClient struct {
	client   *http.Client
	endpoint string
	method   features.Method
	logger   *logger.MLLogger
}

// NewHTTPModelClient creates a new HTTP client for the model server
func NewHTTPModelClient(cfg *config.ModelConfig, log *logrus.Logger) (*HTTPModelClient, error) {
	method, err := features.ParseMethod(cfg.FeatureMethod)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logrus.New()
	}
	return &HTTPModelClient{
		client:   &http.Client{Timeout: cfg.Timeout},
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		method:   method,
		logger:   logger.NewMLLogger(log),
	}, nil
}

// Method returns the feature method the model was trained on
func (c *HTTPModelClient) Method() features.Method {
	return c.method
}

// PredictRequest is the predict payload
type PredictRequest struct {
	GamePK   int64     `json:"game_id"`
	Method   string    `json:"feature_method"`
	Names    []string  `json:"feature_names"`
	Features []float64 `json:"features"`
}

// PredictResponse is the model server's answer
type PredictResponse struct {
	PHome float64 `json:"p_home"`
	PAway float64 `json:"p_away"`
}

// Predict posts a feature vector and returns the win probabilities
func (c *HTTPModelClient) Predict(ctx context.Context, gamePK int64, inputs features.Vector) (*Prediction, error) {
	start := time.Now()

	body, err := json.Marshal(PredictRequest{
		GamePK:   gamePK,
		Method:   string(c.method),
		Names:    inputs.Names,
		Features: inputs.Values,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/predict", bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		PredictionErrorsTotal.WithLabelValues("network").Inc()
		c.logger.LogPredictionError(gamePK, err.Error())
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		PredictionErrorsTotal.WithLabelValues("http_error").Inc()
		c.logger.LogPredictionError(gamePK, fmt.Sprintf("status %d", resp.StatusCode))
		return nil, fmt.Errorf("%w: status %d: %s", ErrModelUnavailable, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out PredictResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		PredictionErrorsTotal.WithLabelValues("decode").Inc()
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	pred := &Prediction{
		GamePK:      gamePK,
		PHome:       out.PHome,
		PAway:       out.PAway,
		Method:      string(c.method),
		PredictedAt: time.Now().UTC(),
	}
	if err := pred.Validate(); err != nil {
		PredictionErrorsTotal.WithLabelValues("invalid").Inc()
		c.logger.LogPredictionError(gamePK, err.Error())
		return nil, err
	}

	latency := time.Since(start)
	PredictionLatency.WithLabelValues(string(c.method)).Observe(latency.Seconds())
	PredictionsTotal.WithLabelValues(string(c.method), "false").Inc()
	c.logger.LogPredictionRequest(gamePK, string(c.method), len(inputs.Values), false, float64(latency.Milliseconds()))
	return pred, nil
}

// HealthCheck checks model server health
func (c *HTTPModelClient) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/health", nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrModelUnavailable, resp.StatusCode)
	}
	return nil
}
