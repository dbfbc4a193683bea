// Package ml provides cached model client implementation.
package ml

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/mlb-edge/internal/features"
	"github.com/yourusername/mlb-edge/internal/logger"
)

// CachedModelClient memoises predictions per game and feature method
type CachedModelClient struct {
	client Predictor
	method features.Method
	cache  *PredictionCache
	logger *logger.MLLogger
}

// NewCachedModelClient wraps a predictor with a go-cache backed memo
func NewCachedModelClient(client Predictor, method features.Method, ttl time.Duration, log *logrus.Logger) *CachedModelClient {
	if log == nil {
		log = logrus.New()
	}
	return &CachedModelClient{
		client: client,
		method: method,
		cache:  NewPredictionCache(ttl),
		logger: logger.NewMLLogger(log),
	}
}

// Predict returns a cached prediction or asks the wrapped client
func (c *CachedModelClient) Predict(ctx context.Context, gamePK int64, inputs features.Vector) (*Prediction, error) {
	key := CacheKey{GamePK: gamePK, Method: string(c.method)}

	if cached := c.cache.Get(key); cached != nil {
		PredictionsTotal.WithLabelValues(string(c.method), "true").Inc()
		c.logger.LogPredictionRequest(gamePK, string(c.method), len(inputs.Values), true, 0)
		return cached, nil
	}

	c.logger.WithField("cache_key", key.String()).Debug("Cache miss, asking model server")
	pred, err := c.client.Predict(ctx, gamePK, inputs)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, pred)
	return pred, nil
}

// Invalidate drops a game's cached prediction
func (c *CachedModelClient) Invalidate(gamePK int64) {
	c.cache.Invalidate(gamePK)
}

// GetCacheStats returns cache statistics
func (c *CachedModelClient) GetCacheStats() (hits, misses uint64, hitRatio float64) {
	return c.cache.Stats()
}
