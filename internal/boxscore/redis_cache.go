package boxscore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/mlb-edge/internal/models"
)

const redisKeyPrefix = "mlb_edge:boxscore:"

// RedisCache shares normalized box scores between replay workers
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *logrus.Entry
}

// NewRedisCache connects to redis and verifies the connection
func NewRedisCache(ctx context.Context, redisURL string, ttl time.Duration, logger *logrus.Logger) (*RedisCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return NewRedisCacheFromClient(client, ttl, logger), nil
}

// NewRedisCacheFromClient wraps an existing client
func NewRedisCacheFromClient(client *redis.Client, ttl time.Duration, logger *logrus.Logger) *RedisCache {
	if logger == nil {
		logger = logrus.New()
	}
	return &RedisCache{
		client: client,
		ttl:    ttl,
		logger: logger.WithField("component", "boxscore_redis"),
	}
}

func redisKey(gamePK int64) string {
	return fmt.Sprintf("%s%d", redisKeyPrefix, gamePK)
}

// Get returns a cached record. Redis errors are logged and reported as a miss.
func (r *RedisCache) Get(ctx context.Context, gamePK int64) (*models.BoxScoreRecord, bool) {
	data, err := r.client.Get(ctx, redisKey(gamePK)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.WithError(err).WithField("game_id", gamePK).Warn("Redis get failed")
		}
		return nil, false
	}
	var rec models.BoxScoreRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		r.logger.WithError(err).WithField("game_id", gamePK).Warn("Discarding undecodable cached box score")
		return nil, false
	}
	return &rec, true
}

// Set writes the record with the configured ttl
func (r *RedisCache) Set(ctx context.Context, rec *models.BoxScoreRecord) {
	data, err := json.Marshal(rec)
	if err != nil {
		r.logger.WithError(err).WithField("game_id", rec.GamePK).Warn("Failed to encode box score")
		return
	}
	if err := r.client.Set(ctx, redisKey(rec.GamePK), data, r.ttl).Err(); err != nil {
		r.logger.WithError(err).WithField("game_id", rec.GamePK).Warn("Redis set failed")
	}
}

// HealthCheck pings redis
func (r *RedisCache) HealthCheck(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the redis connection
func (r *RedisCache) Close() error {
	return r.client.Close()
}
