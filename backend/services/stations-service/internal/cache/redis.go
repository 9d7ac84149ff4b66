package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"voltfinder/backend/services/stations-service/internal/models"
)

// RedisCache shares discovery results across service instances. Redis
// enforces the TTL; any Redis failure is logged and treated as a miss so the
// directory fetch path stays available.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisCache returns a redis-backed cache.
func NewRedisCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisCache {
	return &RedisCache{client: client, ttl: ttl, logger: logger}
}

// Get returns the cached stations for the key.
func (c *RedisCache) Get(ctx context.Context, key string) ([]models.ChargingStation, bool) {
	raw, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("station cache read failed", zap.Error(err), zap.String("key", key))
		}
		return nil, false
	}

	var stations []models.ChargingStation
	if err := json.Unmarshal([]byte(raw), &stations); err != nil {
		c.logger.Warn("station cache entry corrupt", zap.Error(err), zap.String("key", key))
		return nil, false
	}
	return stations, true
}

// Set stores the stations under the key with the configured TTL.
func (c *RedisCache) Set(ctx context.Context, key string, stations []models.ChargingStation) {
	data, err := json.Marshal(stations)
	if err != nil {
		c.logger.Warn("station cache encode failed", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("station cache write failed", zap.Error(err), zap.String("key", key))
	}
}
