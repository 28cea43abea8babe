// Package cache provides the Redis-backed cache adapter.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/foyerapp/foyer/internal/infrastructure/config"
	"github.com/foyerapp/foyer/internal/ports/outbound"
)

// ErrCacheMiss is returned when a key is absent
var ErrCacheMiss = fmt.Errorf("cache miss")

// RedisCache implements outbound.CacheRepository backed by Redis
type RedisCache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisClient creates a Redis client from configuration and verifies
// the connection
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.Database,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		PoolSize:     cfg.PoolSize,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// NewRedisCache creates a cache repository on top of an existing client
func NewRedisCache(client *redis.Client, logger *zap.Logger) outbound.CacheRepository {
	return &RedisCache{
		client: client,
		logger: logger.Named("redis-cache"),
	}
}

// Get retrieves a value. A missing key returns ErrCacheMiss.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get cache key %s: %w", key, err)
	}
	return value, nil
}

// Set stores a value with a TTL
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cache key %s: %w", key, err)
	}
	return nil
}

// Delete removes a key. Deleting a missing key is not an error.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete cache key %s: %w", key, err)
	}
	return nil
}
