package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/homevest/api/internal/models"
	"github.com/redis/go-redis/v9"
)

// redisCache is a Redis-backed AnalysisCache. Entries are stored as JSON
// under a namespaced key with a fixed TTL.
type redisCache struct {
	client *redis.Client
	ttl    time.Duration
}

const cacheKeyPrefix = "analysis:"

// NewRedisCache creates an AnalysisCache over the given Redis client.
func NewRedisCache(client *redis.Client, ttl time.Duration) AnalysisCache {
	return &redisCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *redisCache) Get(ctx context.Context, key string) (*models.AnalysisResult, error) {
	payload, err := c.client.Get(ctx, cacheKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cached analysis %s: %w", key, err)
	}

	var result models.AnalysisResult
	if err := json.Unmarshal(payload, &result); err != nil {
		// A corrupt entry is treated as a miss; it will be overwritten.
		return nil, nil
	}
	return &result, nil
}

func (c *redisCache) Set(ctx context.Context, key string, result *models.AnalysisResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode analysis for cache: %w", err)
	}

	if err := c.client.Set(ctx, cacheKeyPrefix+key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache analysis %s: %w", key, err)
	}
	return nil
}
