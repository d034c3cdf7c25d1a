// Package cache provides an optional Redis-backed cache for aggregation
// results, so repeated identical /jobs queries do not re-hit every upstream
// source. Cache failures are soft: a miss is returned and the request
// proceeds to the sources.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/abhigl/jobscout/internal/model"
)

// ResultCache caches posting lists by request key.
type ResultCache interface {
	Get(ctx context.Context, key string) ([]model.JobPosting, bool)
	Set(ctx context.Context, key string, postings []model.JobPosting)
}

// Key builds a cache key from the request parameters that shape a result.
func Key(parts ...string) string {
	return "jobscout:jobs:" + strings.Join(parts, "|")
}

// RedisCache stores JSON-encoded posting lists in Redis with a TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisCache creates a cache against the given Redis address.
func NewRedisCache(addr, password string, db int, ttl time.Duration, logger *slog.Logger) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisCache{client: client, ttl: ttl, logger: logger}
}

// Get returns the cached posting list for key, or a miss.
func (c *RedisCache) Get(ctx context.Context, key string) ([]model.JobPosting, bool) {
	val, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("cache get failed", "key", key, "error", err)
		return nil, false
	}
	var postings []model.JobPosting
	if err := json.Unmarshal(val, &postings); err != nil {
		c.logger.Warn("cache decode failed", "key", key, "error", err)
		return nil, false
	}
	return postings, true
}

// Set stores the posting list for key with the configured TTL.
func (c *RedisCache) Set(ctx context.Context, key string, postings []model.JobPosting) {
	val, err := json.Marshal(postings)
	if err != nil {
		c.logger.Warn("cache encode failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, val, c.ttl).Err(); err != nil {
		c.logger.Warn("cache set failed", "key", key, "error", err)
	}
}

// Close closes the underlying Redis client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// NopCache is used when Redis is not configured.
type NopCache struct{}

func NewNopCache() *NopCache { return &NopCache{} }

func (NopCache) Get(context.Context, string) ([]model.JobPosting, bool) { return nil, false }
func (NopCache) Set(context.Context, string, []model.JobPosting)        {}
