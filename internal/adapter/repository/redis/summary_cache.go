package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/propstack/revenue-summary/internal/domain"
)

const scanBatchSize = 100

// SummaryCache implements domain.CacheStore on Redis. Every operation is
// bounded by a short timeout so that a slow or unreachable Redis degrades
// the caller to direct aggregation instead of stalling the request.
type SummaryCache struct {
	client    *redis.Client
	opTimeout time.Duration
	logger    *slog.Logger
}

// NewSummaryCache creates a new Redis-backed SummaryCache.
func NewSummaryCache(client *redis.Client, opTimeout time.Duration, logger *slog.Logger) *SummaryCache {
	return &SummaryCache{
		client:    client,
		opTimeout: opTimeout,
		logger:    logger.With("component", "redis_cache"),
	}
}

// Get returns the payload stored under key, or domain.ErrCacheMiss.
func (c *SummaryCache) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.opTimeout)
	defer cancel()

	payload, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis GET %s: %w", key, err)
	}
	return payload, nil
}

// SetWithTTL stores the payload under key with the given TTL.
func (c *SummaryCache) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, c.opTimeout)
	defer cancel()

	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis SET %s: %w", key, err)
	}
	return nil
}

// DeleteByPrefix removes every key under the prefix using SCAN + DEL and
// returns the number of keys removed. SCAN is used instead of KEYS so a
// large keyspace does not block the server.
func (c *SummaryCache) DeleteByPrefix(ctx context.Context, prefix string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.opTimeout)
	defer cancel()

	var keys []string
	iter := c.client.Scan(ctx, 0, prefix+"*", scanBatchSize).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("redis SCAN %s*: %w", prefix, err)
	}
	if len(keys) == 0 {
		return 0, nil
	}

	removed, err := c.client.Del(ctx, keys...).Result()
	if err != nil {
		return 0, fmt.Errorf("redis DEL: %w", err)
	}
	return int(removed), nil
}
