package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	domain "library-service/internal/domain/book"
)

const bookStatsKey = "library:book:stats"

// BookStatsCache stores the per-category book counts.
type BookStatsCache interface {
	// Get returns the cached statistics, or nil on a miss. An empty,
	// non-nil slice is a hit.
	Get(ctx context.Context) ([]domain.Stat, error)
	Set(ctx context.Context, stats []domain.Stat) error
	Invalidate(ctx context.Context) error
}

// RedisBookStatsCache implements BookStatsCache using Redis.
type RedisBookStatsCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// NewRedisBookStatsCache creates a new Redis-backed statistics cache.
func NewRedisBookStatsCache(client *redis.Client, ttl time.Duration, log *zap.Logger) *RedisBookStatsCache {
	return &RedisBookStatsCache{client: client, ttl: ttl, log: log}
}

func (c *RedisBookStatsCache) Get(ctx context.Context) ([]domain.Stat, error) {
	stats, err := getJSON[[]domain.Stat](ctx, c.client, bookStatsKey)
	if err != nil {
		c.log.Error("book stats cache read failed", zap.Error(err))
		return nil, err
	}
	if stats == nil {
		c.log.Debug("book stats cache miss")
		return nil, nil
	}
	if *stats == nil {
		return []domain.Stat{}, nil
	}
	return *stats, nil
}

func (c *RedisBookStatsCache) Set(ctx context.Context, stats []domain.Stat) error {
	if stats == nil {
		stats = []domain.Stat{}
	}
	if err := setJSON(ctx, c.client, bookStatsKey, stats, c.ttl); err != nil {
		c.log.Error("book stats cache write failed", zap.Error(err))
		return err
	}
	return nil
}

func (c *RedisBookStatsCache) Invalidate(ctx context.Context) error {
	if err := deleteKey(ctx, c.client, bookStatsKey); err != nil {
		c.log.Error("book stats cache delete failed", zap.Error(err))
		return err
	}
	return nil
}
