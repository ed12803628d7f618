package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	domain "library-service/internal/domain/user"
)

const userKeyPrefix = "library:user:"

// UserCache stores users by id for the cached user repository.
type UserCache interface {
	// Get returns the cached user, or nil on a miss.
	Get(ctx context.Context, id int64) (*domain.User, error)
	Set(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int64) error
}

// RedisUserCache implements UserCache as one JSON value per user with a TTL.
type RedisUserCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// NewRedisUserCache creates a new Redis-backed user cache.
func NewRedisUserCache(client *redis.Client, ttl time.Duration, log *zap.Logger) *RedisUserCache {
	return &RedisUserCache{client: client, ttl: ttl, log: log}
}

func userKey(id int64) string {
	return userKeyPrefix + strconv.FormatInt(id, 10)
}

func (c *RedisUserCache) Get(ctx context.Context, id int64) (*domain.User, error) {
	u, err := getJSON[domain.User](ctx, c.client, userKey(id))
	if err != nil {
		c.log.Error("user cache read failed", zap.Int64("user_id", id), zap.Error(err))
		return nil, err
	}
	if u == nil {
		c.log.Debug("user cache miss", zap.Int64("user_id", id))
	}
	return u, nil
}

func (c *RedisUserCache) Set(ctx context.Context, user *domain.User) error {
	if user == nil {
		return errors.New("cannot cache nil user")
	}
	if err := setJSON(ctx, c.client, userKey(user.ID), user, c.ttl); err != nil {
		c.log.Error("user cache write failed", zap.Int64("user_id", user.ID), zap.Error(err))
		return err
	}
	return nil
}

func (c *RedisUserCache) Delete(ctx context.Context, id int64) error {
	if err := deleteKey(ctx, c.client, userKey(id)); err != nil {
		c.log.Error("user cache delete failed", zap.Int64("user_id", id), zap.Error(err))
		return err
	}
	return nil
}
