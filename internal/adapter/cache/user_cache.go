package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	domain "user-service/internal/domain/user"
	"user-service/pkg/logger"
)

const (
	// DefaultKeyPrefix namespaces user entries in Redis.
	DefaultKeyPrefix = "user:"

	versionPrefix = "user:version:"
	versionTTL    = 24 * time.Hour
)

// setIfVersion stores ARGV[2] at KEYS[1] with a PX of ARGV[3] only while the
// invalidation counter at KEYS[2] still equals ARGV[1]. A missing counter is 0.
var setIfVersion = redis.NewScript(`
local current = redis.call('GET', KEYS[2]) or '0'
if current ~= ARGV[1] then
	return 0
end
redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
return 1
`)

// UserCache defines the interface for user caching operations.
type UserCache interface {
	// Get retrieves a user from cache by ID.
	// Returns nil if user is not found in cache.
	Get(ctx context.Context, id int64) (*domain.User, error)

	// Version returns the invalidation counter for an ID. Read it before
	// loading the user from storage and pass it to Set.
	Version(ctx context.Context, id int64) (int64, error)

	// Set stores a user in cache with the configured TTL unless the ID was
	// invalidated after version was read. It reports whether the user was stored.
	Set(ctx context.Context, user *domain.User, version int64) (bool, error)

	// Delete removes a user from cache by ID and bumps its version.
	Delete(ctx context.Context, id int64) error

	// DeleteMultiple removes multiple users from cache by IDs and bumps their versions.
	DeleteMultiple(ctx context.Context, ids ...int64) error
}

// RedisUserCache implements UserCache using Redis as the backing store.
type RedisUserCache struct {
	client redis.UniversalClient
	ttl    time.Duration
	prefix string
	log    *zap.Logger
}

// NewRedisUserCache creates a new Redis-backed user cache.
func NewRedisUserCache(client redis.UniversalClient, ttl time.Duration, log *zap.Logger) *RedisUserCache {
	return &RedisUserCache{
		client: client,
		ttl:    ttl,
		prefix: DefaultKeyPrefix,
		log:    log,
	}
}

// Key returns the Redis key holding the user with the given id.
func (c *RedisUserCache) Key(id int64) string {
	return c.prefix + strconv.FormatInt(id, 10)
}

func (c *RedisUserCache) versionKey(id int64) string {
	return versionPrefix + strconv.FormatInt(id, 10)
}

// Version reads the invalidation counter for id.
func (c *RedisUserCache) Version(ctx context.Context, id int64) (int64, error) {
	v, err := c.client.Get(ctx, c.versionKey(id)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		logger.WithContext(ctx, c.log).Error("failed to read cache version", zap.Int64("user_id", id), zap.Error(err))
		return 0, err
	}
	return v, nil
}

// Get retrieves a user from Redis cache.
func (c *RedisUserCache) Get(ctx context.Context, id int64) (*domain.User, error) {
	log := logger.WithContext(ctx, c.log)

	data, err := c.client.Get(ctx, c.Key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		log.Debug("cache miss", zap.Int64("user_id", id))
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get from cache", zap.Int64("user_id", id), zap.Error(err))
		return nil, err
	}

	var user domain.User
	if err := json.Unmarshal(data, &user); err != nil {
		log.Error("failed to unmarshal cached user", zap.Int64("user_id", id), zap.Error(err))
		return nil, err
	}

	log.Debug("cache hit", zap.Int64("user_id", id))
	return &user, nil
}

// Set stores a user in Redis cache with TTL if its version is unchanged.
func (c *RedisUserCache) Set(ctx context.Context, user *domain.User, version int64) (bool, error) {
	if user == nil {
		return false, fmt.Errorf("cannot cache nil user")
	}
	log := logger.WithContext(ctx, c.log)

	data, err := json.Marshal(user)
	if err != nil {
		log.Error("failed to marshal user for cache", zap.Int64("user_id", user.ID), zap.Error(err))
		return false, err
	}

	stored, err := setIfVersion.Run(ctx, c.client,
		[]string{c.Key(user.ID), c.versionKey(user.ID)},
		strconv.FormatInt(version, 10), data, c.ttl.Milliseconds(),
	).Int()
	if err != nil {
		log.Error("failed to set cache", zap.Int64("user_id", user.ID), zap.Error(err))
		return false, err
	}
	if stored == 0 {
		log.Debug("skipped caching user invalidated during load", zap.Int64("user_id", user.ID))
		return false, nil
	}

	log.Debug("cached user", zap.Int64("user_id", user.ID), zap.Duration("ttl", c.ttl))
	return true, nil
}

// Delete removes a user from Redis cache.
func (c *RedisUserCache) Delete(ctx context.Context, id int64) error {
	return c.DeleteMultiple(ctx, id)
}

// DeleteMultiple removes multiple users from Redis cache.
func (c *RedisUserCache) DeleteMultiple(ctx context.Context, ids ...int64) error {
	if len(ids) == 0 {
		return nil
	}
	log := logger.WithContext(ctx, c.log)

	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range ids {
			pipe.Del(ctx, c.Key(id))
			pipe.Incr(ctx, c.versionKey(id))
			pipe.Expire(ctx, c.versionKey(id), versionTTL)
		}
		return nil
	})
	if err != nil {
		log.Error("failed to delete from cache", zap.Int("count", len(ids)), zap.Error(err))
		return err
	}

	log.Debug("deleted from cache", zap.Int64s("user_ids", ids))
	return nil
}
