package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	domain "user-service/internal/domain/user"
)

// setupTestCache creates a cache backed by a miniredis instance
func setupTestCache(t *testing.T) (*RedisUserCache, *redis.Client, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
	})
	return NewRedisUserCache(client, 5*time.Minute, zaptest.NewLogger(t)), client, mr
}

func mustSet(t *testing.T, cache *RedisUserCache, user *domain.User) {
	t.Helper()
	ctx := context.Background()
	version, err := cache.Version(ctx, user.ID)
	require.NoError(t, err)
	stored, err := cache.Set(ctx, user, version)
	require.NoError(t, err)
	require.True(t, stored)
}

func TestRedisUserCache_SetAndGet(t *testing.T) {
	cache, client, mr := setupTestCache(t)
	ctx := context.Background()

	user := &domain.User{ID: 1, Username: "John Doe", Email: "1@1.com"}
	mustSet(t, cache, user)

	data, err := client.Get(ctx, "user:1").Bytes()
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "John Doe", raw["username"])

	assert.Equal(t, 5*time.Minute, mr.TTL("user:1"))

	got, err := cache.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, user, got)
}

func TestRedisUserCache_Set_NilUser(t *testing.T) {
	cache, _, _ := setupTestCache(t)

	stored, err := cache.Set(context.Background(), nil, 0)
	assert.Error(t, err)
	assert.False(t, stored)
	assert.Contains(t, err.Error(), "cannot cache nil user")
}

func TestRedisUserCache_Get_Miss(t *testing.T) {
	cache, _, _ := setupTestCache(t)

	got, err := cache.Get(context.Background(), 99)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisUserCache_Get_Expired(t *testing.T) {
	cache, _, mr := setupTestCache(t)
	ctx := context.Background()

	mustSet(t, cache, &domain.User{ID: 1, Username: "John Doe", Email: "1@1.com"})
	mr.FastForward(6 * time.Minute)

	got, err := cache.Get(ctx, 1)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisUserCache_Get_CorruptValue(t *testing.T) {
	cache, _, mr := setupTestCache(t)

	require.NoError(t, mr.Set("user:1", "not-json"))

	got, err := cache.Get(context.Background(), 1)
	assert.Error(t, err)
	assert.Nil(t, got)
}

func TestRedisUserCache_Delete(t *testing.T) {
	cache, _, mr := setupTestCache(t)
	ctx := context.Background()

	mustSet(t, cache, &domain.User{ID: 1, Username: "a", Email: "a@a.com"})
	mustSet(t, cache, &domain.User{ID: 2, Username: "b", Email: "b@b.com"})
	mustSet(t, cache, &domain.User{ID: 3, Username: "c", Email: "c@c.com"})

	require.NoError(t, cache.Delete(ctx, 1))
	assert.False(t, mr.Exists("user:1"))

	require.NoError(t, cache.DeleteMultiple(ctx, 2, 3))
	assert.False(t, mr.Exists("user:2"))
	assert.False(t, mr.Exists("user:3"))

	assert.NoError(t, cache.DeleteMultiple(ctx))
}

func TestRedisUserCache_RedisDown(t *testing.T) {
	cache, _, mr := setupTestCache(t)
	mr.Close()

	_, err := cache.Get(context.Background(), 1)
	assert.Error(t, err)
}

func TestRedisUserCache_SetSkippedAfterInvalidation(t *testing.T) {
	cache, _, mr := setupTestCache(t)
	ctx := context.Background()

	version, err := cache.Version(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), version)

	require.NoError(t, cache.Delete(ctx, 1))

	next, err := cache.Version(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), next)
	assert.Equal(t, versionTTL, mr.TTL("user:version:1"))

	stored, err := cache.Set(ctx, &domain.User{ID: 1, Username: "John Doe", Email: "1@1.com"}, version)
	require.NoError(t, err)
	assert.False(t, stored)
	assert.False(t, mr.Exists("user:1"))

	stored, err = cache.Set(ctx, &domain.User{ID: 1, Username: "Jane", Email: "1@1.com"}, next)
	require.NoError(t, err)
	assert.True(t, stored)

	got, err := cache.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Jane", got.Username)
}
