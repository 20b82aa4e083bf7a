package di

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"user-service/internal/adapter/db/postgres"
	"user-service/internal/config"
	domain "user-service/internal/domain/user"
	redisclient "user-service/pkg/redis"
)

func testDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&postgres.UserSchema{}))
	return db
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Redis.CacheTTL = 60
	cfg.RateLimit.Enabled = true
	cfg.RateLimit.RequestsPerSecond = 10
	cfg.RateLimit.BurstCapacity = 20
	return cfg
}

func TestBuild_WithoutRedis(t *testing.T) {
	c := build(testConfig(), zaptest.NewLogger(t), testDB(t), nil)
	t.Cleanup(func() { assert.NoError(t, c.Close()) })

	assert.Nil(t, c.RedisClient)
	assert.Nil(t, c.RateLimiter)
	require.NotNil(t, c.GinHandler)

	ctx := context.Background()
	u, err := c.UserUC.Create(ctx, domain.CreateInput{Username: "John Doe", Email: "1@1.com"})
	require.NoError(t, err)

	got, err := c.UserUC.FindOne(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u, got)
}

func TestBuild_WithRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	log := zaptest.NewLogger(t)

	rdb, err := redisclient.NewClient(context.Background(), redisclient.Config{Host: mr.Host(), Port: mr.Port()}, log)
	require.NoError(t, err)

	c := build(testConfig(), log, testDB(t), rdb)
	t.Cleanup(func() { assert.NoError(t, c.Close()) })

	require.NotNil(t, c.RateLimiter)
	assert.Equal(t, 20, c.RateLimiter.Config().BurstCapacity)

	ctx := context.Background()
	u, err := c.UserUC.Create(ctx, domain.CreateInput{Username: "John Doe", Email: "1@1.com"})
	require.NoError(t, err)

	_, err = c.UserUC.FindOne(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, mr.Exists("user:1"))
}

func TestNewContainer_InvalidConfig(t *testing.T) {
	_, err := NewContainer(context.Background(), &config.Config{}, zaptest.NewLogger(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}
