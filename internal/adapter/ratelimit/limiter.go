package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Config holds configuration for the token bucket.
type Config struct {
	RequestsPerSecond float64 // Refill rate
	BurstCapacity     int     // Bucket size
	Enabled           bool
}

// tokenBucket refills at ARGV[1] tokens per second up to ARGV[2] and takes one token.
// State lives in a hash {last_refill, tokens} that expires after a minute of inactivity.
var tokenBucket = redis.NewScript(`
local key = KEYS[1]
local rate = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local now = tonumber(ARGV[3])

local bucket = redis.call('HMGET', key, 'last_refill', 'tokens')
local last_refill = tonumber(bucket[1]) or now
local tokens = tonumber(bucket[2]) or capacity

local elapsed = math.max(0, now - last_refill)
tokens = math.min(capacity, tokens + elapsed * rate)

local allowed = 0
if tokens >= 1 then
	tokens = tokens - 1
	allowed = 1
end

redis.call('HSET', key, 'last_refill', tostring(now), 'tokens', tostring(tokens))
redis.call('EXPIRE', key, 60)
return allowed
`)

// Limiter is a Redis-backed token bucket shared by the HTTP and gRPC transports.
type Limiter struct {
	client redis.Scripter
	config Config
	log    *zap.Logger
	now    func() time.Time
}

// New creates a new Limiter.
func New(client redis.Scripter, config Config, log *zap.Logger) *Limiter {
	return &Limiter{
		client: client,
		config: config,
		log:    log,
		now:    time.Now,
	}
}

// Config returns the limiter configuration.
func (l *Limiter) Config() Config {
	return l.config
}

// Allow takes one token from the bucket identified by key.
// A nil or disabled limiter always allows. Redis errors are returned with allowed=true.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	if l == nil || !l.config.Enabled || l.client == nil {
		return true, nil
	}

	now := float64(l.now().UnixNano()) / float64(time.Second)
	allowed, err := tokenBucket.Run(ctx, l.client, []string{"ratelimit:tb:" + key},
		l.config.RequestsPerSecond,
		l.config.BurstCapacity,
		now,
	).Int64()
	if err != nil {
		l.log.Warn("rate limiter redis error, allowing request", zap.String("key", key), zap.Error(err))
		return true, err
	}

	if allowed == 0 {
		l.log.Warn("rate limit exceeded", zap.String("key", key),
			zap.Float64("rps", l.config.RequestsPerSecond), zap.Int("burst", l.config.BurstCapacity))
		return false, nil
	}
	return true, nil
}

// Message describes the limit for a rejected request.
func (l *Limiter) Message() string {
	return fmt.Sprintf("rate limit exceeded: %.2f requests/second (burst capacity: %d)",
		l.config.RequestsPerSecond, l.config.BurstCapacity)
}
