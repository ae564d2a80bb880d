// Package ratelimiter implements a Redis-backed token bucket shared by all
// server replicas.
package ratelimiter

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// KeyPrefix namespaces limiter state in Redis.
const KeyPrefix = "cvfb:ratelimit:"

// Limiter decides whether subject may spend cost tokens from bucket.
type Limiter interface {
	Allow(ctx context.Context, bucket, subject string, cost int64) (allowed bool, retryAfter time.Duration, err error)
}

// BucketConfig describes one token bucket.
type BucketConfig struct {
	Capacity   int64
	RefillRate float64 // tokens per second
}

func (c BucketConfig) enabled() bool { return c.Capacity > 0 && c.RefillRate > 0 }

// NewBucketConfigFromPerMinute builds a bucket that refills perMinute tokens
// every minute with a burst of perMinute.
func NewBucketConfigFromPerMinute(perMinute int) BucketConfig {
	if perMinute <= 0 {
		return BucketConfig{}
	}
	return BucketConfig{
		Capacity:   int64(perMinute),
		RefillRate: float64(perMinute) / 60.0,
	}
}

// Decision is the outcome of one bucket evaluation.
type Decision struct {
	Allowed    bool
	Remaining  float64
	RetryAfter time.Duration
}

// TokenBucket evaluates buckets atomically inside Redis. Buckets are fixed at
// construction. Unknown or disabled buckets always allow.
type TokenBucket struct {
	rdb     redis.Scripter
	buckets map[string]BucketConfig
	script  *redis.Script
	clock   func() time.Time
}

// NewTokenBucket returns nil when rdb is nil; a nil *TokenBucket allows
// everything.
func NewTokenBucket(rdb redis.Scripter, buckets map[string]BucketConfig) *TokenBucket {
	if rdb == nil {
		return nil
	}
	cfg := make(map[string]BucketConfig, len(buckets))
	for name, b := range buckets {
		cfg[name] = b
	}
	return &TokenBucket{
		rdb:     rdb,
		buckets: cfg,
		script:  redis.NewScript(tokenBucketLua),
		clock:   time.Now,
	}
}

// Lua numbers are truncated to integers on the way out, so fractional
// values travel as strings.
const tokenBucketLua = `
local capacity = tonumber(ARGV[1])
local rate = tonumber(ARGV[2])
local now = tonumber(ARGV[3])
local cost = tonumber(ARGV[4])

local state = redis.call("HMGET", KEYS[1], "tokens", "ts")
local tokens = tonumber(state[1]) or capacity
local ts = tonumber(state[2]) or now

tokens = math.min(capacity, tokens + math.max(0, now - ts) * rate)

local allowed = 0
local wait = 0
if tokens >= cost then
  tokens = tokens - cost
  allowed = 1
else
  wait = (cost - tokens) / rate
end

redis.call("HSET", KEYS[1], "tokens", tostring(tokens), "ts", tostring(now))
redis.call("EXPIRE", KEYS[1], math.ceil(capacity / rate) + 1)

return { allowed, tostring(tokens), tostring(wait) }
`

// Key returns the Redis key holding subject's state in bucket.
func Key(bucket, subject string) string {
	return KeyPrefix + bucket + ":" + subject
}

// Allow implements Limiter.
func (b *TokenBucket) Allow(ctx context.Context, bucket, subject string, cost int64) (bool, time.Duration, error) {
	d, err := b.Take(ctx, bucket, subject, cost)
	return d.Allowed, d.RetryAfter, err
}

// Take spends cost tokens (at least one) and reports the full decision. On a
// Redis failure the decision allows the request and the error is returned for
// logging.
func (b *TokenBucket) Take(ctx context.Context, bucket, subject string, cost int64) (Decision, error) {
	open := Decision{Allowed: true}
	if b == nil {
		return open, nil
	}
	cfg, ok := b.buckets[bucket]
	if !ok || !cfg.enabled() {
		return open, nil
	}
	if cost < 1 {
		cost = 1
	}

	now := float64(b.clock().UnixMicro()) / 1e6
	vals, err := b.script.Run(ctx, b.rdb, []string{Key(bucket, subject)}, cfg.Capacity, cfg.RefillRate, now, cost).Slice()
	if err != nil {
		return open, fmt.Errorf("op=ratelimiter.Take bucket=%s: %w", bucket, err)
	}
	d, err := parseDecision(vals)
	if err != nil {
		slog.Warn("rate limiter returned malformed result", slog.String("bucket", bucket), slog.Any("error", err))
		return open, nil
	}
	return d, nil
}

func parseDecision(vals []interface{}) (Decision, error) {
	if len(vals) != 3 {
		return Decision{}, fmt.Errorf("want 3 values, got %d", len(vals))
	}
	flag, ok := vals[0].(int64)
	if !ok {
		return Decision{}, fmt.Errorf("allowed flag has type %T", vals[0])
	}
	remaining, err := parseLuaFloat(vals[1])
	if err != nil {
		return Decision{}, err
	}
	wait, err := parseLuaFloat(vals[2])
	if err != nil {
		return Decision{}, err
	}
	if wait < 0 {
		wait = 0
	}
	return Decision{
		Allowed:    flag == 1,
		Remaining:  remaining,
		RetryAfter: time.Duration(wait * float64(time.Second)),
	}, nil
}

func parseLuaFloat(v interface{}) (float64, error) {
	s, ok := v.(string)
	if !ok {
		return 0, fmt.Errorf("expected string, got %T", v)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", s, err)
	}
	return f, nil
}
