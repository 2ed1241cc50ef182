package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	rateLimitKeyPrefix = "ratelimit:apikey:"
	// Bucket state lives twice as long as a full refill window so idle keys
	// age out on their own.
	rateLimitStateTTL = 120 * time.Second
)

// RateLimitResult reports the outcome of a token bucket check.
type RateLimitResult struct {
	Allowed    bool
	Remaining  int64
	ResetAt    time.Time
	RetryAfter time.Duration
}

// tokenBucket refills a per-key bucket by elapsed time and takes one token,
// atomically. Replies with {allowed, retry_after_seconds, tokens_left}.
var tokenBucket = redis.NewScript(`
	local bucket = KEYS[1]
	local refill_per_sec = tonumber(ARGV[1])
	local capacity = tonumber(ARGV[2])
	local now = tonumber(ARGV[3])
	local ttl = tonumber(ARGV[4])

	local state = redis.call('HMGET', bucket, 'tokens', 'last_update')
	local tokens = tonumber(state[1]) or capacity
	local last_update = tonumber(state[2]) or now

	tokens = math.min(capacity, tokens + (now - last_update) * refill_per_sec)

	local allowed = 0
	local retry_after = 0
	if tokens >= 1 then
		tokens = tokens - 1
		allowed = 1
	else
		retry_after = math.ceil((1 - tokens) / refill_per_sec)
	end

	redis.call('HMSET', bucket, 'tokens', tokens, 'last_update', now)
	redis.call('EXPIRE', bucket, ttl)

	return {allowed, retry_after, math.floor(tokens)}
`)

// CheckAPIRateLimit runs the token bucket for one API key. A ratePerMinute of
// zero means the unlimited tier. Redis failures fail open: the request is
// allowed rather than blocking all traffic on a cache outage.
func (c *Cache) CheckAPIRateLimit(ctx context.Context, keyID string, ratePerMinute, burst int) (*RateLimitResult, error) {
	if ratePerMinute == 0 {
		return unlimitedResult(burst), nil
	}

	refillPerSecond := float64(ratePerMinute) / 60.0
	reply, err := tokenBucket.Run(ctx, c.client,
		[]string{rateLimitKeyPrefix + keyID},
		refillPerSecond, burst, time.Now().Unix(), int(rateLimitStateTTL.Seconds()),
	).Int64Slice()
	if err != nil {
		return unlimitedResult(burst), nil
	}

	return &RateLimitResult{
		Allowed:    reply[0] == 1,
		RetryAfter: time.Duration(reply[1]) * time.Second,
		Remaining:  reply[2],
		ResetAt:    time.Now().Add(time.Duration(float64(time.Second) / refillPerSecond)),
	}, nil
}

func unlimitedResult(burst int) *RateLimitResult {
	return &RateLimitResult{
		Allowed:   true,
		Remaining: int64(burst),
		ResetAt:   time.Now().Add(time.Minute),
	}
}
