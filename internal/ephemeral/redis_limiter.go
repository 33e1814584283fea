// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package ephemeral

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/traveltrek/models"
	"github.com/redis/go-redis/v9"
)

const rateLimitKeyPrefix = "ratelimit"

// fixedWindowScript implements a fixed window counter at KEYS[1].
// ARGV[1] is the limit, ARGV[2] the window length in milliseconds.
// It returns {allowed, count, pttl}. A denied call does not increment.
var fixedWindowScript = redis.NewScript(`
local limit = tonumber(ARGV[1])
local current = tonumber(redis.call('GET', KEYS[1]) or '0')
if current >= limit then
	return {0, current, redis.call('PTTL', KEYS[1])}
end
current = redis.call('INCR', KEYS[1])
if current == 1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[2])
end
return {1, current, redis.call('PTTL', KEYS[1])}
`)

// RedisRateLimiter is a fixed-window [RateLimiter] shared by all replicas.
type RedisRateLimiter struct {
	client redis.UniversalClient
	name   string
	limit  int
	period time.Duration
	now    func() time.Time
}

// NewRedisRateLimiter returns a limiter whose keys are namespaced by name,
// so several limiters can share one Redis database.
func NewRedisRateLimiter(client redis.UniversalClient, name string, limit int, period time.Duration) (*RedisRateLimiter, error) {
	if limit < 1 || period <= 0 {
		return nil, ErrInvalidLimitArg
	}
	return &RedisRateLimiter{
		client: client,
		name:   name,
		limit:  limit,
		period: period,
		now:    time.Now,
	}, nil
}

func (l *RedisRateLimiter) Check(ctx context.Context, owner string) (models.RateLimitResult, error) {
	key := fmt.Sprintf("%s:%s:%s", rateLimitKeyPrefix, l.name, owner)

	res, err := fixedWindowScript.Run(ctx, l.client, []string{key}, l.limit, l.period.Milliseconds()).Int64Slice()
	if err != nil {
		return models.RateLimitResult{}, fmt.Errorf("%w: %w", ErrCheckingLimit, err)
	}
	if len(res) != 3 {
		return models.RateLimitResult{}, fmt.Errorf("%w: unexpected script reply %v", ErrCheckingLimit, res)
	}

	allowed, count, pttl := res[0] == 1, int(res[1]), res[2]
	if pttl < 0 {
		pttl = l.period.Milliseconds()
	}

	remaining := l.limit - count
	if !allowed || remaining < 0 {
		remaining = 0
	}

	return models.RateLimitResult{
		Allowed:   allowed,
		Remaining: remaining,
		ResetAt:   l.now().Add(time.Duration(pttl) * time.Millisecond),
	}, nil
}

// Sweep is a no-op: window keys carry their own TTL.
func (l *RedisRateLimiter) Sweep(context.Context) (int, error) {
	return 0, nil
}
