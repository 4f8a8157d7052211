package auth

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const loginAttemptsPrefix = "auth:login_attempts:"

// LoginLimiter throttles password attempts per account.
type LoginLimiter interface {
	// Allow records an attempt and reports whether it may proceed.
	Allow(ctx context.Context, email string) (bool, error)
	// Reset clears the attempt counter after a successful login.
	Reset(ctx context.Context, email string) error
}

// RedisLoginLimiter is a fixed-window counter stored in Redis.
type RedisLoginLimiter struct {
	client      redis.Cmdable
	maxAttempts int64
	window      time.Duration
	logger      *zap.Logger
}

// NewRedisLoginLimiter builds a limiter. It returns nil when throttling is
// disabled by configuration or no client is available.
func NewRedisLoginLimiter(client redis.Cmdable, maxAttempts int, window time.Duration, logger *zap.Logger) *RedisLoginLimiter {
	if client == nil || maxAttempts <= 0 || window <= 0 {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisLoginLimiter{client: client, maxAttempts: int64(maxAttempts), window: window, logger: logger}
}

// Allow increments the window counter. Redis failures fail open.
func (l *RedisLoginLimiter) Allow(ctx context.Context, email string) (bool, error) {
	if l == nil {
		return true, nil
	}
	key := loginAttemptsKey(email)

	// The window starts with the first attempt; INCR keeps the TTL.
	pipe := l.client.TxPipeline()
	pipe.SetNX(ctx, key, 0, l.window)
	incr := pipe.Incr(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		l.logger.Warn("login limiter unavailable", zap.Error(err))
		return true, nil
	}
	return incr.Val() <= l.maxAttempts, nil
}

// Reset removes the counter for email.
func (l *RedisLoginLimiter) Reset(ctx context.Context, email string) error {
	if l == nil {
		return nil
	}
	if err := l.client.Del(ctx, loginAttemptsKey(email)).Err(); err != nil {
		l.logger.Warn("login limiter reset failed", zap.Error(err))
		return err
	}
	return nil
}

func loginAttemptsKey(email string) string {
	return loginAttemptsPrefix + strings.ToLower(strings.TrimSpace(email))
}
