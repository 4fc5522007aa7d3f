// Package ratelimit counts login attempts per client in fixed windows.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter decides whether another attempt under key is allowed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	// Reset forgets previous attempts, e.g. after a successful login.
	Reset(ctx context.Context, key string) error
	Close() error
}

const keyPrefix = "diary:login:"

// RedisLimiter is a fixed-window counter: INCR on every attempt, and the
// first attempt in a window sets the expiry.
type RedisLimiter struct {
	client      *redis.Client
	maxRequests int
	window      time.Duration
}

func NewRedisLimiter(client *redis.Client, maxRequests int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, maxRequests: maxRequests, window: window}
}

// NewFromURL connects to the Redis server at url and checks it answers.
func NewFromURL(ctx context.Context, url string, maxRequests int, window time.Duration) (*RedisLimiter, error) {
	if maxRequests <= 0 {
		return nil, fmt.Errorf("login attempts must be positive, got %d", maxRequests)
	}
	if window <= 0 {
		return nil, fmt.Errorf("login window must be positive, got %s", window)
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return NewRedisLimiter(client, maxRequests, window), nil
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := keyPrefix + key

	count, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return false, fmt.Errorf("redis error: %w", err)
	}
	if count == 1 {
		if err := l.client.Expire(ctx, k, l.window).Err(); err != nil {
			return false, fmt.Errorf("redis error: %w", err)
		}
	}

	return count <= int64(l.maxRequests), nil
}

func (l *RedisLimiter) Reset(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("redis error: %w", err)
	}
	return nil
}

func (l *RedisLimiter) Close() error {
	return l.client.Close()
}

// Noop allows everything. Used when no Redis URL is configured.
type Noop struct{}

func (Noop) Allow(context.Context, string) (bool, error) { return true, nil }
func (Noop) Reset(context.Context, string) error         { return nil }
func (Noop) Close() error                                { return nil }
