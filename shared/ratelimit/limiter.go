// Package ratelimit provides fixed-window attempt counters.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/gomodule/redigo/redis"
)

// Limiter counts attempts per key within a window.
type Limiter interface {
	// Allow records an attempt for key and reports whether it is within the limit.
	Allow(ctx context.Context, key string) (bool, error)

	// Reset forgets all attempts recorded for key.
	Reset(ctx context.Context, key string) error
}

// Noop is a Limiter that allows everything.
type Noop struct{}

func (Noop) Allow(context.Context, string) (bool, error) { return true, nil }

func (Noop) Reset(context.Context, string) error { return nil }

// allowScript increments the counter and starts its window when the key has no TTL.
// A key left without a TTL by an earlier failure gets one on the next attempt.
var allowScript = redis.NewScript(1, `
local count = redis.call("INCR", KEYS[1])
if redis.call("PTTL", KEYS[1]) < 0 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// RedisLimiter implements a fixed window counter. INCR and PEXPIRE run in one script.
type RedisLimiter struct {
	pool   *redis.Pool
	prefix string
	limit  int
	window time.Duration
}

// NewPool creates a redigo connection pool for addr.
func NewPool(addr, password string, db int) *redis.Pool {
	return &redis.Pool{
		MaxIdle:     10,
		IdleTimeout: 240 * time.Second,
		DialContext: func(ctx context.Context) (redis.Conn, error) {
			return redis.DialContext(ctx, "tcp", addr,
				redis.DialPassword(password),
				redis.DialDatabase(db),
				redis.DialConnectTimeout(5*time.Second),
			)
		},
		TestOnBorrow: func(c redis.Conn, t time.Time) error {
			if time.Since(t) < time.Minute {
				return nil
			}
			_, err := c.Do("PING")
			return err
		},
	}
}

// NewRedisLimiter allows limit attempts per key in every window.
func NewRedisLimiter(pool *redis.Pool, prefix string, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		pool:   pool,
		prefix: prefix,
		limit:  limit,
		window: window,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	conn, err := l.pool.GetContext(ctx)
	if err != nil {
		return false, fmt.Errorf("redis connection: %w", err)
	}
	defer conn.Close()

	count, err := redis.Int(allowScript.Do(conn, l.key(key), l.window.Milliseconds()))
	if err != nil {
		return false, fmt.Errorf("redis allow: %w", err)
	}

	return count <= l.limit, nil
}

func (l *RedisLimiter) Reset(ctx context.Context, key string) error {
	conn, err := l.pool.GetContext(ctx)
	if err != nil {
		return fmt.Errorf("redis connection: %w", err)
	}
	defer conn.Close()

	_, err = conn.Do("DEL", l.key(key))
	return err
}

func (l *RedisLimiter) key(key string) string {
	return l.prefix + ":" + key
}
