package prefs

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// RedisKV stores values as plain redis strings under an optional prefix.
type RedisKV struct {
	c      *redis.Client
	prefix string
}

// NewRedisKV wraps an existing client.
func NewRedisKV(c *redis.Client, prefix string) *RedisKV {
	return &RedisKV{c: c, prefix: prefix}
}

// DialRedis connects to addr and verifies the connection with PING.
func DialRedis(ctx context.Context, addr, prefix string) (*RedisKV, error) {
	if addr == "" {
		return nil, ErrRedisAddrMissing
	}

	c := redis.NewClient(&redis.Options{Addr: addr})

	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}

	return NewRedisKV(c, prefix), nil
}

// Get implements KV.
func (r *RedisKV) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.c.Get(ctx, r.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}

	if err != nil {
		return "", false, fmt.Errorf("redis get %q: %w", r.prefix+key, err)
	}

	return v, true, nil
}

// Set implements KV. Values never expire.
func (r *RedisKV) Set(ctx context.Context, key, value string) error {
	if err := r.c.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", r.prefix+key, err)
	}

	return nil
}

// Close closes the client.
func (r *RedisKV) Close() error { return r.c.Close() }
