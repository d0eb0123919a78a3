// Package cache provides Redis-backed shared state for the fake backend.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/zatekoja/dentaldesk/internal/domain/providers"
	redisclient "github.com/zatekoja/dentaldesk/internal/infrastructure/clients/redis"
)

// RedisAdapter is a CacheProvider whose keys all live under one prefix, so
// several processes can share counters without colliding with other data.
type RedisAdapter struct {
	client *redisclient.Client
	prefix string
}

func NewRedisAdapter(client *redisclient.Client, prefix string) providers.CacheProvider {
	return &RedisAdapter{client: client, prefix: prefix}
}

func (a *RedisAdapter) key(k string) string {
	return a.prefix + k
}

// Get returns providers.ErrCacheMiss for absent or expired keys
func (a *RedisAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := a.client.Client().Get(ctx, a.key(key)).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return nil, providers.ErrCacheMiss
	case err != nil:
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return b, nil
}

// Set stores value; a zero ttl keeps it until deleted
func (a *RedisAdapter) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := a.client.Client().Set(ctx, a.key(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (a *RedisAdapter) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, 0, len(keys))
	for _, k := range keys {
		full = append(full, a.key(k))
	}
	if err := a.client.Client().Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("redis del %v: %w", keys, err)
	}
	return nil
}
