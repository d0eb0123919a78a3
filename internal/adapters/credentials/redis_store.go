package credentials

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/zatekoja/dentaldesk/internal/domain/providers"
	redisclient "github.com/zatekoja/dentaldesk/internal/infrastructure/clients/redis"
)

// RedisStore keeps the access token under a single Redis key, so several
// front-end processes can share one session.
type RedisStore struct {
	client *redisclient.Client
	key    string
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed token store. ttl of 0 keeps the token until cleared.
func NewRedisStore(client *redisclient.Client, key string, ttl time.Duration) providers.TokenStore {
	return &RedisStore{
		client: client,
		key:    key,
		ttl:    ttl,
	}
}

// Token returns the stored token, or "" when the key is absent
func (s *RedisStore) Token(ctx context.Context) (string, error) {
	token, err := s.client.Client().Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get token from redis: %w", err)
	}
	return token, nil
}

// SetToken stores token
func (s *RedisStore) SetToken(ctx context.Context, token string) error {
	if err := s.client.Client().Set(ctx, s.key, token, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set token in redis: %w", err)
	}
	return nil
}

// Clear deletes the token key
func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Client().Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("failed to delete token from redis: %w", err)
	}
	return nil
}
