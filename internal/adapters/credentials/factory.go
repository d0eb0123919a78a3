package credentials

import (
	"context"
	"fmt"
	"strings"

	"github.com/zatekoja/dentaldesk/internal/domain/providers"
	redisclient "github.com/zatekoja/dentaldesk/internal/infrastructure/clients/redis"
	"github.com/zatekoja/dentaldesk/pkg/config"
)

// NewTokenStoreFromConfig builds the token store selected by cfg.Auth.Source.
// The returned close func releases any connection opened for the store.
func NewTokenStoreFromConfig(ctx context.Context, cfg *config.Config) (providers.TokenStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Auth.Source {
	case config.TokenSourceEnv:
		return &envStore{StaticProvider: StaticProvider{token: strings.TrimSpace(cfg.Auth.Token)}}, noop, nil
	case config.TokenSourceFile:
		return NewFileStore(cfg.Auth.TokenFile), noop, nil
	case config.TokenSourceRedis:
		client, err := redisclient.NewClient(ctx, &cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return NewRedisStore(client, cfg.Auth.RedisKey, 0), client.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown token source %q", cfg.Auth.Source)
	}
}

// envStore exposes the token taken from DENTAL_ACCESS_TOKEN as a read-only store
type envStore struct {
	StaticProvider
}

func (s *envStore) SetToken(ctx context.Context, token string) error {
	return fmt.Errorf("token source %q is read-only; export DENTAL_ACCESS_TOKEN instead", config.TokenSourceEnv)
}

func (s *envStore) Clear(ctx context.Context) error {
	return fmt.Errorf("token source %q is read-only; unset DENTAL_ACCESS_TOKEN instead", config.TokenSourceEnv)
}
