package credentials

import (
	"context"
	"strings"

	"github.com/zatekoja/dentaldesk/internal/domain/providers"
)

// StaticProvider always returns the same token
type StaticProvider struct {
	token string
}

// NewStaticProvider creates a provider for a fixed token; an empty token sends requests unauthenticated
func NewStaticProvider(token string) providers.TokenProvider {
	return &StaticProvider{token: strings.TrimSpace(token)}
}

// Token returns the configured token
func (p *StaticProvider) Token(ctx context.Context) (string, error) {
	return p.token, nil
}
