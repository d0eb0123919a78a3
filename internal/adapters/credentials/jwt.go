package credentials

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/zatekoja/dentaldesk/internal/domain/providers"
	"github.com/zatekoja/dentaldesk/internal/infrastructure/observability"
)

// TokenInfo holds the unverified registered claims of an access token
type TokenInfo struct {
	Subject   string
	Issuer    string
	ExpiresAt *time.Time
	IssuedAt  *time.Time
}

// Expired reports whether the token carries an expiry before now
func (i *TokenInfo) Expired(now time.Time) bool {
	return i.ExpiresAt != nil && now.After(*i.ExpiresAt)
}

// InspectToken decodes the claims of a JWT without verifying its signature.
// The backend stays the only judge of validity.
func InspectToken(token string) (*TokenInfo, error) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil, fmt.Errorf("token is not a JWT: %w", err)
	}

	info := &TokenInfo{
		Subject: claims.Subject,
		Issuer:  claims.Issuer,
	}
	if claims.ExpiresAt != nil {
		exp := claims.ExpiresAt.Time
		info.ExpiresAt = &exp
	}
	if claims.IssuedAt != nil {
		iat := claims.IssuedAt.Time
		info.IssuedAt = &iat
	}
	return info, nil
}

// ExpiryWarningProvider logs when the wrapped provider hands out an expired
// JWT. The token is returned unchanged either way.
type ExpiryWarningProvider struct {
	next providers.TokenProvider
	now  func() time.Time
}

// NewExpiryWarningProvider wraps next
func NewExpiryWarningProvider(next providers.TokenProvider, now func() time.Time) providers.TokenProvider {
	if now == nil {
		now = time.Now
	}
	return &ExpiryWarningProvider{next: next, now: now}
}

// Token returns the wrapped provider's token
func (p *ExpiryWarningProvider) Token(ctx context.Context) (string, error) {
	token, err := p.next.Token(ctx)
	if err != nil || token == "" {
		return token, err
	}

	info, inspectErr := InspectToken(token)
	if inspectErr != nil {
		return token, nil
	}
	if info.Expired(p.now()) {
		observability.LoggerFromContext(ctx).Warn().
			Str("subject", info.Subject).
			Time("expired_at", *info.ExpiresAt).
			Msg("Access token has expired; the backend will likely reject it")
	}
	return token, nil
}
