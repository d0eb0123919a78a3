package providers

import (
	"context"
)

// TokenProvider supplies the bearer token attached to backend requests.
// An empty token with a nil error means "send the request unauthenticated".
type TokenProvider interface {
	// Token returns the current access token
	Token(ctx context.Context) (string, error)
}

// TokenStore is a TokenProvider that can also be written, used by login/logout
type TokenStore interface {
	TokenProvider

	// SetToken replaces the stored token
	SetToken(ctx context.Context, token string) error

	// Clear removes the stored token
	Clear(ctx context.Context) error
}
