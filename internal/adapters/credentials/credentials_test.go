package credentials

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/dentaldesk/internal/infrastructure/observability"
	"github.com/zatekoja/dentaldesk/pkg/config"
)

func signedToken(t *testing.T, subject string, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    "dental-api",
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(expiresAt.Add(-time.Hour)),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestStaticProvider(t *testing.T) {
	token, err := NewStaticProvider("  abc  ").Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	token, err = NewStaticProvider("").Token(context.Background())
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "token")
	store := NewFileStore(path)

	token, err := store.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token, "missing file means no token")

	require.NoError(t, store.SetToken(ctx, "secret-token"))
	token, err = store.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "secret-token", token)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.Clear(ctx), "clearing twice is fine")
	token, err = store.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestInspectToken(t *testing.T) {
	exp := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	info, err := InspectToken(signedToken(t, "receptionist-1", exp))
	require.NoError(t, err)

	assert.Equal(t, "receptionist-1", info.Subject)
	assert.Equal(t, "dental-api", info.Issuer)
	require.NotNil(t, info.ExpiresAt)
	assert.True(t, info.ExpiresAt.Equal(exp))
	assert.False(t, info.Expired(exp.Add(-time.Minute)))
	assert.True(t, info.Expired(exp.Add(time.Minute)))

	_, err = InspectToken("opaque-token")
	assert.Error(t, err)
}

func TestExpiryWarningProvider(t *testing.T) {
	var buf bytes.Buffer
	observability.InitLoggerWithWriter(&buf, "test", "production", "info")

	now := time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC)
	expired := signedToken(t, "receptionist-1", now.Add(-time.Hour))

	provider := NewExpiryWarningProvider(NewStaticProvider(expired), func() time.Time { return now })
	token, err := provider.Token(context.Background())

	require.NoError(t, err)
	assert.Equal(t, expired, token, "expired tokens are still sent")
	assert.Contains(t, buf.String(), "Access token has expired")

	buf.Reset()
	fresh := signedToken(t, "receptionist-1", now.Add(time.Hour))
	token, err = NewExpiryWarningProvider(NewStaticProvider(fresh), func() time.Time { return now }).Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fresh, token)
	assert.NotContains(t, buf.String(), "expired")

	token, err = NewExpiryWarningProvider(NewStaticProvider("opaque"), nil).Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "opaque", token)
}

func TestNewTokenStoreFromConfig(t *testing.T) {
	ctx := context.Background()

	t.Run("env", func(t *testing.T) {
		cfg := &config.Config{Auth: config.AuthConfig{Source: config.TokenSourceEnv, Token: "from-env"}}
		store, closeFn, err := NewTokenStoreFromConfig(ctx, cfg)
		require.NoError(t, err)
		defer closeFn()

		token, err := store.Token(ctx)
		require.NoError(t, err)
		assert.Equal(t, "from-env", token)
		assert.Error(t, store.SetToken(ctx, "x"))
		assert.Error(t, store.Clear(ctx))
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "token")
		cfg := &config.Config{Auth: config.AuthConfig{Source: config.TokenSourceFile, TokenFile: path}}
		store, closeFn, err := NewTokenStoreFromConfig(ctx, cfg)
		require.NoError(t, err)
		defer closeFn()

		require.NoError(t, store.SetToken(ctx, "from-file"))
		token, err := store.Token(ctx)
		require.NoError(t, err)
		assert.Equal(t, "from-file", token)
	})

	t.Run("unknown", func(t *testing.T) {
		cfg := &config.Config{Auth: config.AuthConfig{Source: "keychain"}}
		_, _, err := NewTokenStoreFromConfig(ctx, cfg)
		assert.Error(t, err)
	})
}
