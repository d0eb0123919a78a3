package credentials

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/zatekoja/dentaldesk/internal/domain/providers"
)

// FileStore keeps the access token in a file readable only by the user.
// A missing file means no token.
type FileStore struct {
	path string
}

// NewFileStore creates a token store at path
func NewFileStore(path string) providers.TokenStore {
	return &FileStore{path: path}
}

// Token reads the stored token
func (s *FileStore) Token(ctx context.Context) (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read token file %s: %w", s.path, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// SetToken writes token, creating the parent directory if needed
func (s *FileStore) SetToken(ctx context.Context, token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(strings.TrimSpace(token)+"\n"), 0o600); err != nil {
		return fmt.Errorf("failed to write token file %s: %w", s.path, err)
	}
	return nil
}

// Clear removes the token file
func (s *FileStore) Clear(ctx context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove token file %s: %w", s.path, err)
	}
	return nil
}
