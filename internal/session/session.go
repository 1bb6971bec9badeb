// =============================================================================
// Weighing Report - Session
// =============================================================================
//
// Store holds the bearer token used against the upstream weighing service.
// The rest of the program only asks one question of it: Valid().
//
// TOKEN SOURCES (first non-empty wins):
//   1. explicit token (config / --token / LAPORAN_SESSION_TOKEN)
//   2. token file (session.token_file)
//
// Clear() forgets the token and removes the token file, mirroring a logout
// after the upstream rejects it.
//
// =============================================================================

package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/natefinch/atomic"
)

// Store is safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	token string
	file  string
}

// New creates a store from an explicit token and an optional token file.
func New(token, tokenFile string) (*Store, error) {
	s := &Store{token: strings.TrimSpace(token), file: tokenFile}
	if s.token != "" || tokenFile == "" {
		return s, nil
	}

	data, err := os.ReadFile(tokenFile)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("failed to read token file %s: %w", tokenFile, err)
	}
	s.token = strings.TrimSpace(string(data))
	return s, nil
}

// Valid reports whether a session token is present.
func (s *Store) Valid() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// Token returns the current token, or "" when there is none.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Save replaces the token and persists it to the token file, if one is set.
func (s *Store) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = strings.TrimSpace(token)
	if s.file == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.file), 0o700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}
	if err := atomic.WriteFile(s.file, strings.NewReader(s.token+"\n")); err != nil {
		return fmt.Errorf("failed to write token file %s: %w", s.file, err)
	}
	return os.Chmod(s.file, 0o600)
}

// Clear forgets the token and removes the token file.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	if s.file == "" {
		return nil
	}
	if err := os.Remove(s.file); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove token file %s: %w", s.file, err)
	}
	return nil
}
