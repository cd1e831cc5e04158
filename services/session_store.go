package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// SessionStore holds the access/refresh token pair for the signed-in console
// user and persists it to a local file so a console restart does not force a
// re-login. All access goes through the store; writes are synchronous.
type SessionStore struct {
	mu      sync.Mutex
	path    string
	access  string
	refresh string
}

type persistedSession struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// NewSessionStore creates a store backed by the given file, loading any
// previously persisted session.
func NewSessionStore(path string) (*SessionStore, error) {
	s := &SessionStore{path: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var saved persistedSession
	if err := json.Unmarshal(data, &saved); err != nil {
		// A corrupt session file is treated as no session.
		return s, nil
	}
	s.access = saved.Access
	s.refresh = saved.Refresh
	return s, nil
}

// Tokens returns the current access and refresh tokens.
func (s *SessionStore) Tokens() (access, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.access, s.refresh
}

// HasSession reports whether any credential is currently stored.
func (s *SessionStore) HasSession() bool {
	access, refresh := s.Tokens()
	return access != "" || refresh != ""
}

// SetTokens stores a full token pair, as issued at login.
func (s *SessionStore) SetTokens(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = access
	s.refresh = refresh
	return s.persistLocked()
}

// SetAccess replaces only the access token, as issued by the refresh flow.
func (s *SessionStore) SetAccess(access string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = access
	return s.persistLocked()
}

// Clear drops both credentials. Called on logout and on irrecoverable
// refresh failure.
func (s *SessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = ""
	s.refresh = ""
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

func (s *SessionStore) persistLocked() error {
	data, err := json.Marshal(persistedSession{Access: s.access, Refresh: s.refresh})
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	tmp := s.path + ".tmp"
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create session dir: %w", err)
		}
	}
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace session file: %w", err)
	}
	return nil
}
