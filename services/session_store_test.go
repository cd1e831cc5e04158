package services

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSessionStorePersistsAcrossRestarts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	store, err := NewSessionStore(path)
	if err != nil {
		t.Fatalf("NewSessionStore: %v", err)
	}
	if store.HasSession() {
		t.Error("fresh store must not have a session")
	}

	if err := store.SetTokens("access-1", "refresh-1"); err != nil {
		t.Fatalf("SetTokens: %v", err)
	}

	// Simulate a console restart.
	reloaded, err := NewSessionStore(path)
	if err != nil {
		t.Fatalf("NewSessionStore reload: %v", err)
	}
	access, refresh := reloaded.Tokens()
	if access != "access-1" || refresh != "refresh-1" {
		t.Errorf("reloaded tokens = %q/%q, want access-1/refresh-1", access, refresh)
	}
}

func TestSessionStoreSetAccessKeepsRefresh(t *testing.T) {
	store, err := NewSessionStore(filepath.Join(t.TempDir(), "session.json"))
	if err != nil {
		t.Fatalf("NewSessionStore: %v", err)
	}

	store.SetTokens("access-1", "refresh-1")
	store.SetAccess("access-2")

	access, refresh := store.Tokens()
	if access != "access-2" {
		t.Errorf("access = %q, want access-2", access)
	}
	if refresh != "refresh-1" {
		t.Errorf("refresh = %q, want refresh-1 untouched", refresh)
	}
}

func TestSessionStoreClearRemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	store, err := NewSessionStore(path)
	if err != nil {
		t.Fatalf("NewSessionStore: %v", err)
	}
	store.SetTokens("access-1", "refresh-1")

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if store.HasSession() {
		t.Error("cleared store still reports a session")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("session file still exists after Clear")
	}

	// Clearing again must be a no-op, not an error.
	if err := store.Clear(); err != nil {
		t.Errorf("second Clear: %v", err)
	}
}

func TestSessionStoreToleratesCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	store, err := NewSessionStore(path)
	if err != nil {
		t.Fatalf("NewSessionStore: %v", err)
	}
	if store.HasSession() {
		t.Error("corrupt session file must be treated as no session")
	}
}
