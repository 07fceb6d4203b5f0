// Package session persists the authenticated user's credential and profile
// between runs. The state file is the only thing the client stores locally;
// transactions live on the server.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ledgerline/ledgerline/internal/model"
)

// Session is the authenticated actor: bearer token plus profile. It is
// created on login or register, refreshed on profile changes, and destroyed
// on logout or when the server answers 401.
type Session struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// Store reads and writes the session state file.
type Store struct {
	path string
}

// NewStore locates the session file under XDG_DATA_HOME (or
// ~/.local/share), creating the directory if needed.
func NewStore() (*Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		dataDir = filepath.Join(home, ".local", "share")
	}

	dir := filepath.Join(dataDir, "ledgerline")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	return &Store{path: filepath.Join(dir, "session.json")}, nil
}

// NewStoreAt returns a store backed by an explicit file path.
func NewStoreAt(path string) *Store {
	return &Store{path: path}
}

// Load returns the persisted session, or nil when none exists.
func (s *Store) Load() (*Session, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session state: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("failed to parse session state: %w", err)
	}
	if sess.Token == "" {
		return nil, nil
	}

	return &sess, nil
}

// Save writes the session state, readable by the owner only.
func (s *Store) Save(sess *Session) error {
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session state: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session state: %w", err)
	}

	return nil
}

// Clear removes the session state file. Clearing an absent session is not
// an error.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session state: %w", err)
	}
	return nil
}
