// Package client provides the API client and the persisted session used by
// frontends of the Inkwell API.
package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"inkwell/internal/models"
)

// Session is the client-held authentication state: the bearer token and the
// user it was issued to. It is mutated only by login, signup, and logout.
type Session struct {
	Token string       `json:"token"`
	User  *models.User `json:"user,omitempty"`
}

// LoggedIn reports whether the session holds a token.
func (s *Session) LoggedIn() bool {
	return s != nil && s.Token != ""
}

// SessionStore persists a Session as a JSON file. Every mutation is written
// through immediately; logout removes the file.
type SessionStore struct {
	path string
}

// NewSessionStore creates a store at the given file path.
func NewSessionStore(path string) *SessionStore {
	return &SessionStore{path: path}
}

// Load reads the persisted session. A missing file yields an empty session.
func (st *SessionStore) Load() (*Session, error) {
	data, err := os.ReadFile(st.path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Session{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}

// Save writes the session to disk, creating parent directories as needed.
func (st *SessionStore) Save(session *Session) error {
	if err := os.MkdirAll(filepath.Dir(st.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.WriteFile(st.path, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Clear removes the persisted session. Clearing an absent session is not an
// error.
func (st *SessionStore) Clear() error {
	err := os.Remove(st.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
