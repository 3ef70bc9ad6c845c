// Package store persists the session credentials on disk: access and
// refresh tokens, the serialized user, and the transient OAuth state for
// the single pending login attempt.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/csesa/portal-client/internal/model"
)

// OAuthState is the single-use record for a pending login attempt. It is
// written before the provider redirect and deleted when the callback is
// processed.
type OAuthState struct {
	Nonce       string `json:"nonce"`
	ReturnPath  string `json:"return_path"`
	RedirectURI string `json:"redirect_uri"`
}

type record struct {
	AccessToken  string          `json:"access_token,omitempty"`
	RefreshToken string          `json:"refresh_token,omitempty"`
	User         json.RawMessage `json:"user,omitempty"`
	OAuthState   *OAuthState     `json:"oauth_state,omitempty"`
}

// Store keeps the credential record in a single JSON file. Writes go
// through a temp file and rename so a crash cannot leave a half-written
// record.
type Store struct {
	mu   sync.Mutex
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

// SaveTokens overwrites both tokens. They are only ever written together,
// on a successful login or code exchange.
func (s *Store) SaveTokens(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.load()
	if err != nil {
		return err
	}
	rec.AccessToken = access
	rec.RefreshToken = refresh
	return s.write(rec)
}

// SetAccessToken replaces the access token only, after a refresh exchange.
func (s *Store) SetAccessToken(access string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.load()
	if err != nil {
		return err
	}
	rec.AccessToken = access
	return s.write(rec)
}

func (s *Store) SaveUser(u model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.load()
	if err != nil {
		return err
	}
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("serialize user: %w", err)
	}
	rec.User = data
	return s.write(rec)
}

// User returns the stored user record. A missing or malformed record is
// reported as absent, not as an error.
func (s *Store) User() (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.load()
	if err != nil || len(rec.User) == 0 {
		return model.User{}, false
	}
	var u model.User
	if err := json.Unmarshal(rec.User, &u); err != nil {
		return model.User{}, false
	}
	return u, true
}

func (s *Store) AccessToken() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.load()
	if err != nil || rec.AccessToken == "" {
		return "", false
	}
	return rec.AccessToken, true
}

func (s *Store) RefreshToken() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.load()
	if err != nil || rec.RefreshToken == "" {
		return "", false
	}
	return rec.RefreshToken, true
}

// HasAccessToken is an existence check only; it says nothing about token
// freshness.
func (s *Store) HasAccessToken() bool {
	_, ok := s.AccessToken()
	return ok
}

// Clear removes tokens and the user record. Safe to call when nothing is
// stored. A pending OAuth state record survives; it is single-use and
// consumed by the callback path on its own.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.load()
	if err != nil {
		return err
	}
	if rec.AccessToken == "" && rec.RefreshToken == "" && len(rec.User) == 0 {
		return nil
	}
	rec.AccessToken = ""
	rec.RefreshToken = ""
	rec.User = nil
	return s.write(rec)
}

// SaveOAuthState overwrites any previous pending login attempt; only one
// may be in flight at a time.
func (s *Store) SaveOAuthState(st OAuthState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.load()
	if err != nil {
		return err
	}
	rec.OAuthState = &st
	return s.write(rec)
}

func (s *Store) OAuthState() (OAuthState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.load()
	if err != nil || rec.OAuthState == nil {
		return OAuthState{}, false
	}
	return *rec.OAuthState, true
}

func (s *Store) DeleteOAuthState() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.load()
	if err != nil {
		return err
	}
	if rec.OAuthState == nil {
		return nil
	}
	rec.OAuthState = nil
	return s.write(rec)
}

func (s *Store) load() (record, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return record{}, nil
	}
	if err != nil {
		return record{}, fmt.Errorf("read credentials: %w", err)
	}
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		// A corrupt file is treated as empty; the next write replaces it.
		return record{}, nil
	}
	return rec, nil
}

func (s *Store) write(rec record) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create credentials directory: %w", err)
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize credentials: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}
