// Package auth persists the session credential pair between console runs,
// the way a browser keeps them in local storage.
package auth

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

type sessionFile struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Store is a file-backed credential store. The file holds exactly two opaque
// strings; everything else about the session lives server-side.
type Store struct {
	mu     sync.Mutex
	path   string
	loaded bool
	tokens sessionFile
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) load() {
	if s.loaded {
		return
	}
	s.loaded = true

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return
	}

	// A corrupt session file is treated the same as a missing one.
	_ = json.Unmarshal(raw, &s.tokens)
}

// AccessToken returns the stored access token, or "" when logged out.
func (s *Store) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	return s.tokens.AccessToken
}

// RefreshToken returns the stored refresh token, or "" when logged out.
func (s *Store) RefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	return s.tokens.RefreshToken
}

// Save persists a new credential pair, creating the parent directory if needed.
func (s *Store) Save(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loaded = true
	s.tokens = sessionFile{AccessToken: access, RefreshToken: refresh}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return errors.Wrap(err, "create session directory")
	}

	raw, err := json.Marshal(s.tokens)
	if err != nil {
		return errors.Wrap(err, "marshal session")
	}

	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return errors.Wrap(err, "write session file")
	}

	return nil
}

// Clear removes the stored credentials and reports whether any were present.
// Only the caller that actually cleared something gets true, which bounds the
// unauthorized broadcast to a single emission under concurrent 401s.
func (s *Store) Clear() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()

	had := s.tokens.AccessToken != "" || s.tokens.RefreshToken != ""
	s.tokens = sessionFile{}
	_ = os.Remove(s.path)

	return had
}

// AccessTokenExpiry peeks at the access token's exp claim without verifying
// the signature; verification is the server's job. Opaque non-JWT tokens
// report no expiry.
func (s *Store) AccessTokenExpiry() (time.Time, bool) {
	token := s.AccessToken()
	if token == "" {
		return time.Time{}, false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}

	return exp.Time, true
}
