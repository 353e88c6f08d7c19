package session

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt"
	"gopkg.in/yaml.v3"
)

const (
	userIdClaim = "user-id"
	expClaim    = "exp"
)

type credentials struct {
	Access  string `yaml:"access"`
	Refresh string `yaml:"refresh,omitempty"`
}

// Store is the single source of truth for the bearer credential used
// by every authenticated call. It is passed explicitly to the REST
// client and the chat transport; the auth flow is the only writer.
// Tokens are mirrored to a file so a login survives process restarts.
type Store struct {
	mu    sync.RWMutex
	path  string
	creds credentials
}

// NewStore returns a store backed by the file at path. A missing or
// unreadable file simply means logged out.
func NewStore(path string) *Store {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}

	var creds credentials
	if err := yaml.Unmarshal(data, &creds); err != nil {
		return s
	}
	s.creds = creds

	return s
}

// Set replaces the current credential pair and persists it.
func (s *Store) Set(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.creds = credentials{Access: access, Refresh: refresh}

	return s.save()
}

// Get returns the current access token. ok is false when logged out.
func (s *Store) Get() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.creds.Access, s.creds.Access != ""
}

// Refresh returns the current refresh token, if any.
func (s *Store) Refresh() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.creds.Refresh, s.creds.Refresh != ""
}

// Clear drops both tokens and removes the token file. Any future
// authenticated call is sent unauthenticated after this.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.creds = credentials{}

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove token file: %w", err)
	}

	return nil
}

func (s *Store) save() error {
	data, err := yaml.Marshal(s.creds)
	if err != nil {
		return fmt.Errorf("marshal credentials: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}

	return nil
}

type Claims struct {
	UserId int
	Expiry time.Time
}

// Claims decodes the access token's payload without verifying the
// signature; the client holds no key and treats the token as opaque
// for auth purposes. ok is false when there is no token or the
// payload is not a readable JWT.
func (s *Store) Claims() (Claims, bool) {
	access, ok := s.Get()
	if !ok {
		return Claims{}, false
	}

	parser := jwt.Parser{}
	token, _, err := parser.ParseUnverified(access, jwt.MapClaims{})
	if err != nil {
		return Claims{}, false
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, false
	}

	var claims Claims
	if id, ok := mapClaims[userIdClaim].(float64); ok {
		claims.UserId = int(id)
	}
	if exp, ok := mapClaims[expClaim].(float64); ok {
		claims.Expiry = time.Unix(int64(exp), 0)
	}

	return claims, true
}

// Expired reports whether the access token carries an exp claim in
// the past. Tokens without readable claims are never reported
// expired; the backend is the arbiter.
func (s *Store) Expired() bool {
	claims, ok := s.Claims()
	if !ok || claims.Expiry.IsZero() {
		return false
	}

	return time.Now().After(claims.Expiry)
}
