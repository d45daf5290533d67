// Package session holds the single authoritative authentication state of
// the console: the bearer token, the cached profile, and the in-memory
// session access key. Every other component reads it by handle at the
// moment of use; there is no ambient accessor.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/me/llmctl/internal/notify"
	"github.com/me/llmctl/internal/store"
	"github.com/me/llmctl/pkg/gateway"
)

// AuthAPI is the remote collaborator the store drives for auth operations.
// *gateway.Client implements it.
type AuthAPI interface {
	Login(ctx context.Context, req gateway.LoginRequest) (gateway.LoginResponse, error)
	Register(ctx context.Context, req gateway.RegisterRequest) error
	Profile(ctx context.Context) (gateway.UserProfile, error)
	ChangePassword(ctx context.Context, req gateway.ChangePasswordRequest) error
}

// Store is the process-wide session state. Mutations persist the token and
// profile synchronously; the session access key lives in memory only and
// never reaches durable storage.
//
// Concurrent requests may race to invalidate the session (two parallel
// calls both seeing a 401); Invalidate is idempotent and safe under that
// race.
type Store struct {
	mu        sync.RWMutex
	token     string
	profile   *gateway.UserProfile
	accessKey string

	db       store.Store
	notifier notify.Notifier
	logger   *slog.Logger
}

// NewStore creates a session store and loads any persisted token/profile.
func NewStore(ctx context.Context, db store.Store, notifier notify.Notifier, logger *slog.Logger) (*Store, error) {
	s := &Store{
		db:       db,
		notifier: notifier,
		logger:   logger.With("component", "session"),
	}

	token, err := db.Get(ctx, store.KeyToken)
	if err != nil {
		return nil, fmt.Errorf("load token: %w", err)
	}
	s.token = token

	raw, err := db.Get(ctx, store.KeyProfile)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if raw != "" {
		var p gateway.UserProfile
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			// A corrupt cached profile is not fatal; it is refetched on
			// next use.
			s.logger.Warn("discarding unreadable cached profile", "error", err)
		} else {
			s.profile = &p
		}
	}

	// A profile without a token is stale state from an interrupted logout.
	if s.token == "" && s.profile != nil {
		s.profile = nil
		_ = db.Delete(ctx, store.KeyProfile)
	}

	return s, nil
}

// Token returns the bearer token; empty means unauthenticated.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// SessionAccessKey returns the in-memory session access key.
func (s *Store) SessionAccessKey() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessKey
}

// IsAuthenticated reports whether a token is present.
func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}

// Profile returns a copy of the cached profile, or nil if none is loaded.
func (s *Store) Profile() *gateway.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return nil
	}
	p := *s.profile
	return &p
}

// Username returns the cached profile's username, or "".
func (s *Store) Username() string {
	if p := s.Profile(); p != nil {
		return p.Username
	}
	return ""
}

// HasRole reports whether the current profile's role is in roles. An empty
// role set means no restriction. Without a loaded profile, any non-empty
// set denies.
func (s *Store) HasRole(roles []gateway.Role) bool {
	if len(roles) == 0 {
		return true
	}
	p := s.Profile()
	if p == nil {
		return false
	}
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

// SetSessionAccessKey overwrites the in-memory access key. It is never
// persisted: the key is a higher-sensitivity credential scoped to one
// session and must not survive the process.
func (s *Store) SetSessionAccessKey(key string) {
	s.mu.Lock()
	s.accessKey = key
	s.mu.Unlock()
}

// Login exchanges credentials for a token, persists it, then fetches and
// persists the profile. The token write completes before the profile fetch
// is issued, since that fetch authenticates with it. On any failure no
// partial token is left behind.
func (s *Store) Login(ctx context.Context, api AuthAPI, req gateway.LoginRequest) (gateway.UserProfile, error) {
	resp, err := api.Login(ctx, req)
	if err != nil {
		return gateway.UserProfile{}, err
	}

	if err := s.setToken(ctx, resp.Token); err != nil {
		return gateway.UserProfile{}, err
	}

	profile, err := s.FetchProfile(ctx, api)
	if err != nil {
		s.Invalidate()
		return gateway.UserProfile{}, err
	}

	s.notifier.Success(fmt.Sprintf("Logged in as %s", profile.Username))
	return profile, nil
}

// Register creates an account. It does not mutate the session: the user
// still has to log in.
func (s *Store) Register(ctx context.Context, api AuthAPI, req gateway.RegisterRequest) error {
	if err := api.Register(ctx, req); err != nil {
		return err
	}
	s.notifier.Success("Registered; please log in")
	return nil
}

// FetchProfile retrieves and overwrites the stored profile.
func (s *Store) FetchProfile(ctx context.Context, api AuthAPI) (gateway.UserProfile, error) {
	profile, err := api.Profile(ctx)
	if err != nil {
		return gateway.UserProfile{}, err
	}

	raw, err := json.Marshal(profile)
	if err != nil {
		return gateway.UserProfile{}, fmt.Errorf("marshal profile: %w", err)
	}

	s.mu.Lock()
	s.profile = &profile
	s.mu.Unlock()

	if err := s.db.Put(ctx, store.KeyProfile, string(raw)); err != nil {
		return gateway.UserProfile{}, fmt.Errorf("persist profile: %w", err)
	}
	return profile, nil
}

// UpdatePassword rotates the password. No local state changes.
func (s *Store) UpdatePassword(ctx context.Context, api AuthAPI, req gateway.ChangePasswordRequest) error {
	if err := api.ChangePassword(ctx, req); err != nil {
		return err
	}
	s.notifier.Success("Password changed")
	return nil
}

// Logout clears the session. See Invalidate.
func (s *Store) Logout() {
	s.Invalidate()
}

// Invalidate clears the token, profile, and session access key, and removes
// the persisted copies. Idempotent: invalidating an already-clear session
// is a no-op and never fails.
func (s *Store) Invalidate() {
	s.mu.Lock()
	wasSet := s.token != "" || s.profile != nil || s.accessKey != ""
	s.token = ""
	s.profile = nil
	s.accessKey = ""
	s.mu.Unlock()

	if !wasSet {
		return
	}

	ctx := context.Background()
	if err := s.db.Delete(ctx, store.KeyToken); err != nil {
		s.logger.Warn("remove persisted token", "error", err)
	}
	if err := s.db.Delete(ctx, store.KeyProfile); err != nil {
		s.logger.Warn("remove persisted profile", "error", err)
	}
}

func (s *Store) setToken(ctx context.Context, token string) error {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	if err := s.db.Put(ctx, store.KeyToken, token); err != nil {
		s.mu.Lock()
		s.token = ""
		s.mu.Unlock()
		return fmt.Errorf("persist token: %w", err)
	}
	return nil
}
