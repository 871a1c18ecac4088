// Package session owns the authenticated-user state: the bearer credential
// and user record, kept in memory and mirrored to a JSON state file so a
// login survives between invocations. Only Restore, Login, Register, and
// Logout may change the authenticated/unauthenticated state; in-memory and
// persisted state never disagree after any of them returns.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/spentcli/spent/internal/api"
	"github.com/spentcli/spent/internal/common"
	"github.com/spentcli/spent/internal/model"
)

// StateFileName is the session file kept under the data directory.
const StateFileName = "session.json"

// AuthAPI is the slice of the backend the store needs.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*api.AuthResponse, error)
	Register(ctx context.Context, input api.RegisterInput) (*api.AuthResponse, error)
	Logout(ctx context.Context) error
}

// Result is the outcome of a login or registration attempt. Failures carry a
// user-facing message instead of an error; the caller renders it and moves on.
type Result struct {
	Message string
	Success bool
}

// persistedState mirrors the two browser localStorage entries the backend
// contract assumes: the raw token and the serialized user. The user is kept
// raw so a corrupted record is detected at restore time.
type persistedState struct {
	Token string          `json:"token"`
	User  json.RawMessage `json:"user"`
}

// Store holds the current session.
type Store struct {
	user     *model.User
	token    string
	path     string
	mu       sync.RWMutex
	loading  bool
	restored bool
}

// NewStore creates a session store backed by the state file at path. The
// store reports Loading() == true until Restore has run.
func NewStore(path string) *Store {
	return &Store{path: path, loading: true}
}

// DefaultPath returns the standard session file location.
func DefaultPath(dataDir string) string {
	return filepath.Join(dataDir, StateFileName)
}

// Restore loads the persisted session, if any. A missing file means logged
// out; a malformed file is removed and also means logged out. Neither is an
// error, the user just has to log in again. Restore always completes before
// any protected operation can observe the store.
func (s *Store) Restore() {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() {
		s.loading = false
		s.restored = true
	}()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			slog.Debug("Failed to read session state", "path", s.path, "error", err)
		}
		return
	}

	var state persistedState
	if err := json.Unmarshal(data, &state); err != nil {
		slog.Debug("Clearing malformed session state", "path", s.path, "error", err)
		s.clearLocked()
		return
	}

	var user model.User
	if state.Token == "" || len(state.User) == 0 || json.Unmarshal(state.User, &user) != nil {
		slog.Debug("Clearing malformed session state", "path", s.path)
		s.clearLocked()
		return
	}

	s.token = state.Token
	s.user = &user
}

// Login authenticates against the backend. On success the credential and
// user are persisted and the store becomes authenticated; on failure the
// store is untouched and the result carries a displayable message.
func (s *Store) Login(ctx context.Context, auth AuthAPI, email, password string) Result {
	resp, err := auth.Login(ctx, email, password)
	if err != nil {
		return Result{Message: loginFailureMessage(err)}
	}

	if err := s.establish(resp.Token, &resp.User); err != nil {
		return Result{Message: fmt.Sprintf("Failed to save session: %v", err)}
	}

	return Result{Success: true}
}

// Register creates an account and establishes a session, with the same
// contract as Login.
func (s *Store) Register(ctx context.Context, auth AuthAPI, input api.RegisterInput) Result {
	resp, err := auth.Register(ctx, input)
	if err != nil {
		msg := err.Error()
		if msg == "" {
			msg = "Registration failed. Please check your information."
		}
		return Result{Message: msg}
	}

	if err := s.establish(resp.Token, &resp.User); err != nil {
		return Result{Message: fmt.Sprintf("Failed to save session: %v", err)}
	}

	return Result{Success: true}
}

// Logout tells the backend to drop the token, then clears local state no
// matter what the backend said. A failed logout call is logged, not surfaced.
func (s *Store) Logout(ctx context.Context, auth AuthAPI) {
	if err := auth.Logout(ctx); err != nil {
		slog.Warn("Backend logout failed, clearing local session anyway", "error", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

// Token implements api.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the current user, or nil when unauthenticated.
func (s *Store) User() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Authenticated reports whether a session is established.
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// Loading reports whether Restore has yet to complete.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// RequireAuth fails with a user-facing error when no session is established.
func (s *Store) RequireAuth() error {
	if !s.Authenticated() {
		return common.NewUserError("You are not logged in. Run 'spent login' first.", common.ErrNotAuthenticated)
	}
	return nil
}

// SetUser replaces the stored user record, keeping the current credential.
// Used after profile updates, where the server returns the authoritative
// user. No-op when unauthenticated.
func (s *Store) SetUser(user *model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" || user == nil {
		return
	}
	s.user = user
	if err := s.saveLocked(); err != nil {
		slog.Warn("Failed to persist updated user", "error", err)
	}
}

// establish persists and adopts a fresh session atomically: the state file
// is written first, so a write failure leaves the store unauthenticated.
func (s *Store) establish(token string, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prevToken, prevUser := s.token, s.user
	s.token = token
	s.user = user

	if err := s.saveLocked(); err != nil {
		s.token, s.user = prevToken, prevUser
		return err
	}
	return nil
}

func (s *Store) saveLocked() error {
	rawUser, err := json.Marshal(s.user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}

	data, err := json.MarshalIndent(persistedState{Token: s.token, User: rawUser}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session state: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session state: %w", err)
	}
	return nil
}

func (s *Store) clearLocked() {
	s.token = ""
	s.user = nil
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Failed to remove session state file", "path", s.path, "error", err)
	}
}

// loginFailureMessage keeps backend messages when present but gives invalid
// credentials a consistent, friendly line.
func loginFailureMessage(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.IsUnauthorized() {
		if apiErr.Message != "" && apiErr.Message != fmt.Sprintf("Request failed with status %d", apiErr.StatusCode) {
			return apiErr.Message
		}
		return "Login failed. Please check your credentials."
	}
	if err.Error() == "" {
		return "Login failed. Please check your credentials."
	}
	return err.Error()
}
