package session

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spentcli/spent/internal/api"
	"github.com/spentcli/spent/internal/model"
)

// fakeAuth scripts the backend's auth responses.
type fakeAuth struct {
	loginErr    error
	registerErr error
	logoutErr   error
	resp        *api.AuthResponse
	logoutCalls int
}

func (f *fakeAuth) Login(_ context.Context, _, _ string) (*api.AuthResponse, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.resp, nil
}

func (f *fakeAuth) Register(_ context.Context, _ api.RegisterInput) (*api.AuthResponse, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return f.resp, nil
}

func (f *fakeAuth) Logout(_ context.Context) error {
	f.logoutCalls++
	return f.logoutErr
}

func testUser() model.User {
	return model.User{ID: "u1", Username: "sam", Email: "sam@example.com"}
}

func statePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), StateFileName)
}

func TestRestoreMissingFile(t *testing.T) {
	store := NewStore(statePath(t))
	assert.True(t, store.Loading())

	store.Restore()

	assert.False(t, store.Loading())
	assert.False(t, store.Authenticated())
	assert.Nil(t, store.User())
	assert.Empty(t, store.Token())
}

func TestLoginPersistsAndRestores(t *testing.T) {
	path := statePath(t)
	store := NewStore(path)
	store.Restore()

	user := testUser()
	auth := &fakeAuth{resp: &api.AuthResponse{Token: "tok123", User: user}}

	result := store.Login(context.Background(), auth, "sam@example.com", "hunter2")
	require.True(t, result.Success)
	assert.Empty(t, result.Message)
	assert.True(t, store.Authenticated())
	assert.Equal(t, "tok123", store.Token())
	require.NotNil(t, store.User())
	assert.Equal(t, "sam", store.User().Username)

	// A fresh store restores the same session from disk.
	fresh := NewStore(path)
	fresh.Restore()
	assert.True(t, fresh.Authenticated())
	assert.Equal(t, "tok123", fresh.Token())
	require.NotNil(t, fresh.User())
	assert.Equal(t, "sam@example.com", fresh.User().Email)
}

func TestLoginFailureLeavesStoreUntouched(t *testing.T) {
	store := NewStore(statePath(t))
	store.Restore()

	auth := &fakeAuth{loginErr: &api.APIError{
		StatusCode: http.StatusUnauthorized,
		Message:    "Request failed with status 401",
	}}

	result := store.Login(context.Background(), auth, "sam@example.com", "wrong")
	assert.False(t, result.Success)
	assert.Equal(t, "Login failed. Please check your credentials.", result.Message)
	assert.False(t, store.Authenticated())
}

func TestLoginFailureKeepsBackendMessage(t *testing.T) {
	store := NewStore(statePath(t))
	store.Restore()

	auth := &fakeAuth{loginErr: &api.APIError{
		StatusCode: http.StatusUnauthorized,
		Message:    "Account locked",
	}}

	result := store.Login(context.Background(), auth, "sam@example.com", "pw")
	assert.False(t, result.Success)
	assert.Equal(t, "Account locked", result.Message)
}

func TestRegisterEstablishesSession(t *testing.T) {
	store := NewStore(statePath(t))
	store.Restore()

	user := testUser()
	auth := &fakeAuth{resp: &api.AuthResponse{Token: "tok456", User: user}}

	result := store.Register(context.Background(), auth, api.RegisterInput{
		Username: "sam",
		Email:    "sam@example.com",
		Password: "hunter2",
	})
	require.True(t, result.Success)
	assert.Equal(t, "tok456", store.Token())
}

func TestRegisterFailureMessage(t *testing.T) {
	store := NewStore(statePath(t))
	store.Restore()

	auth := &fakeAuth{registerErr: &api.APIError{
		StatusCode: http.StatusBadRequest,
		Message:    "Validation failed: Email is already taken",
	}}

	result := store.Register(context.Background(), auth, api.RegisterInput{})
	assert.False(t, result.Success)
	assert.Equal(t, "Validation failed: Email is already taken", result.Message)
	assert.False(t, store.Authenticated())
}

func TestRestoreMalformedFileClears(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "not json",
			content: `{{{`,
		},
		{
			name:    "missing token",
			content: `{"user":{"_id":"u1","username":"sam"}}`,
		},
		{
			name:    "missing user",
			content: `{"token":"tok123"}`,
		},
		{
			name:    "unparsable user",
			content: `{"token":"tok123","user":"not-an-object"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := statePath(t)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0600))

			store := NewStore(path)
			store.Restore()

			assert.False(t, store.Authenticated())
			assert.Nil(t, store.User())

			// The corrupt file is removed so the next run starts clean.
			_, err := os.Stat(path)
			assert.True(t, errors.Is(err, os.ErrNotExist))
		})
	}
}

func TestLogoutClearsEvenWhenBackendFails(t *testing.T) {
	path := statePath(t)
	store := NewStore(path)
	store.Restore()

	user := testUser()
	auth := &fakeAuth{resp: &api.AuthResponse{Token: "tok123", User: user}}
	require.True(t, store.Login(context.Background(), auth, "e", "p").Success)

	auth.logoutErr = errors.New("connection refused")
	store.Logout(context.Background(), auth)

	assert.Equal(t, 1, auth.logoutCalls)
	assert.False(t, store.Authenticated())
	assert.Nil(t, store.User())

	_, err := os.Stat(path)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestRequireAuth(t *testing.T) {
	store := NewStore(statePath(t))
	store.Restore()

	err := store.RequireAuth()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")

	user := testUser()
	auth := &fakeAuth{resp: &api.AuthResponse{Token: "tok123", User: user}}
	require.True(t, store.Login(context.Background(), auth, "e", "p").Success)
	assert.NoError(t, store.RequireAuth())
}

func TestSetUserKeepsToken(t *testing.T) {
	path := statePath(t)
	store := NewStore(path)
	store.Restore()

	user := testUser()
	auth := &fakeAuth{resp: &api.AuthResponse{Token: "tok123", User: user}}
	require.True(t, store.Login(context.Background(), auth, "e", "p").Success)

	updated := testUser()
	updated.Username = "samantha"
	store.SetUser(&updated)

	assert.Equal(t, "tok123", store.Token())
	assert.Equal(t, "samantha", store.User().Username)

	fresh := NewStore(path)
	fresh.Restore()
	require.NotNil(t, fresh.User())
	assert.Equal(t, "samantha", fresh.User().Username)
}

func TestSetUserNoOpWhenLoggedOut(t *testing.T) {
	store := NewStore(statePath(t))
	store.Restore()

	user := testUser()
	store.SetUser(&user)
	assert.Nil(t, store.User())
	assert.False(t, store.Authenticated())
}
