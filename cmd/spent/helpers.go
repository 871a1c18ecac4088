package main

import (
	"github.com/spf13/viper"

	"github.com/spentcli/spent/internal/api"
	"github.com/spentcli/spent/internal/config"
	"github.com/spentcli/spent/internal/session"
)

// openSession restores the persisted session. Restore always completes here,
// before any command logic runs, so no protected operation ever observes a
// loading store.
func openSession() (*session.Store, error) {
	dataDir, err := config.DataDir()
	if err != nil {
		return nil, err
	}

	store := session.NewStore(session.DefaultPath(dataDir))
	store.Restore()
	return store, nil
}

// newClient builds an API client backed by the session's credential.
func newClient(store *session.Store) *api.Client {
	return api.NewClient(viper.GetString("api.url"), store)
}

// openAuthenticated restores the session and fails early when not logged in.
func openAuthenticated() (*session.Store, *api.Client, error) {
	store, err := openSession()
	if err != nil {
		return nil, nil, err
	}
	if err := store.RequireAuth(); err != nil {
		return nil, nil, err
	}
	return store, newClient(store), nil
}
