// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cmd

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/socialbros/internal/platform/apperr"
	"github.com/taibuivan/socialbros/internal/platform/sec"
	"github.com/taibuivan/socialbros/internal/users/account"
	"github.com/taibuivan/socialbros/internal/users/session"
	"github.com/taibuivan/socialbros/internal/users/session/sessiontest"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// singleAccount accepts one user and rejects every lookup.
type singleAccount struct {
	created *account.User
}

func (store *singleAccount) FindByUsername(context.Context, string) (*account.User, error) {
	return nil, apperr.NotFound("User")
}

func (store *singleAccount) FindByID(context.Context, string) (*account.User, error) {
	return nil, apperr.NotFound("User")
}

func (store *singleAccount) Create(_ context.Context, user *account.User) error {
	if store.created != nil {
		return apperr.Conflict("Username already taken")
	}
	store.created = user
	return nil
}

func (store *singleAccount) List(context.Context, int, int) ([]*account.User, int, error) {
	return nil, 0, nil
}

func TestCommandTree(t *testing.T) {
	for _, path := range [][]string{
		{"migrate"},
		{"sessions", "cleanup"},
		{"sessions", "revoke-user"},
		{"users", "create"},
	} {
		found, _, err := rootCmd.Find(path)
		require.NoError(t, err)
		assert.Equal(t, path[len(path)-1], found.Name())
	}
}

func TestArgumentValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown_direction", []string{"migrate", "sideways"}},
		{"missing_direction", []string{"migrate"}},
		{"missing_user_id", []string{"sessions", "revoke-user"}},
		{"missing_flags", []string{"users", "create"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rootCmd.SetArgs(tt.args)
			rootCmd.SetOut(io.Discard)
			rootCmd.SetErr(io.Discard)
			assert.Error(t, rootCmd.Execute())
		})
	}
}

func TestCleanupSessions(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repository := sessiontest.NewRepository()
	manager := session.NewManager(repository, session.Config{TTL: time.Hour}, discard).
		WithClock(func() time.Time { return now })

	_, err := manager.Create(context.Background(), session.CreateParams{UserID: "1"})
	require.NoError(t, err)

	now = now.Add(2 * time.Hour)

	var out bytes.Buffer
	require.NoError(t, cleanupSessions(context.Background(), manager, &out))
	assert.Equal(t, "deleted 1 expired session(s)\n", out.String())
	assert.Zero(t, repository.Len())
}

func TestRevokeUserSessions(t *testing.T) {
	alice := &account.User{ID: "1", Username: "alice"}
	repository := sessiontest.NewRepository(alice)
	manager := session.NewManager(repository, session.Config{TTL: time.Hour}, discard)

	created, err := manager.Create(context.Background(), session.CreateParams{UserID: "1"})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, revokeUserSessions(context.Background(), manager, "1", &out))
	assert.Contains(t, out.String(), "revoked sessions of user 1")

	validated, err := manager.Validate(context.Background(), created.Token)
	require.NoError(t, err)
	assert.Nil(t, validated)
}

func TestCreateUser(t *testing.T) {
	store := &singleAccount{}
	accounts := account.NewService(store, sec.BcryptVerifier{Cost: 4}, discard)

	var out bytes.Buffer
	require.NoError(t, createUser(context.Background(), accounts, "alice", "s3cret", &out))
	assert.Contains(t, out.String(), "created user alice")

	require.NotNil(t, store.created)
	assert.NotEqual(t, "s3cret", store.created.Password)

	err := createUser(context.Background(), accounts, "alice", "again", &out)
	require.NotNil(t, apperr.As(err))
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}
