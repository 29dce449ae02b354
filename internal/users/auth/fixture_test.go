// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/taibuivan/socialbros/internal/platform/apperr"
	"github.com/taibuivan/socialbros/internal/platform/sec"
	"github.com/taibuivan/socialbros/internal/users/account"
	"github.com/taibuivan/socialbros/internal/users/auth"
	"github.com/taibuivan/socialbros/internal/users/session"
	"github.com/taibuivan/socialbros/internal/users/session/sessiontest"
)

const week = 7 * 24 * time.Hour

var alice = &account.User{ID: "1", Username: "alice", Password: "s3cret"}

// userStore is a username-keyed [auth.UserFinder].
type userStore struct {
	users map[string]*account.User
	err   error
}

func (store *userStore) FindByUsername(_ context.Context, username string) (*account.User, error) {
	if store.err != nil {
		return nil, store.err
	}
	user, ok := store.users[username]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

// clock is a manually advanced time source shared by the manager and the signer.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fixture struct {
	clock         *clock
	repository    *sessiontest.Repository
	users         *userStore
	manager       *session.Manager
	tokens        *sec.TokenService
	authenticator *auth.Authenticator
	service       *auth.Service
}

func newFixture(t *testing.T, users ...*account.User) *fixture {
	t.Helper()
	if len(users) == 0 {
		users = []*account.User{alice}
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clk := &clock{now: time.Now().UTC().Truncate(time.Second)}

	store := &userStore{users: map[string]*account.User{}}
	for _, user := range users {
		store.users[user.Username] = user
	}

	repository := sessiontest.NewRepository(users...)
	manager := session.NewManager(repository, session.Config{TTL: week}, logger).WithClock(clk.Now)

	tokens, err := sec.NewTokenService("test-secret", "socialbros-api", time.Minute)
	require.NoError(t, err)
	tokens.WithClock(clk.Now)

	return &fixture{
		clock:         clk,
		repository:    repository,
		users:         store,
		manager:       manager,
		tokens:        tokens,
		authenticator: auth.NewAuthenticator(manager, tokens, logger),
		service:       auth.NewService(store, manager, tokens, sec.PlainVerifier{}, logger),
	}
}

// signIn signs alice in and returns both credentials.
func (f *fixture) signIn(t *testing.T) *auth.SignInResult {
	t.Helper()
	result, err := f.service.SignIn(context.Background(), auth.SignInInput{Username: "alice", Password: "s3cret"})
	require.NoError(t, err)
	return result
}
