// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/socialbros/internal/platform/sec"
	"github.com/taibuivan/socialbros/internal/users/account"
	"github.com/taibuivan/socialbros/internal/users/auth"
	"github.com/taibuivan/socialbros/pkg/pointer"
)

var hex64 = regexp.MustCompile(`^[0-9a-f]{64}$`)

func TestSignIn_Success(t *testing.T) {
	f := newFixture(t)

	result, err := f.service.SignIn(context.Background(), auth.SignInInput{
		Username:  "alice",
		Password:  "s3cret",
		UserAgent: pointer.To("Mozilla/5.0"),
		IPAddress: pointer.To("203.0.113.5"),
	})
	require.NoError(t, err)

	assert.Regexp(t, hex64, result.SessionToken)

	stored, ok := f.repository.Stored(result.SessionToken)
	require.True(t, ok)
	assert.True(t, stored.IsActive)
	assert.Equal(t, "1", stored.UserID)
	assert.Equal(t, "Mozilla/5.0", *stored.UserAgent)
	assert.Equal(t, "203.0.113.5", *stored.IPAddress)
	assert.Equal(t, f.clock.Now().Add(week), stored.ExpiresAt)

	claims, err := f.tokens.Verify(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "1", claims.Subject)
	assert.Equal(t, "alice", claims.Username)
}

/*
TestSignIn_NoEnumeration checks that an unknown user and a wrong password are
indistinguishable and that neither creates a session.
*/
func TestSignIn_NoEnumeration(t *testing.T) {
	f := newFixture(t)

	_, unknown := f.service.SignIn(context.Background(), auth.SignInInput{Username: "mallory", Password: "s3cret"})
	_, wrong := f.service.SignIn(context.Background(), auth.SignInInput{Username: "alice", Password: "guess"})

	assert.ErrorIs(t, unknown, auth.ErrInvalidCredentials)
	assert.ErrorIs(t, wrong, auth.ErrInvalidCredentials)
	assert.Equal(t, unknown.Error(), wrong.Error())
	assert.Zero(t, f.repository.Len())
}

func TestSignIn_Bcrypt(t *testing.T) {
	hashed, err := sec.BcryptVerifier{Cost: 4}.Prepare("s3cret")
	require.NoError(t, err)
	bob := &account.User{ID: "2", Username: "bob", Password: hashed}

	f := newFixture(t, bob)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := auth.NewService(f.users, f.manager, f.tokens, sec.BcryptVerifier{Cost: 4}, logger)

	result, err := service.SignIn(context.Background(), auth.SignInInput{Username: "bob", Password: "s3cret"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)

	_, err = service.SignIn(context.Background(), auth.SignInInput{Username: "bob", Password: hashed})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = service.SignIn(context.Background(), auth.SignInInput{Username: "nobody", Password: "s3cret"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestSignIn_StoreFailures(t *testing.T) {
	f := newFixture(t)
	outage := errors.New("users unavailable")
	f.users.err = outage

	_, err := f.service.SignIn(context.Background(), auth.SignInInput{Username: "alice", Password: "s3cret"})
	assert.ErrorIs(t, err, outage)
	assert.NotErrorIs(t, err, auth.ErrInvalidCredentials)

	f.users.err = nil
	f.repository.Err = errors.New("sessions unavailable")
	_, err = f.service.SignIn(context.Background(), auth.SignInInput{Username: "alice", Password: "s3cret"})
	assert.ErrorIs(t, err, f.repository.Err)
}

func TestSignIn_CredentialsAreIndependent(t *testing.T) {
	f := newFixture(t)
	signedIn := f.signIn(t)

	require.NoError(t, f.service.SignOut(context.Background(), signedIn.SessionToken))

	// The JWT outlives the session: it cannot be revoked before it expires.
	_, err := f.tokens.Verify(signedIn.AccessToken)
	assert.NoError(t, err)
}

func TestSignOut(t *testing.T) {
	f := newFixture(t)
	signedIn := f.signIn(t)

	require.NoError(t, f.service.SignOut(context.Background(), signedIn.SessionToken))
	validated, err := f.service.ValidateSession(context.Background(), signedIn.SessionToken)
	require.NoError(t, err)
	assert.Nil(t, validated)

	assert.NoError(t, f.service.SignOut(context.Background(), signedIn.SessionToken))
	assert.NoError(t, f.service.SignOut(context.Background(), "unknown"))

	writes := f.repository.Writes
	assert.NoError(t, f.service.SignOut(context.Background(), ""))
	assert.Equal(t, writes, f.repository.Writes)
}

func TestSignOutEverywhere(t *testing.T) {
	f := newFixture(t)
	first := f.signIn(t)
	second := f.signIn(t)

	require.NoError(t, f.service.SignOutEverywhere(context.Background(), "1"))

	for _, token := range []string{first.SessionToken, second.SessionToken} {
		validated, err := f.service.ValidateSession(context.Background(), token)
		require.NoError(t, err)
		assert.Nil(t, validated)
	}
}

func TestRefreshSession(t *testing.T) {
	f := newFixture(t)
	signedIn := f.signIn(t)

	f.clock.Advance(2 * 24 * time.Hour)
	refreshed, err := f.service.RefreshSession(context.Background(), signedIn.SessionToken)
	require.NoError(t, err)
	require.NotNil(t, refreshed)
	assert.Equal(t, f.clock.Now().Add(week), refreshed.ExpiresAt)

	missing, err := f.service.RefreshSession(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestListSessions(t *testing.T) {
	f := newFixture(t)
	f.signIn(t)
	f.clock.Advance(time.Second)
	latest := f.signIn(t)

	sessions, err := f.service.ListSessions(context.Background(), "1")
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, latest.Session.ID, sessions[0].ID)
}
