// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/socialbros/internal/platform/apperr"
	"github.com/taibuivan/socialbros/internal/users/account"
	"github.com/taibuivan/socialbros/internal/users/session"
	"github.com/taibuivan/socialbros/pkg/pointer"
)

type userDirectory map[string]*account.User

func (directory userDirectory) FindByID(_ context.Context, id string) (*account.User, error) {
	user, ok := directory[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

func newRedisRepository(t *testing.T) (*session.RedisRepository, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return session.NewRedisRepository(client, userDirectory{"1": alice}), server
}

func newRecord(token string, createdAt time.Time) *session.Session {
	return &session.Session{
		ID:        "sess-" + token,
		UserID:    "1",
		Token:     token,
		ExpiresAt: createdAt.Add(week),
		UserAgent: pointer.To("curl/8.0"),
		IsActive:  true,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestRedisRepository_CreateAndFind(t *testing.T) {
	repository, server := newRedisRepository(t)
	ctx := context.Background()

	require.NoError(t, repository.Create(ctx, newRecord("tok-a", t0)))

	assert.True(t, server.Exists("auth:session:tok-a"))
	members, err := server.SMembers("auth:user_sessions:1")
	require.NoError(t, err)
	assert.Equal(t, []string{"tok-a"}, members)

	found, err := repository.FindActiveByToken(ctx, "tok-a")
	require.NoError(t, err)
	require.NotNil(t, found)

	assert.Equal(t, "sess-tok-a", found.ID)
	assert.Equal(t, t0.Add(week), found.ExpiresAt)
	assert.Equal(t, "curl/8.0", *found.UserAgent)
	assert.Nil(t, found.IPAddress)
	assert.Equal(t, "alice", found.User.Username)

	missing, err := repository.FindActiveByToken(ctx, "tok-missing")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRedisRepository_Deactivate(t *testing.T) {
	repository, server := newRedisRepository(t)
	ctx := context.Background()
	require.NoError(t, repository.Create(ctx, newRecord("tok-a", t0)))

	require.NoError(t, repository.Deactivate(ctx, "tok-a", t0.Add(time.Hour)))
	assert.Equal(t, "0", server.HGet("auth:session:tok-a", "is_active"))
	updatedAt := server.HGet("auth:session:tok-a", "updated_at")

	// Already inactive: nothing changes.
	require.NoError(t, repository.Deactivate(ctx, "tok-a", t0.Add(2*time.Hour)))
	assert.Equal(t, updatedAt, server.HGet("auth:session:tok-a", "updated_at"))

	// Missing: the script must not create a record.
	require.NoError(t, repository.Deactivate(ctx, "tok-ghost", t0))
	assert.False(t, server.Exists("auth:session:tok-ghost"))

	found, err := repository.FindActiveByToken(ctx, "tok-a")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestRedisRepository_DeactivateAllForUser(t *testing.T) {
	repository, server := newRedisRepository(t)
	ctx := context.Background()
	require.NoError(t, repository.Create(ctx, newRecord("tok-a", t0)))
	require.NoError(t, repository.Create(ctx, newRecord("tok-b", t0)))

	require.NoError(t, repository.DeactivateAllForUser(ctx, "1", t0))
	assert.Equal(t, "0", server.HGet("auth:session:tok-a", "is_active"))
	assert.Equal(t, "0", server.HGet("auth:session:tok-b", "is_active"))

	require.NoError(t, repository.DeactivateAllForUser(ctx, "1", t0))
	require.NoError(t, repository.DeactivateAllForUser(ctx, "nobody", t0))
}

func TestRedisRepository_UpdateExpiry(t *testing.T) {
	repository, server := newRedisRepository(t)
	ctx := context.Background()
	require.NoError(t, repository.Create(ctx, newRecord("tok-a", t0)))

	newExpiry := t0.Add(10 * 24 * time.Hour)
	require.NoError(t, repository.UpdateExpiry(ctx, "tok-a", newExpiry, t0.Add(3*24*time.Hour)))

	found, err := repository.FindActiveByToken(ctx, "tok-a")
	require.NoError(t, err)
	assert.Equal(t, newExpiry, found.ExpiresAt)

	score, err := server.ZScore("auth:session_expiry", "tok-a")
	require.NoError(t, err)
	assert.Equal(t, float64(newExpiry.UnixMicro()), score)

	require.NoError(t, repository.UpdateExpiry(ctx, "tok-ghost", newExpiry, t0))
	assert.False(t, server.Exists("auth:session:tok-ghost"))
}

func TestRedisRepository_DeleteExpiredBefore(t *testing.T) {
	repository, server := newRedisRepository(t)
	ctx := context.Background()

	require.NoError(t, repository.Create(ctx, newRecord("tok-old", t0)))
	require.NoError(t, repository.Create(ctx, newRecord("tok-new", t0.Add(5*24*time.Hour))))
	require.NoError(t, repository.Deactivate(ctx, "tok-old", t0))

	// Strictly before: a record expiring exactly at the cutoff survives.
	deleted, err := repository.DeleteExpiredBefore(ctx, t0.Add(week))
	require.NoError(t, err)
	assert.Zero(t, deleted)

	deleted, err = repository.DeleteExpiredBefore(ctx, t0.Add(8*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	assert.False(t, server.Exists("auth:session:tok-old"))
	assert.True(t, server.Exists("auth:session:tok-new"))
	members, err := server.SMembers("auth:user_sessions:1")
	require.NoError(t, err)
	assert.Equal(t, []string{"tok-new"}, members)
}

func TestRedisRepository_Delete(t *testing.T) {
	repository, server := newRedisRepository(t)
	ctx := context.Background()
	require.NoError(t, repository.Create(ctx, newRecord("tok-a", t0)))

	require.NoError(t, repository.Delete(ctx, "tok-a"))
	assert.False(t, server.Exists("auth:session:tok-a"))
	assert.NoError(t, repository.Delete(ctx, "tok-a"))
}

func TestRedisRepository_ListActiveByUser(t *testing.T) {
	repository, server := newRedisRepository(t)
	ctx := context.Background()

	require.NoError(t, repository.Create(ctx, newRecord("tok-a", t0)))
	require.NoError(t, repository.Create(ctx, newRecord("tok-b", t0.Add(time.Hour))))
	require.NoError(t, repository.Create(ctx, newRecord("tok-c", t0.Add(2*time.Hour))))
	require.NoError(t, repository.Deactivate(ctx, "tok-c", t0))
	server.Del("auth:session:tok-a")

	sessions, err := repository.ListActiveByUser(ctx, "1", t0.Add(3*time.Hour))
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "sess-tok-b", sessions[0].ID)

	// The dangling member was pruned.
	members, err := server.SMembers("auth:user_sessions:1")
	require.NoError(t, err)
	assert.NotContains(t, members, "tok-a")
}

func TestRedisRepository_WithManager(t *testing.T) {
	repository, server := newRedisRepository(t)
	clk := &clock{now: t0}
	manager := session.NewManager(repository, session.Config{TTL: week}, discardLogger()).WithClock(clk.Now)

	created, err := manager.Create(context.Background(), session.CreateParams{UserID: "1"})
	require.NoError(t, err)

	clk.Advance(8 * 24 * time.Hour)
	validated, err := manager.Validate(context.Background(), created.Token)
	require.NoError(t, err)
	assert.Nil(t, validated)
	assert.Equal(t, "0", server.HGet("auth:session:"+created.Token, "is_active"))
}
