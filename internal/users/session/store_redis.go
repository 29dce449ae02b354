// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/socialbros/internal/platform/apperr"
	"github.com/taibuivan/socialbros/internal/platform/constants"
	"github.com/taibuivan/socialbros/internal/users/account"
)

// UserFinder loads the owner of a session. account.Service satisfies it.
type UserFinder interface {
	FindByID(context context.Context, id string) (*account.User, error)
}

// Hash fields of a session record.
const (
	fieldID        = "id"
	fieldUserID    = "user_id"
	fieldToken     = "token"
	fieldExpiresAt = "expires_at"
	fieldUserAgent = "user_agent"
	fieldIPAddress = "ip_address"
	fieldIsActive  = "is_active"
	fieldCreatedAt = "created_at"
	fieldUpdatedAt = "updated_at"
)

// deactivateScript clears is_active only on an existing, active record so a
// concurrent delete is never undone.
var deactivateScript = redis.NewScript(`
if redis.call('HGET', KEYS[1], 'is_active') == '1' then
  redis.call('HSET', KEYS[1], 'is_active', '0', 'updated_at', ARGV[1])
  return 1
end
return 0
`)

// updateExpiryScript moves the expiry of an existing record and its index entry.
var updateExpiryScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
  redis.call('HSET', KEYS[1], 'expires_at', ARGV[1], 'updated_at', ARGV[2])
  redis.call('ZADD', KEYS[2], ARGV[3], ARGV[4])
  return 1
end
return 0
`)

// # Repository Implementation

/*
RedisRepository implements [Repository] on Redis.

Layout:
  - auth:session:<token>        hash with the session fields
  - auth:user_sessions:<userID> set of the user's tokens
  - auth:session_expiry         sorted set of tokens scored by expiry (unix µs)

Keys carry no Redis TTL: an expired record must stay readable until
validation deactivates it or the cleanup removes it.
*/
type RedisRepository struct {
	client *redis.Client
	users  UserFinder
}

// NewRedisRepository creates a new Redis session repository.
func NewRedisRepository(client *redis.Client, users UserFinder) *RedisRepository {
	return &RedisRepository{client: client, users: users}
}

func sessionKey(token string) string {
	return constants.RedisPrefixSession + token
}

func userSessionsKey(userID string) string {
	return constants.RedisPrefixUserSessions + userID
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func expiryScore(t time.Time) float64 {
	return float64(t.UnixMicro())
}

/*
Create writes the hash and both indexes in one MULTI/EXEC block.
*/
func (repository *RedisRepository) Create(context context.Context, session *Session) error {
	fields := map[string]interface{}{
		fieldID:        session.ID,
		fieldUserID:    session.UserID,
		fieldToken:     session.Token,
		fieldExpiresAt: formatTime(session.ExpiresAt),
		fieldIsActive:  boolField(session.IsActive),
		fieldCreatedAt: formatTime(session.CreatedAt),
		fieldUpdatedAt: formatTime(session.UpdatedAt),
	}
	if session.UserAgent != nil {
		fields[fieldUserAgent] = *session.UserAgent
	}
	if session.IPAddress != nil {
		fields[fieldIPAddress] = *session.IPAddress
	}

	_, err := repository.client.TxPipelined(context, func(pipe redis.Pipeliner) error {
		pipe.HSet(context, sessionKey(session.Token), fields)
		pipe.SAdd(context, userSessionsKey(session.UserID), session.Token)
		pipe.ZAdd(context, constants.RedisKeySessionExpiry, redis.Z{
			Score:  expiryScore(session.ExpiresAt),
			Member: session.Token,
		})
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis_session_repo_create_failed: %w", err)
	}
	return nil
}

/*
FindActiveByToken reads the hash and hydrates the owner through the UserFinder.
*/
func (repository *RedisRepository) FindActiveByToken(context context.Context, token string) (*Session, error) {
	values, err := repository.client.HGetAll(context, sessionKey(token)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis_session_repo_find_failed: %w", err)
	}

	if len(values) == 0 || values[fieldIsActive] != "1" {
		return nil, nil
	}

	session, err := decodeSession(values)
	if err != nil {
		return nil, fmt.Errorf("redis_session_repo_decode_failed: %w", err)
	}

	user, err := repository.users.FindByID(context, session.UserID)
	if err != nil {
		// A session whose owner is gone cannot authenticate anyone.
		if apperr.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis_session_repo_user_failed: %w", err)
	}
	session.User = user

	return session, nil
}

/*
Deactivate runs the conditional deactivation script for one token.
*/
func (repository *RedisRepository) Deactivate(context context.Context, token string, at time.Time) error {
	err := deactivateScript.Run(context, repository.client, []string{sessionKey(token)}, formatTime(at)).Err()
	if err != nil {
		return fmt.Errorf("redis_session_repo_deactivate_failed: %w", err)
	}
	return nil
}

/*
DeactivateAllForUser applies the conditional deactivation to each of the user's tokens.
*/
func (repository *RedisRepository) DeactivateAllForUser(context context.Context, userID string, at time.Time) error {
	tokens, err := repository.client.SMembers(context, userSessionsKey(userID)).Result()
	if err != nil {
		return fmt.Errorf("redis_session_repo_members_failed: %w", err)
	}

	for _, token := range tokens {
		if err := repository.Deactivate(context, token, at); err != nil {
			return err
		}
	}
	return nil
}

/*
UpdateExpiry moves expires_at and the expiry index entry if the record exists.
*/
func (repository *RedisRepository) UpdateExpiry(context context.Context, token string, expiresAt, at time.Time) error {
	err := updateExpiryScript.Run(context, repository.client,
		[]string{sessionKey(token), constants.RedisKeySessionExpiry},
		formatTime(expiresAt), formatTime(at), expiryScore(expiresAt), token,
	).Err()
	if err != nil {
		return fmt.Errorf("redis_session_repo_update_expiry_failed: %w", err)
	}
	return nil
}

/*
Delete removes the record and its index entries.
*/
func (repository *RedisRepository) Delete(context context.Context, token string) error {
	_, err := repository.remove(context, token)
	return err
}

/*
DeleteExpiredBefore removes every token scored strictly below cutoff.
*/
func (repository *RedisRepository) DeleteExpiredBefore(context context.Context, cutoff time.Time) (int64, error) {
	tokens, err := repository.client.ZRangeByScore(context, constants.RedisKeySessionExpiry, &redis.ZRangeBy{
		Min: "-inf",
		Max: "(" + strconv.FormatFloat(expiryScore(cutoff), 'f', -1, 64),
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("redis_session_repo_expired_scan_failed: %w", err)
	}

	var deleted int64
	for _, token := range tokens {
		removed, err := repository.remove(context, token)
		if err != nil {
			return deleted, err
		}
		if removed {
			deleted++
		}
	}
	return deleted, nil
}

/*
ListActiveByUser reads every session of the user and keeps those valid at now.
Set members whose hash has disappeared are pruned on the way.
*/
func (repository *RedisRepository) ListActiveByUser(context context.Context, userID string, now time.Time) ([]*Session, error) {
	indexKey := userSessionsKey(userID)
	tokens, err := repository.client.SMembers(context, indexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("redis_session_repo_members_failed: %w", err)
	}

	commands := make([]*redis.MapStringStringCmd, len(tokens))
	_, err = repository.client.Pipelined(context, func(pipe redis.Pipeliner) error {
		for index, token := range tokens {
			commands[index] = pipe.HGetAll(context, sessionKey(token))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("redis_session_repo_list_failed: %w", err)
	}

	sessions := []*Session{}
	for index, command := range commands {
		values := command.Val()
		if len(values) == 0 {
			repository.client.SRem(context, indexKey, tokens[index])
			continue
		}

		session, err := decodeSession(values)
		if err != nil {
			return nil, fmt.Errorf("redis_session_repo_decode_failed: %w", err)
		}
		if session.IsActive && !session.IsExpired(now) {
			sessions = append(sessions, session)
		}
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.After(sessions[j].CreatedAt)
	})

	return sessions, nil
}

// remove deletes one record and its index entries, reporting whether the hash existed.
func (repository *RedisRepository) remove(context context.Context, token string) (bool, error) {
	key := sessionKey(token)

	userID, err := repository.client.HGet(context, key, fieldUserID).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return false, fmt.Errorf("redis_session_repo_delete_failed: %w", err)
	}

	var deleted *redis.IntCmd
	_, err = repository.client.TxPipelined(context, func(pipe redis.Pipeliner) error {
		deleted = pipe.Del(context, key)
		pipe.ZRem(context, constants.RedisKeySessionExpiry, token)
		if userID != "" {
			pipe.SRem(context, userSessionsKey(userID), token)
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("redis_session_repo_delete_failed: %w", err)
	}

	return deleted.Val() > 0, nil
}

func boolField(value bool) string {
	if value {
		return "1"
	}
	return "0"
}

// decodeSession maps a session hash back to a [Session].
func decodeSession(values map[string]string) (*Session, error) {
	session := &Session{
		ID:       values[fieldID],
		UserID:   values[fieldUserID],
		Token:    values[fieldToken],
		IsActive: values[fieldIsActive] == "1",
	}

	var err error
	if session.ExpiresAt, err = time.Parse(time.RFC3339Nano, values[fieldExpiresAt]); err != nil {
		return nil, fmt.Errorf("expires_at: %w", err)
	}
	if session.CreatedAt, err = time.Parse(time.RFC3339Nano, values[fieldCreatedAt]); err != nil {
		return nil, fmt.Errorf("created_at: %w", err)
	}
	if session.UpdatedAt, err = time.Parse(time.RFC3339Nano, values[fieldUpdatedAt]); err != nil {
		return nil, fmt.Errorf("updated_at: %w", err)
	}

	if userAgent, ok := values[fieldUserAgent]; ok {
		session.UserAgent = &userAgent
	}
	if ipAddress, ok := values[fieldIPAddress]; ok {
		session.IPAddress = &ipAddress
	}

	return session, nil
}
