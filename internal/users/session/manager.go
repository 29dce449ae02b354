// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/socialbros/internal/platform/constants"
	"github.com/taibuivan/socialbros/internal/platform/sec"
	"github.com/taibuivan/socialbros/pkg/uuid"
)

// Config holds the session policy injected at construction.
type Config struct {
	// TTL is added to the creation or refresh time to compute expiry.
	TTL time.Duration
}

// # Service Layer

// Manager implements the session lifecycle over a [Repository].
//
// It holds no mutable state of its own and is safe for concurrent use.
type Manager struct {
	repository Repository
	ttl        time.Duration
	now        func() time.Time
	logger     *slog.Logger
}

// NewManager constructs a [Manager]. A non-positive TTL falls back to the
// default of seven days.
func NewManager(repository Repository, config Config, logger *slog.Logger) *Manager {
	ttl := config.TTL
	if ttl <= 0 {
		ttl = time.Duration(constants.DefaultSessionTTLDays) * 24 * time.Hour
	}

	return &Manager{
		repository: repository,
		ttl:        ttl,
		now:        time.Now,
		logger:     logger,
	}
}

// WithClock replaces the time source. Intended for tests.
func (manager *Manager) WithClock(now func() time.Time) *Manager {
	manager.now = now
	return manager
}

// TTL returns the configured session lifetime.
func (manager *Manager) TTL() time.Duration {
	return manager.ttl
}

/*
Create issues a new active session for a user.

Description: The token is 32 bytes from crypto/rand rendered as 64 hex
characters. Uniqueness is left to the entropy and the store's constraint.

Returns:
  - *Session: The persisted session, including its token
  - error: Token generation or storage failures
*/
func (manager *Manager) Create(context context.Context, params CreateParams) (*Session, error) {
	token, err := sec.GenerateSecureToken(constants.SessionTokenBytes)
	if err != nil {
		return nil, fmt.Errorf("session_manager_token_failed: %w", err)
	}

	now := manager.now().UTC()
	session := &Session{
		ID:        uuid.New(),
		UserID:    params.UserID,
		Token:     token,
		ExpiresAt: now.Add(manager.ttl),
		UserAgent: params.UserAgent,
		IPAddress: params.IPAddress,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := manager.repository.Create(context, session); err != nil {
		return nil, fmt.Errorf("session_manager_create_failed: %w", err)
	}

	return session, nil
}

/*
FindByToken returns the active session for token, or nil when there is none.

Expiry is not checked here; use [Manager.Validate] to authenticate.
*/
func (manager *Manager) FindByToken(context context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, nil
	}

	session, err := manager.repository.FindActiveByToken(context, token)
	if err != nil {
		return nil, fmt.Errorf("session_manager_find_failed: %w", err)
	}
	return session, nil
}

/*
Validate returns the session for token if it is active and unexpired.

An active session found past its expiry is deactivated before nil is
returned, so an expired token cannot be replayed once it has been seen.
*/
func (manager *Manager) Validate(context context.Context, token string) (*Session, error) {
	session, err := manager.FindByToken(context, token)
	if err != nil || session == nil {
		return nil, err
	}

	if session.IsExpired(manager.now()) {
		if err := manager.Invalidate(context, token); err != nil {
			return nil, err
		}

		manager.logger.DebugContext(context, "session_expired_on_read",
			slog.String("session_id", session.ID),
			slog.String("user_id", session.UserID),
		)
		return nil, nil
	}

	return session, nil
}

// Invalidate deactivates the session for token. It is idempotent.
func (manager *Manager) Invalidate(context context.Context, token string) error {
	if err := manager.repository.Deactivate(context, token, manager.now().UTC()); err != nil {
		return fmt.Errorf("session_manager_invalidate_failed: %w", err)
	}
	return nil
}

// InvalidateAllForUser deactivates every session of a user. It is idempotent.
func (manager *Manager) InvalidateAllForUser(context context.Context, userID string) error {
	if err := manager.repository.DeactivateAllForUser(context, userID, manager.now().UTC()); err != nil {
		return fmt.Errorf("session_manager_invalidate_all_failed: %w", err)
	}
	return nil
}

// Delete physically removes the session for token.
func (manager *Manager) Delete(context context.Context, token string) error {
	if err := manager.repository.Delete(context, token); err != nil {
		return fmt.Errorf("session_manager_delete_failed: %w", err)
	}
	return nil
}

// DeleteExpired removes every session whose expiry is strictly before now,
// regardless of whether it is still active.
func (manager *Manager) DeleteExpired(context context.Context) (int64, error) {
	deleted, err := manager.repository.DeleteExpiredBefore(context, manager.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("session_manager_delete_expired_failed: %w", err)
	}
	return deleted, nil
}

/*
Refresh moves the expiry of an active session to now + TTL.

The current expiry is not checked, so an active session that expired but
was never validated is revived. Returns nil without writing when no active
session matches.
*/
func (manager *Manager) Refresh(context context.Context, token string) (*Session, error) {
	session, err := manager.FindByToken(context, token)
	if err != nil || session == nil {
		return nil, err
	}

	now := manager.now().UTC()
	session.ExpiresAt = now.Add(manager.ttl)
	session.UpdatedAt = now

	if err := manager.repository.UpdateExpiry(context, token, session.ExpiresAt, now); err != nil {
		return nil, fmt.Errorf("session_manager_refresh_failed: %w", err)
	}

	return session, nil
}

// ListActiveForUser returns the user's sessions that would currently validate.
func (manager *Manager) ListActiveForUser(context context.Context, userID string) ([]*Session, error) {
	sessions, err := manager.repository.ListActiveByUser(context, userID, manager.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("session_manager_list_failed: %w", err)
	}
	return sessions, nil
}
