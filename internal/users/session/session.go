// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package session manages opaque, server-side session tokens.

A session is created at sign-in and stays usable while it is active and
unexpired. Expiry is enforced lazily: the first validation that sees an
expired record deactivates it, so no background timer is needed for
correctness. The [Janitor] only reclaims storage.

# Architecture

  - Entities: Session.
  - Contracts: Repository, implemented by PostgresRepository and RedisRepository.
  - Service: Manager (token generation, validation with side effect, refresh, cleanup).
*/
package session

import (
	"context"
	"time"

	"github.com/taibuivan/socialbros/internal/users/account"
)

// # Domain Entities

// Session is one issued session token and its lifecycle state.
//
// Token is the credential itself and is never serialised.
type Session struct {
	ID        string        `json:"id"`
	UserID    string        `json:"user_id"`
	Token     string        `json:"-"`
	ExpiresAt time.Time     `json:"expires_at"`
	UserAgent *string       `json:"user_agent,omitempty"`
	IPAddress *string       `json:"ip_address,omitempty"`
	IsActive  bool          `json:"is_active"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	User      *account.User `json:"-"`
}

// IsExpired reports whether the session's expiry lies strictly before now.
func (session *Session) IsExpired(now time.Time) bool {
	return now.After(session.ExpiresAt)
}

// CreateParams carries the owner and request metadata of a new session.
type CreateParams struct {
	UserID    string
	UserAgent *string
	IPAddress *string
}

// # Repository Contracts

// Repository persists sessions. Every mutation must be atomic for the
// record(s) it targets; the manager never performs read-modify-write.
type Repository interface {
	// Create persists a new session record.
	Create(context context.Context, session *Session) error

	// FindActiveByToken returns the active session for token with its User
	// loaded, or (nil, nil) when no active record matches. Expired records
	// that are still active are returned.
	FindActiveByToken(context context.Context, token string) (*Session, error)

	// Deactivate clears isActive on the record for token if it is active.
	// Missing or already inactive records are not an error.
	Deactivate(context context.Context, token string, at time.Time) error

	// DeactivateAllForUser clears isActive on every active record of userID.
	DeactivateAllForUser(context context.Context, userID string, at time.Time) error

	// UpdateExpiry sets a new expiry on the record for token.
	UpdateExpiry(context context.Context, token string, expiresAt, at time.Time) error

	// Delete removes the record for token.
	Delete(context context.Context, token string) error

	// DeleteExpiredBefore removes every record whose expiry is strictly
	// before cutoff, active or not, and reports how many were removed.
	DeleteExpiredBefore(context context.Context, cutoff time.Time) (int64, error)

	// ListActiveByUser returns the active sessions of userID that have not
	// expired at now, newest first.
	ListActiveByUser(context context.Context, userID string, now time.Time) ([]*Session, error)
}
