// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sessiontest provides an in-memory session repository for tests.
package sessiontest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/taibuivan/socialbros/internal/users/account"
	"github.com/taibuivan/socialbros/internal/users/session"
)

// Repository is a concurrency-safe in-memory [session.Repository].
//
// Writes counts every call that reached a mutating method and Err, when set,
// is returned by every method to simulate a store outage.
type Repository struct {
	mu       sync.Mutex
	sessions map[string]*session.Session
	users    map[string]*account.User

	Writes int
	Err    error
}

// NewRepository creates a repository that knows the given users.
func NewRepository(users ...*account.User) *Repository {
	repository := &Repository{
		sessions: map[string]*session.Session{},
		users:    map[string]*account.User{},
	}
	for _, user := range users {
		repository.users[user.ID] = user
	}
	return repository
}

// AddUser makes a user resolvable as the owner of its sessions.
func (repository *Repository) AddUser(user *account.User) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	repository.users[user.ID] = user
}

// Stored returns a copy of the raw record for token, active or not.
func (repository *Repository) Stored(token string) (session.Session, bool) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	record, ok := repository.sessions[token]
	if !ok {
		return session.Session{}, false
	}
	return *record, true
}

// Len returns the number of stored records.
func (repository *Repository) Len() int {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	return len(repository.sessions)
}

func (repository *Repository) Create(_ context.Context, record *session.Session) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	if repository.Err != nil {
		return repository.Err
	}

	repository.Writes++
	clone := *record
	clone.User = nil
	repository.sessions[record.Token] = &clone
	return nil
}

func (repository *Repository) FindActiveByToken(_ context.Context, token string) (*session.Session, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	if repository.Err != nil {
		return nil, repository.Err
	}

	record, ok := repository.sessions[token]
	if !ok || !record.IsActive {
		return nil, nil
	}

	user, ok := repository.users[record.UserID]
	if !ok {
		return nil, nil
	}

	clone := *record
	clone.User = user
	return &clone, nil
}

func (repository *Repository) Deactivate(_ context.Context, token string, at time.Time) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	if repository.Err != nil {
		return repository.Err
	}

	repository.Writes++
	if record, ok := repository.sessions[token]; ok && record.IsActive {
		record.IsActive = false
		record.UpdatedAt = at
	}
	return nil
}

func (repository *Repository) DeactivateAllForUser(_ context.Context, userID string, at time.Time) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	if repository.Err != nil {
		return repository.Err
	}

	repository.Writes++
	for _, record := range repository.sessions {
		if record.UserID == userID && record.IsActive {
			record.IsActive = false
			record.UpdatedAt = at
		}
	}
	return nil
}

func (repository *Repository) UpdateExpiry(_ context.Context, token string, expiresAt, at time.Time) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	if repository.Err != nil {
		return repository.Err
	}

	repository.Writes++
	if record, ok := repository.sessions[token]; ok {
		record.ExpiresAt = expiresAt
		record.UpdatedAt = at
	}
	return nil
}

func (repository *Repository) Delete(_ context.Context, token string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	if repository.Err != nil {
		return repository.Err
	}

	repository.Writes++
	delete(repository.sessions, token)
	return nil
}

func (repository *Repository) DeleteExpiredBefore(_ context.Context, cutoff time.Time) (int64, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	if repository.Err != nil {
		return 0, repository.Err
	}

	repository.Writes++
	var deleted int64
	for token, record := range repository.sessions {
		if record.ExpiresAt.Before(cutoff) {
			delete(repository.sessions, token)
			deleted++
		}
	}
	return deleted, nil
}

func (repository *Repository) ListActiveByUser(_ context.Context, userID string, now time.Time) ([]*session.Session, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	if repository.Err != nil {
		return nil, repository.Err
	}

	sessions := []*session.Session{}
	for _, record := range repository.sessions {
		if record.UserID == userID && record.IsActive && !record.IsExpired(now) {
			clone := *record
			sessions = append(sessions, &clone)
		}
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.After(sessions[j].CreatedAt)
	})
	return sessions, nil
}
