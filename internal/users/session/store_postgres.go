// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/socialbros/internal/platform/database/schema"
	"github.com/taibuivan/socialbros/internal/platform/dberr"
	"github.com/taibuivan/socialbros/internal/users/account"
)

// # Repository Implementation

// PostgresRepository implements [Repository] on the users.session table.
//
// Each method issues exactly one statement, so per-record atomicity comes
// from Postgres itself.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new Postgres session repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var (
	sessionTable = schema.UserSession
	accountTable = schema.UserAccount

	insertSessionQuery = fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		sessionTable.Table, sessionTable.Select(""),
	)

	findActiveSessionQuery = fmt.Sprintf(`
		SELECT %s, %s
		FROM %s s
		JOIN %s a ON a.%s = s.%s
		WHERE s.%s = $1 AND s.%s`,
		sessionTable.Select("s"), accountTable.Select("a"),
		sessionTable.Table, accountTable.Table,
		accountTable.ID, sessionTable.UserID,
		sessionTable.Token, sessionTable.IsActive,
	)

	deactivateSessionQuery = fmt.Sprintf(`
		UPDATE %s SET %s = FALSE, %s = $2
		WHERE %s = $1 AND %s`,
		sessionTable.Table, sessionTable.IsActive, sessionTable.UpdatedAt,
		sessionTable.Token, sessionTable.IsActive,
	)

	deactivateUserSessionsQuery = fmt.Sprintf(`
		UPDATE %s SET %s = FALSE, %s = $2
		WHERE %s = $1 AND %s`,
		sessionTable.Table, sessionTable.IsActive, sessionTable.UpdatedAt,
		sessionTable.UserID, sessionTable.IsActive,
	)

	updateExpiryQuery = fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3
		WHERE %s = $1`,
		sessionTable.Table, sessionTable.ExpiresAt, sessionTable.UpdatedAt,
		sessionTable.Token,
	)

	deleteSessionQuery = fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		sessionTable.Table, sessionTable.Token)

	deleteExpiredQuery = fmt.Sprintf(`DELETE FROM %s WHERE %s < $1`,
		sessionTable.Table, sessionTable.ExpiresAt)

	listUserSessionsQuery = fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1 AND %s AND %s > $2
		ORDER BY %s DESC`,
		sessionTable.Select(""), sessionTable.Table,
		sessionTable.UserID, sessionTable.IsActive, sessionTable.ExpiresAt,
		sessionTable.CreatedAt,
	)
)

/*
Create inserts a new session row.
*/
func (repository *PostgresRepository) Create(context context.Context, session *Session) error {
	_, err := repository.pool.Exec(context, insertSessionQuery,
		session.ID,
		session.UserID,
		session.Token,
		session.ExpiresAt,
		session.UserAgent,
		session.IPAddress,
		session.IsActive,
		session.CreatedAt,
		session.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Session", "postgres_session_repo_create_failed")
	}
	return nil
}

/*
FindActiveByToken loads an active session joined with its owner.
*/
func (repository *PostgresRepository) FindActiveByToken(context context.Context, token string) (*Session, error) {
	session := &Session{User: &account.User{}}
	user := session.User

	err := repository.pool.QueryRow(context, findActiveSessionQuery, token).Scan(
		&session.ID, &session.UserID, &session.Token, &session.ExpiresAt,
		&session.UserAgent, &session.IPAddress, &session.IsActive,
		&session.CreatedAt, &session.UpdatedAt,
		&user.ID, &user.Username, &user.Password, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("postgres_session_repo_find_failed: %w", err)
	}

	return session, nil
}

/*
Deactivate flips isactive for one active token in a single conditional update.
*/
func (repository *PostgresRepository) Deactivate(context context.Context, token string, at time.Time) error {
	if _, err := repository.pool.Exec(context, deactivateSessionQuery, token, at); err != nil {
		return fmt.Errorf("postgres_session_repo_deactivate_failed: %w", err)
	}
	return nil
}

/*
DeactivateAllForUser flips isactive for every active session of a user.
*/
func (repository *PostgresRepository) DeactivateAllForUser(context context.Context, userID string, at time.Time) error {
	if _, err := repository.pool.Exec(context, deactivateUserSessionsQuery, userID, at); err != nil {
		return fmt.Errorf("postgres_session_repo_deactivate_all_failed: %w", err)
	}
	return nil
}

/*
UpdateExpiry stores a new expiry for the session identified by token.
*/
func (repository *PostgresRepository) UpdateExpiry(context context.Context, token string, expiresAt, at time.Time) error {
	if _, err := repository.pool.Exec(context, updateExpiryQuery, token, expiresAt, at); err != nil {
		return fmt.Errorf("postgres_session_repo_update_expiry_failed: %w", err)
	}
	return nil
}

/*
Delete removes the row for token.
*/
func (repository *PostgresRepository) Delete(context context.Context, token string) error {
	if _, err := repository.pool.Exec(context, deleteSessionQuery, token); err != nil {
		return fmt.Errorf("postgres_session_repo_delete_failed: %w", err)
	}
	return nil
}

/*
DeleteExpiredBefore removes every row whose expiry precedes cutoff.
*/
func (repository *PostgresRepository) DeleteExpiredBefore(context context.Context, cutoff time.Time) (int64, error) {
	tag, err := repository.pool.Exec(context, deleteExpiredQuery, cutoff)
	if err != nil {
		return 0, fmt.Errorf("postgres_session_repo_delete_expired_failed: %w", err)
	}
	return tag.RowsAffected(), nil
}

/*
ListActiveByUser returns the sessions of a user that still validate at now.
*/
func (repository *PostgresRepository) ListActiveByUser(context context.Context, userID string, now time.Time) ([]*Session, error) {
	rows, err := repository.pool.Query(context, listUserSessionsQuery, userID, now)
	if err != nil {
		return nil, fmt.Errorf("postgres_session_repo_list_failed: %w", err)
	}
	defer rows.Close()

	sessions := []*Session{}
	for rows.Next() {
		session := &Session{}
		if err := rows.Scan(
			&session.ID, &session.UserID, &session.Token, &session.ExpiresAt,
			&session.UserAgent, &session.IPAddress, &session.IsActive,
			&session.CreatedAt, &session.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres_session_repo_scan_failed: %w", err)
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_session_repo_rows_failed: %w", err)
	}

	return sessions, nil
}
