// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/socialbros/internal/platform/database/schema"
	"github.com/taibuivan/socialbros/internal/platform/dberr"
)

// # Repository Implementation

// PostgresRepository implements [Repository] using pgx against users.account.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new Postgres account repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var (
	selectUserBase = fmt.Sprintf(`SELECT %s FROM %s`, schema.UserAccount.Select(""), schema.UserAccount.Table)

	findUserByUsernameQuery = selectUserBase + fmt.Sprintf(` WHERE %s = $1`, schema.UserAccount.Username)
	findUserByIDQuery       = selectUserBase + fmt.Sprintf(` WHERE %s = $1`, schema.UserAccount.ID)

	insertUserQuery = fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)`,
		schema.UserAccount.Table,
		schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.Password,
		schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
	)

	listUsersQuery = selectUserBase + fmt.Sprintf(` ORDER BY %s ASC, %s ASC LIMIT $1 OFFSET $2`,
		schema.UserAccount.CreatedAt, schema.UserAccount.ID)

	countUsersQuery = fmt.Sprintf(`SELECT COUNT(*) FROM %s`, schema.UserAccount.Table)
)

/*
FindByUsername retrieves a user record from the users.account table.
*/
func (repository *PostgresRepository) FindByUsername(context context.Context, username string) (*User, error) {
	user, err := scanUser(repository.pool.QueryRow(context, findUserByUsernameQuery, username))
	if err != nil {
		return nil, dberr.Wrap(err, "User", "postgres_account_repo_find_by_username_failed")
	}
	return user, nil
}

/*
FindByID retrieves a user record by its primary key.
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*User, error) {
	user, err := scanUser(repository.pool.QueryRow(context, findUserByIDQuery, id))
	if err != nil {
		return nil, dberr.Wrap(err, "User", "postgres_account_repo_find_by_id_failed")
	}
	return user, nil
}

/*
Create inserts a new account. The unique constraint on username surfaces as a conflict.
*/
func (repository *PostgresRepository) Create(context context.Context, user *User) error {
	_, err := repository.pool.Exec(context, insertUserQuery,
		user.ID,
		user.Username,
		user.Password,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "User", "postgres_account_repo_create_failed")
	}
	return nil
}

/*
List returns one page of users and the total number of accounts.
*/
func (repository *PostgresRepository) List(context context.Context, limit, offset int) ([]*User, int, error) {
	var total int
	if err := repository.pool.QueryRow(context, countUsersQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_account_repo_count_failed: %w", err)
	}

	rows, err := repository.pool.Query(context, listUsersQuery, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_account_repo_list_failed: %w", err)
	}
	defer rows.Close()

	users := make([]*User, 0, limit)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_account_repo_scan_failed: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_account_repo_rows_failed: %w", err)
	}

	return users, total, nil
}

// scanUser maps one row in users.account column order.
func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Password,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}
