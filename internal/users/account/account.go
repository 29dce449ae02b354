// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account owns the user records that sessions and tokens refer to.

It is deliberately small: the authentication flow only needs to look a user
up by username or ID, and operators need to create and list users.

# Architecture

  - Entities: User.
  - Contracts: Repository, implemented by PostgresRepository.
  - Service: Creation (with username normalisation and password preparation) and listing.
*/
package account

import (
	"context"
	"time"

	"golang.org/x/text/secure/precis"
)

// # Domain Entities

// User represents a registered account.
//
// Password holds whatever the configured password verifier stored: the
// plain secret in plain mode, a bcrypt hash otherwise. It is never serialised.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// # Repository Contracts

// Repository defines the persistence contract for user accounts.
type Repository interface {
	/*
		FindByUsername retrieves a user by exact (normalised) username.

		Returns:
		  - *User: Loaded account entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		FindByID retrieves a user by identifier.

		Returns:
		  - *User: Loaded account entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		Create persists a new user. A duplicate username yields apperr.Conflict.
	*/
	Create(context context.Context, user *User) error

	/*
		List returns a page of users ordered by creation and the total count.
	*/
	List(context context.Context, limit, offset int) ([]*User, int, error)
}

// # Username Normalisation

// NormalizeUsername maps a username to its canonical stored form.
//
// The PRECIS UsernameCasePreserved profile folds width variants and applies
// NFC, so visually identical names collide on the unique constraint instead
// of producing look-alike accounts. Case is preserved to match exact lookups.
func NormalizeUsername(raw string) (string, error) {
	return precis.UsernameCasePreserved.String(raw)
}
