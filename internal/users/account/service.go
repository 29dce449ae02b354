// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/socialbros/internal/platform/sec"
	"github.com/taibuivan/socialbros/internal/platform/validate"
	"github.com/taibuivan/socialbros/pkg/pagination"
	"github.com/taibuivan/socialbros/pkg/uuid"
)

// Field limits for account creation.
const (
	maxUsernameLength = 64
	maxPasswordLength = 72
)

// # Service Layer

// Service orchestrates account creation and lookup.
type Service struct {
	repository Repository
	verifier   sec.PasswordVerifier
	logger     *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repository Repository, verifier sec.PasswordVerifier, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		verifier:   verifier,
		logger:     logger,
	}
}

// CreateInput carries the credentials of a new account.
type CreateInput struct {
	Username string
	Password string
}

/*
Create validates, normalises and stores a new account.

Description: The username is mapped through [NormalizeUsername] and the
password through the configured verifier before anything is persisted.

Returns:
  - *User: The stored account
  - error: VALIDATION_ERROR, CONFLICT (duplicate username) or storage failures
*/
func (service *Service) Create(context context.Context, input CreateInput) (*User, error) {
	v := &validate.Validator{}
	v.Required("username", input.Username).
		MaxLen("username", input.Username, maxUsernameLength).
		Required("password", input.Password).
		Custom("password", len(input.Password) > maxPasswordLength, fmt.Sprintf("Maximum %d bytes", maxPasswordLength))
	if err := v.Err(); err != nil {
		return nil, err
	}

	username, err := NormalizeUsername(input.Username)
	if err != nil {
		return nil, validate.RequiredError("username", "Must be a valid username")
	}

	stored, err := service.verifier.Prepare(input.Password)
	if err != nil {
		return nil, fmt.Errorf("account_service_prepare_password_failed: %w", err)
	}

	now := time.Now().UTC()
	user := &User{
		ID:        uuid.New(),
		Username:  username,
		Password:  stored,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := service.repository.Create(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_created",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil
}

/*
List returns a page of users with its pagination metadata.
*/
func (service *Service) List(context context.Context, params pagination.Params) ([]*User, pagination.Meta, error) {
	users, total, err := service.repository.List(context, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("account_service_list_failed: %w", err)
	}
	return users, pagination.NewMeta(params, total), nil
}

// FindByUsername looks a user up after normalising the supplied name.
// Names that cannot be normalised cannot exist and report NOT_FOUND.
func (service *Service) FindByUsername(context context.Context, username string) (*User, error) {
	normalized, err := NormalizeUsername(username)
	if err != nil {
		return nil, errUnknownUsername
	}
	return service.repository.FindByUsername(context, normalized)
}

// FindByID looks a user up by identifier.
func (service *Service) FindByID(context context.Context, id string) (*User, error) {
	return service.repository.FindByID(context, id)
}
