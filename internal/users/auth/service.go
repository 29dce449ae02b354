// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/taibuivan/socialbros/internal/platform/apperr"
	"github.com/taibuivan/socialbros/internal/platform/sec"
	"github.com/taibuivan/socialbros/internal/users/account"
	"github.com/taibuivan/socialbros/internal/users/session"
)

// # Collaborators

// UserFinder resolves a username at sign-in. [account.Service] satisfies it.
type UserFinder interface {
	FindByUsername(context context.Context, username string) (*account.User, error)
}

// TokenSigner issues JWT access tokens. [sec.TokenService] satisfies it.
type TokenSigner interface {
	Sign(subject, username string) (string, error)
}

// # Service Layer

// Service ties credential checks, session creation and token issuance together.
type Service struct {
	users     UserFinder
	sessions  *session.Manager
	signer    TokenSigner
	passwords sec.PasswordVerifier
	logger    *slog.Logger

	decoyOnce sync.Once
	decoy     string
}

// NewService constructs a new [Service].
func NewService(
	users UserFinder,
	sessions *session.Manager,
	signer TokenSigner,
	passwords sec.PasswordVerifier,
	logger *slog.Logger,
) *Service {
	return &Service{
		users:     users,
		sessions:  sessions,
		signer:    signer,
		passwords: passwords,
		logger:    logger,
	}
}

// SignInInput carries the submitted credentials and the caller's request metadata.
type SignInInput struct {
	Username  string
	Password  string
	UserAgent *string
	IPAddress *string
}

// SignInResult holds the two independent credentials issued at sign-in.
type SignInResult struct {
	AccessToken  string
	SessionToken string
	Session      *session.Session
}

/*
SignIn verifies a username and password and issues both credentials.

Description: An unknown username and a wrong password return the same
ErrInvalidCredentials. The password check still runs for unknown users so
the two cases also take comparable time.

Returns:
  - *SignInResult: JWT access token and session token
  - error: ErrInvalidCredentials or wrapped store/signing failures
*/
func (service *Service) SignIn(context context.Context, input SignInInput) (*SignInResult, error) {
	user, err := service.users.FindByUsername(context, input.Username)
	if err != nil && !apperr.IsNotFound(err) {
		return nil, fmt.Errorf("auth_service_find_user_failed: %w", err)
	}

	if user == nil {
		service.passwords.Matches(input.Password, service.decoyPassword())
		service.logger.InfoContext(context, "sign_in_rejected", slog.String("reason", CodeInvalidCredentials))
		return nil, ErrInvalidCredentials
	}

	if !service.passwords.Matches(input.Password, user.Password) {
		service.logger.InfoContext(context, "sign_in_rejected",
			slog.String("reason", CodeInvalidCredentials),
			slog.String("user_id", user.ID),
		)
		return nil, ErrInvalidCredentials
	}

	// Signing has no side effects, so it runs before the session is stored.
	accessToken, err := service.signer.Sign(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("auth_service_sign_failed: %w", err)
	}

	created, err := service.sessions.Create(context, session.CreateParams{
		UserID:    user.ID,
		UserAgent: input.UserAgent,
		IPAddress: input.IPAddress,
	})
	if err != nil {
		return nil, fmt.Errorf("auth_service_session_failed: %w", err)
	}

	service.logger.InfoContext(context, "sign_in_succeeded",
		slog.String("user_id", user.ID),
		slog.String("session_id", created.ID),
	)

	return &SignInResult{
		AccessToken:  accessToken,
		SessionToken: created.Token,
		Session:      created,
	}, nil
}

// SignOut invalidates a session token. Unknown tokens are ignored.
func (service *Service) SignOut(context context.Context, sessionToken string) error {
	if sessionToken == "" {
		return nil
	}
	return service.sessions.Invalidate(context, sessionToken)
}

// SignOutEverywhere invalidates every session of a user.
func (service *Service) SignOutEverywhere(context context.Context, userID string) error {
	if err := service.sessions.InvalidateAllForUser(context, userID); err != nil {
		return err
	}
	service.logger.InfoContext(context, "signed_out_everywhere", slog.String("user_id", userID))
	return nil
}

// ValidateSession exposes [session.Manager.Validate].
func (service *Service) ValidateSession(context context.Context, token string) (*session.Session, error) {
	return service.sessions.Validate(context, token)
}

// RefreshSession exposes [session.Manager.Refresh].
func (service *Service) RefreshSession(context context.Context, token string) (*session.Session, error) {
	return service.sessions.Refresh(context, token)
}

// ListSessions returns the user's sessions that currently validate.
func (service *Service) ListSessions(context context.Context, userID string) ([]*session.Session, error) {
	return service.sessions.ListActiveForUser(context, userID)
}

// decoyPassword returns a stored-form secret no input will match, prepared
// once with the configured verifier.
func (service *Service) decoyPassword() string {
	service.decoyOnce.Do(func() {
		token, err := sec.GenerateSecureToken(16)
		if err != nil {
			return
		}
		if stored, err := service.passwords.Prepare(token); err == nil {
			service.decoy = stored
		}
	})
	return service.decoy
}
