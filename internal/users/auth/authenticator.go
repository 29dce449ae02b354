// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth authenticates requests and signs users in.

Two credentials are accepted: an opaque session token (X-Session-Token
header or session_token cookie) checked against the session store, and a
JWT bearer token checked by signature alone.

# Dispatch

The session token always wins. When one is present its validation is final
and a failing session is never retried as a JWT. Only a request with no
session token at all is checked for a bearer token.
*/
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/taibuivan/socialbros/internal/platform/apperr"
	"github.com/taibuivan/socialbros/internal/platform/ctxkey"
	"github.com/taibuivan/socialbros/internal/platform/ctxutil"
	"github.com/taibuivan/socialbros/internal/platform/respond"
	"github.com/taibuivan/socialbros/internal/platform/sec"
	"github.com/taibuivan/socialbros/internal/users/session"
)

// # Collaborators

// SessionValidator validates session tokens. [session.Manager] satisfies it.
type SessionValidator interface {
	Validate(context context.Context, token string) (*session.Session, error)
}

// TokenVerifier verifies JWT access tokens. [sec.TokenService] satisfies it.
type TokenVerifier interface {
	Verify(token string) (*sec.AccessClaims, error)
}

// Result is the outcome of a successful authentication.
//
// Session is nil when the request was authenticated with a JWT.
type Result struct {
	Identity *sec.Identity
	Session  *session.Session
}

// # Authenticator

// Authenticator decides whether a request carries a valid credential.
type Authenticator struct {
	sessions   SessionValidator
	tokens     TokenVerifier
	extractors []Extractor
	logger     *slog.Logger
}

// NewAuthenticator creates an [Authenticator] using [DefaultExtractors].
func NewAuthenticator(sessions SessionValidator, tokens TokenVerifier, logger *slog.Logger) *Authenticator {
	return &Authenticator{
		sessions:   sessions,
		tokens:     tokens,
		extractors: DefaultExtractors(),
		logger:     logger,
	}
}

/*
Authenticate extracts the first candidate credential and checks it.

Returns:
  - *Result: The identity (and session, for session tokens)
  - error: ErrNoCredential, ErrInvalidSession, ErrInvalidJWT, or a wrapped
    store failure that the host should report as a server error
*/
func (authenticator *Authenticator) Authenticate(context context.Context, request *http.Request) (*Result, error) {
	extractor, token, found := authenticator.candidate(request)
	if !found {
		return nil, ErrNoCredential
	}

	if extractor.Kind == CredentialSession {
		return authenticator.authenticateSession(context, token)
	}
	return authenticator.authenticateJWT(token)
}

// candidate applies the extractors in order; the first hit wins.
func (authenticator *Authenticator) candidate(request *http.Request) (Extractor, string, bool) {
	for _, extractor := range authenticator.extractors {
		if token, ok := extractor.Extract(request); ok {
			return extractor, token, true
		}
	}
	return Extractor{}, "", false
}

func (authenticator *Authenticator) authenticateSession(context context.Context, token string) (*Result, error) {
	validated, err := authenticator.sessions.Validate(context, token)
	if err != nil {
		return nil, fmt.Errorf("auth_session_validate_failed: %w", err)
	}
	if validated == nil {
		return nil, ErrInvalidSession
	}

	identity := &sec.Identity{
		Subject:   validated.UserID,
		SessionID: validated.ID,
	}
	if validated.User != nil {
		identity.Username = validated.User.Username
	}

	return &Result{Identity: identity, Session: validated}, nil
}

func (authenticator *Authenticator) authenticateJWT(token string) (*Result, error) {
	claims, err := authenticator.tokens.Verify(token)
	if err != nil {
		return nil, ErrInvalidJWT
	}
	return &Result{Identity: claims.Identity()}, nil
}

// # Middleware

// Middleware rejects unauthenticated requests and binds the identity, and
// the session when there is one, into the request context.
func (authenticator *Authenticator) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			result, err := authenticator.Authenticate(request.Context(), request)
			if err != nil {
				if appError := apperr.As(err); appError != nil {
					ctxutil.GetLogger(request.Context()).DebugContext(request.Context(), "authentication_rejected",
						slog.String("reason", appError.Code),
					)
				} else {
					authenticator.logger.ErrorContext(request.Context(), "authentication_store_failed",
						slog.Any("error", err),
					)
				}
				respond.Error(writer, request, err)
				return
			}

			ctx := ctxutil.WithIdentity(request.Context(), result.Identity)
			if result.Session != nil {
				ctx = WithSession(ctx, result.Session)
			}

			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// # Context Helpers

// WithSession returns a context carrying the session that authenticated the request.
func WithSession(ctx context.Context, current *session.Session) context.Context {
	return context.WithValue(ctx, ctxkey.KeySession, current)
}

// SessionFromContext returns the authenticating session, or nil for JWT and
// anonymous requests.
func SessionFromContext(ctx context.Context) *session.Session {
	current, _ := ctx.Value(ctxkey.KeySession).(*session.Session)
	return current
}
