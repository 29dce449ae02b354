// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "github.com/taibuivan/socialbros/internal/platform/apperr"

// Rejections are terminal: the caller has to authenticate again. Compare
// with errors.Is; the messages are safe to show to clients.
var (
	// ErrNoCredential means neither a session token nor a bearer token was found.
	ErrNoCredential = apperr.UnauthorizedReason(CodeNoCredential, "No authentication token provided")

	// ErrInvalidSession means a session token was supplied but is unknown, inactive or expired.
	ErrInvalidSession = apperr.UnauthorizedReason(CodeInvalidSession, "Invalid or expired session")

	// ErrInvalidJWT means a bearer token was supplied but failed verification.
	ErrInvalidJWT = apperr.UnauthorizedReason(CodeInvalidJWT, "Invalid or expired JWT token")

	// ErrInvalidCredentials covers both an unknown username and a wrong password.
	ErrInvalidCredentials = apperr.UnauthorizedReason(CodeInvalidCredentials, "Invalid username or password")

	// ErrSessionRequired rejects session-only operations attempted with a JWT.
	ErrSessionRequired = apperr.UnauthorizedReason(CodeSessionRequired, "This operation requires a session token")
)
