// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

// # Payload Fields

const (
	FieldUsername     = "username"
	FieldPass         = "pass"
	FieldAccessToken  = "access_token"
	FieldSessionToken = "session_token"
)

// # Rejection Reasons

const (
	CodeNoCredential       = "NO_CREDENTIAL"
	CodeInvalidSession     = "INVALID_SESSION"
	CodeInvalidJWT         = "INVALID_JWT"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeSessionRequired    = "SESSION_REQUIRED"
)
