// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"
	"strings"

	"github.com/taibuivan/socialbros/internal/platform/constants"
)

// CredentialKind tells the authenticator how to check a candidate token.
type CredentialKind int

const (
	// CredentialSession is an opaque session token checked against the store.
	CredentialSession CredentialKind = iota + 1

	// CredentialBearer is a JWT checked by signature.
	CredentialBearer
)

func (kind CredentialKind) String() string {
	switch kind {
	case CredentialSession:
		return "session"
	case CredentialBearer:
		return "jwt"
	default:
		return "unknown"
	}
}

// Extractor pulls one kind of candidate token out of a request.
type Extractor struct {
	Name    string
	Kind    CredentialKind
	Extract func(request *http.Request) (string, bool)
}

// DefaultExtractors returns the fixed precedence: session header, then
// session cookie, then the bearer Authorization header.
func DefaultExtractors() []Extractor {
	return []Extractor{
		{Name: "session_header", Kind: CredentialSession, Extract: FromSessionHeader},
		{Name: "session_cookie", Kind: CredentialSession, Extract: FromSessionCookie},
		{Name: "bearer_header", Kind: CredentialBearer, Extract: FromBearerHeader},
	}
}

// FromSessionHeader reads X-Session-Token. When the header is repeated the
// first value wins.
func FromSessionHeader(request *http.Request) (string, bool) {
	token := request.Header.Get(constants.HeaderXSessionToken)
	return token, token != ""
}

// FromSessionCookie reads the session_token cookie.
func FromSessionCookie(request *http.Request) (string, bool) {
	cookie, err := request.Cookie(constants.SessionCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// FromBearerHeader reads "Authorization: Bearer <token>". The header must
// split on single spaces into exactly two parts and the scheme is
// case-sensitive; anything else yields no candidate.
func FromBearerHeader(request *http.Request) (string, bool) {
	parts := strings.Split(request.Header.Get(constants.HeaderAuthorization), " ")
	if len(parts) != 2 || parts[0] != constants.BearerScheme || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
