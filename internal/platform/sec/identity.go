// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// Identity is the normalized, request-scoped result of a successful authentication.
//
// SessionID is set only when the request was authenticated with a session token.
type Identity struct {
	Subject   string `json:"sub"`
	Username  string `json:"username"`
	SessionID string `json:"session_id,omitempty"`
}

// ViaSession reports whether the identity came from a session token.
func (identity *Identity) ViaSession() bool {
	return identity != nil && identity.SessionID != ""
}
