// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// UserSessionTable represents the 'users.session' table
type UserSessionTable struct {
	Table     string
	ID        string
	UserID    string
	Token     string
	ExpiresAt string
	UserAgent string
	IPAddress string
	IsActive  string
	CreatedAt string
	UpdatedAt string
}

// UserSession is the schema definition for users.session
var UserSession = UserSessionTable{
	Table:     "users.session",
	ID:        "id",
	UserID:    "userid",
	Token:     "token",
	ExpiresAt: "expiresat",
	UserAgent: "useragent",
	IPAddress: "ipaddress",
	IsActive:  "isactive",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// Columns returns all standard column names
func (t UserSessionTable) Columns() []string {
	return []string{
		t.ID, t.UserID, t.Token, t.ExpiresAt, t.UserAgent, t.IPAddress, t.IsActive, t.CreatedAt, t.UpdatedAt,
	}
}

// Select returns the column list prefixed with alias, ready for a SELECT clause.
func (t UserSessionTable) Select(alias string) string {
	return qualify(alias, t.Columns())
}
