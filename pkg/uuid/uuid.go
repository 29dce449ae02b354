// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid generates the identifiers used for accounts, sessions and
request correlation.

Version 7 values are preferred because they sort by creation time, which
keeps the primary key indexes of users.account and users.session append-only.
*/
package uuid

import "github.com/google/uuid"

// New returns a UUIDv7 string, falling back to a random v4 value if the
// time-ordered generator fails.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// IsValid reports whether value parses as a UUID of any version.
func IsValid(value string) bool {
	_, err := uuid.Parse(value)
	return err == nil
}
