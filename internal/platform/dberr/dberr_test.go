// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/socialbros/internal/platform/apperr"
	"github.com/taibuivan/socialbros/internal/platform/dberr"
)

/*
TestWrap classifies the storage errors repositories can encounter.
*/
func TestWrap(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "User", "postgres_user_repo_find_failed"))

	notFound := dberr.Wrap(fmt.Errorf("scan: %w", pgx.ErrNoRows), "User", "postgres_user_repo_find_failed")
	assert.True(t, apperr.IsNotFound(notFound))

	duplicate := &pgconn.PgError{Code: "23505", ConstraintName: "account_username_key"}
	conflict := dberr.Wrap(duplicate, "User", "postgres_user_repo_create_failed")
	ae := apperr.As(conflict)
	if assert.NotNil(t, ae) {
		assert.Equal(t, "CONFLICT", ae.Code)
	}
	assert.True(t, dberr.IsUniqueViolation(conflict))

	outage := errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")
	wrapped := dberr.Wrap(outage, "User", "postgres_user_repo_find_failed")
	assert.False(t, apperr.IsAppError(wrapped))
	assert.ErrorIs(t, wrapped, outage)
	assert.Contains(t, wrapped.Error(), "postgres_user_repo_find_failed")
}
