// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/socialbros/internal/platform/apperr"
)

/*
TestAppError_SentinelIdentity verifies that package-level errors survive wrapping.
*/
func TestAppError_SentinelIdentity(t *testing.T) {
	sentinel := apperr.UnauthorizedReason("INVALID_SESSION", "Invalid or expired session")
	wrapped := fmt.Errorf("validate: %w", sentinel)

	assert.True(t, errors.Is(wrapped, sentinel))
	assert.False(t, errors.Is(wrapped, apperr.UnauthorizedReason("INVALID_SESSION", "Invalid or expired session")))

	ae := apperr.As(wrapped)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusUnauthorized, ae.HTTPStatus)
	assert.Equal(t, "INVALID_SESSION", ae.Code)
}

/*
TestAppError_InternalHidesCause checks that the cause stays server-side.
*/
func TestAppError_InternalHidesCause(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	ae := apperr.Internal(cause)

	assert.Equal(t, "An unexpected error occurred", ae.Error())
	assert.ErrorIs(t, ae, cause)
}

/*
TestIsNotFound classifies errors by code.
*/
func TestIsNotFound(t *testing.T) {
	assert.True(t, apperr.IsNotFound(fmt.Errorf("lookup: %w", apperr.NotFound("User"))))
	assert.False(t, apperr.IsNotFound(apperr.Conflict("Username is already taken")))
	assert.False(t, apperr.IsNotFound(errors.New("plain")))
	assert.False(t, apperr.IsAppError(errors.New("plain")))
}
