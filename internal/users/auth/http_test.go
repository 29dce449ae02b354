// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/socialbros/internal/users/auth"
)

func newRouter(f *fixture) http.Handler {
	return auth.NewHandler(f.service, f.authenticator, auth.CookieConfig{}).Routes()
}

func do(router http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, path, strings.NewReader(body))
	for name, value := range headers {
		request.Header.Set(name, value)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func TestHandler_Login(t *testing.T) {
	f := newFixture(t)
	router := newRouter(f)

	recorder := do(router, http.MethodPost, "/login", `{"username":"alice","pass":"s3cret"}`,
		map[string]string{"User-Agent": "curl/8.0", "X-Real-IP": "198.51.100.7"})
	require.Equal(t, http.StatusOK, recorder.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Len(t, body, 2)
	assert.NotEmpty(t, body["access_token"])
	assert.Regexp(t, hex64, body["session_token"])

	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "session_token", cookies[0].Name)
	assert.Equal(t, body["session_token"], cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)

	stored, ok := f.repository.Stored(body["session_token"])
	require.True(t, ok)
	assert.Equal(t, "curl/8.0", *stored.UserAgent)
	assert.Equal(t, "198.51.100.7", *stored.IPAddress)
}

func TestHandler_Login_Rejections(t *testing.T) {
	f := newFixture(t)
	router := newRouter(f)

	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"wrong_password", `{"username":"alice","pass":"nope"}`, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"unknown_user", `{"username":"mallory","pass":"s3cret"}`, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"missing_pass", `{"username":"alice"}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"bad_json", `{"username":`, http.StatusBadRequest, "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := do(router, http.MethodPost, "/login", tt.body, nil)
			assert.Equal(t, tt.status, recorder.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body["code"])
		})
	}
}

func TestHandler_Me(t *testing.T) {
	f := newFixture(t)
	router := newRouter(f)
	signedIn := f.signIn(t)

	recorder := do(router, http.MethodGet, "/me", "", map[string]string{"x-session-token": signedIn.SessionToken})
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "1", body.Data["sub"])
	assert.Equal(t, "alice", body.Data["username"])
	assert.Equal(t, signedIn.Session.ID, body.Data["session_id"])

	recorder = do(router, http.MethodGet, "/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestHandler_Refresh(t *testing.T) {
	f := newFixture(t)
	router := newRouter(f)
	signedIn := f.signIn(t)

	recorder := do(router, http.MethodPost, "/refresh", "", map[string]string{"Authorization": "Bearer " + signedIn.AccessToken})
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "SESSION_REQUIRED")

	recorder = do(router, http.MethodPost, "/refresh", "", map[string]string{"x-session-token": signedIn.SessionToken})
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, signedIn.SessionToken, body.Data["session_token"])
	assert.NotEmpty(t, body.Data["expires_at"])
}

func TestHandler_Logout(t *testing.T) {
	f := newFixture(t)
	router := newRouter(f)
	signedIn := f.signIn(t)
	headers := map[string]string{"x-session-token": signedIn.SessionToken}

	recorder := do(router, http.MethodPost, "/logout", "", headers)
	require.Equal(t, http.StatusNoContent, recorder.Code)

	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)

	recorder = do(router, http.MethodGet, "/me", "", headers)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "INVALID_SESSION")
}

func TestHandler_LogoutAll(t *testing.T) {
	f := newFixture(t)
	router := newRouter(f)
	first := f.signIn(t)
	second := f.signIn(t)

	recorder := do(router, http.MethodPost, "/logout-all", "", map[string]string{"Authorization": "Bearer " + first.AccessToken})
	require.Equal(t, http.StatusNoContent, recorder.Code)

	for _, token := range []string{first.SessionToken, second.SessionToken} {
		recorder = do(router, http.MethodGet, "/me", "", map[string]string{"x-session-token": token})
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	}
}

func TestHandler_Sessions(t *testing.T) {
	f := newFixture(t)
	router := newRouter(f)
	current := f.signIn(t)
	f.signIn(t)

	recorder := do(router, http.MethodGet, "/sessions", "", map[string]string{"x-session-token": current.SessionToken})
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data []map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Len(t, body.Data, 2)

	currentCount := 0
	for _, item := range body.Data {
		assert.NotContains(t, item, "token")
		if item["is_current"] == true {
			currentCount++
			assert.Equal(t, current.Session.ID, item["id"])
		}
	}
	assert.Equal(t, 1, currentCount)
}
