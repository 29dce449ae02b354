// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/socialbros/internal/platform/constants"
	"github.com/taibuivan/socialbros/internal/platform/middleware"
	requestutil "github.com/taibuivan/socialbros/internal/platform/request"
	"github.com/taibuivan/socialbros/internal/platform/respond"
	"github.com/taibuivan/socialbros/internal/platform/validate"
	"github.com/taibuivan/socialbros/internal/users/session"
	"github.com/taibuivan/socialbros/pkg/pointer"
)

// # Definitions & Constructors

// CookieConfig controls the session cookie set at sign-in.
type CookieConfig struct {
	Secure bool
}

// Handler implements the authentication endpoints.
type Handler struct {
	authService   *Service
	authenticator *Authenticator
	cookie        CookieConfig
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service, authenticator *Authenticator, cookie CookieConfig) *Handler {
	return &Handler{authService: service, authenticator: authenticator, cookie: cookie}
}

// Routes returns a [chi.Router] configured with authentication routes.
//
// # Endpoints
//   - POST /login       : Issues a JWT and a session token.
//   - POST /logout      : Invalidates the calling session.
//   - POST /logout-all  : Invalidates every session of the caller.
//   - POST /refresh     : Extends the calling session.
//   - GET  /me          : Returns the caller's identity.
//   - GET  /sessions    : Lists the caller's live sessions.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/login", handler.login)

	router.Group(func(r chi.Router) {
		r.Use(handler.authenticator.Middleware())
		r.Post("/logout", handler.logout)
		r.Post("/logout-all", handler.logoutAll)
		r.Post("/refresh", handler.refresh)
		r.Get("/me", handler.me)
		r.Get("/sessions", handler.listSessions)
	})

	return router
}

// # Request & Response Payloads

type signInRequest struct {
	Username string `json:"username"`
	Pass     string `json:"pass"`
}

type signInResponse struct {
	AccessToken  string `json:"access_token"`
	SessionToken string `json:"session_token"`
}

type refreshResponse struct {
	SessionToken string    `json:"session_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type sessionView struct {
	*session.Session
	IsCurrent bool `json:"is_current"`
}

/*
POST /auth/login.

Description: The body is returned bare, without the data envelope, and the
session token is also set as an HttpOnly cookie for browser clients.

Request:
  - Body: signInRequest (username, pass)

Response:
  - 200: signInResponse
  - 400: ErrInvalidJSON/Validation
  - 401: INVALID_CREDENTIALS
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input signInRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		Required(FieldPass, input.Pass)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.authService.SignIn(request.Context(), SignInInput{
		Username:  input.Username,
		Password:  input.Pass,
		UserAgent: pointer.NonEmpty(request.UserAgent()),
		IPAddress: pointer.NonEmpty(middleware.RealIP(request)),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setSessionCookie(writer, result.SessionToken, result.Session.ExpiresAt)

	respond.JSON(writer, http.StatusOK, signInResponse{
		AccessToken:  result.AccessToken,
		SessionToken: result.SessionToken,
	})
}

/*
POST /auth/logout.

Description: Invalidates the session the request authenticated with. A
JWT-authenticated call has no session to end and only clears the cookie.

Response:
  - 204: No Content
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	if current := SessionFromContext(request.Context()); current != nil {
		if err := handler.authService.SignOut(request.Context(), current.Token); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	handler.clearSessionCookie(writer)
	respond.NoContent(writer)
}

/*
POST /auth/logout-all.

Response:
  - 204: No Content
*/
func (handler *Handler) logoutAll(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.SignOutEverywhere(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.clearSessionCookie(writer)
	respond.NoContent(writer)
}

/*
POST /auth/refresh.

Response:
  - 200: refreshResponse
  - 401: SESSION_REQUIRED when authenticated with a JWT
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	current := SessionFromContext(request.Context())
	if current == nil {
		respond.Error(writer, request, ErrSessionRequired)
		return
	}

	refreshed, err := handler.authService.RefreshSession(request.Context(), current.Token)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Signed out concurrently between authentication and refresh.
	if refreshed == nil {
		respond.Error(writer, request, ErrInvalidSession)
		return
	}

	handler.setSessionCookie(writer, refreshed.Token, refreshed.ExpiresAt)

	respond.OK(writer, refreshResponse{
		SessionToken: refreshed.Token,
		ExpiresAt:    refreshed.ExpiresAt,
	})
}

/*
GET /auth/me.

Response:
  - 200: Identity {sub, username, session_id?}
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, identity)
}

/*
GET /auth/sessions.

Response:
  - 200: []sessionView, newest first
*/
func (handler *Handler) listSessions(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	sessions, err := handler.authService.ListSessions(request.Context(), identity.Subject)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	views := make([]sessionView, len(sessions))
	for index, item := range sessions {
		views[index] = sessionView{Session: item, IsCurrent: item.ID == identity.SessionID}
	}

	respond.OK(writer, views)
}

// # Cookie Helpers

func (handler *Handler) setSessionCookie(writer http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    token,
		Path:     constants.SessionCookiePath,
		Expires:  expiresAt,
		Secure:   handler.cookie.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (handler *Handler) clearSessionCookie(writer http.ResponseWriter) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     constants.SessionCookiePath,
		MaxAge:   -1,
		Secure:   handler.cookie.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
