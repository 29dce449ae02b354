// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/socialbros/internal/platform/request"
	"github.com/taibuivan/socialbros/internal/platform/respond"
	"github.com/taibuivan/socialbros/pkg/pagination"
)

// Handler implements the HTTP layer for user accounts.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] with the user endpoints.
//
// Creation is public; listing is wrapped by the given authentication middleware.
func (handler *Handler) Routes(authenticate func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.createUser)
	router.With(authenticate).Get("/", handler.listUsers)

	return router
}

// createUserRequest defines the expected JSON payload for account creation.
type createUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

/*
POST /users.

Response:
  - 201: User
  - 400: ErrInvalidJSON/Validation
  - 409: Username already taken
*/
func (handler *Handler) createUser(writer http.ResponseWriter, request *http.Request) {
	var input createUserRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.Create(request.Context(), CreateInput{
		Username: input.Username,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

/*
GET /users?page=&limit=.

Response:
  - 200: Paginated list of User
  - 401: Authentication required
*/
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	users, meta, err := handler.accountService.List(request.Context(), pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, meta)
}
