// Copyright (c) 2026 Aegis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/aegis/internal/platform/middleware"
	requestutil "github.com/taibuivan/aegis/internal/platform/request"
	"github.com/taibuivan/aegis/internal/platform/respond"
	"github.com/taibuivan/aegis/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements the self-service account HTTP endpoints.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] configured with account-specific routes.
//
// # Endpoints
//   - GET    /me                : Current user's private profile.
//   - GET    /me/sessions       : Active device sessions.
//   - DELETE /me/sessions       : Revoke every session except the current one.
//   - DELETE /me/sessions/{id}  : Revoke one session by ID.
//
// Every route requires authentication.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequireAuth)

	router.Get("/me", handler.getProfile)
	router.Get("/me/sessions", handler.listSessions)
	router.Delete("/me/sessions", handler.revokeOtherSessions)
	router.Delete("/me/sessions/{sessionID}", handler.revokeSession)

	return router
}

/*
GetProfile returns the authenticated user's private profile.

GET /api/v1/account/me

Response:
  - 200: User: The full private profile (email, role, flags)
  - 401: UNAUTHORIZED: Missing or invalid access token
*/
func (handler *Handler) getProfile(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetProfile(request.Context(), claims.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
ListSessions returns the user's active device sessions.

GET /api/v1/account/me/sessions

Description: Lists every live session ordered oldest first; the one backing
this request is flagged via its token's session claim.

Response:
  - 200: []SessionInfo: Active sessions
  - 401: UNAUTHORIZED: Missing or invalid access token
*/
func (handler *Handler) listSessions(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	sessions, err := handler.accountService.ListSessions(request.Context(), claims.UserID, claims.SessionID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, sessions)
}

/*
RevokeSession terminates one of the user's sessions by ID.

DELETE /api/v1/account/me/sessions/{sessionID}

Response:
  - 204: No Content: Session revoked
  - 403: FORBIDDEN: Session belongs to a different user
  - 404: NOT_FOUND: Unknown session
*/
func (handler *Handler) revokeSession(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	sessionID := requestutil.ID(request, "sessionID")

	validator := &validate.Validator{}
	validator.Required("session_id", sessionID).UUID("session_id", sessionID)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.RevokeSession(request.Context(), claims.UserID, sessionID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
RevokeOtherSessions terminates every session except the current one.

DELETE /api/v1/account/me/sessions

Description: "Log out everywhere else" — the session behind this request
survives, everything else is revoked.

Response:
  - 204: No Content: Other sessions revoked
  - 401: UNAUTHORIZED: Missing or invalid access token
*/
func (handler *Handler) revokeOtherSessions(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.RevokeOtherSessions(request.Context(), claims.UserID, claims.SessionID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
