package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"teamspace/appctx"
	"teamspace/middleware"
	"teamspace/models/api"
	"teamspace/services"
)

// UsersHandler serves the authenticated user's profile and
// current-workspace switching.
type UsersHandler struct {
	usersService services.UsersService
}

func NewUsersHandler(usersService services.UsersService) *UsersHandler {
	return &UsersHandler{usersService: usersService}
}

// SetupEndpoints registers the user routes on the router
func (h *UsersHandler) SetupEndpoints(router *mux.Router, authMiddleware *middleware.SessionAuthMiddleware) {
	router.HandleFunc("/api/users/me", authMiddleware.WithAuth(h.HandleGetProfile)).Methods("GET")
	router.HandleFunc("/api/users/me/workspace", authMiddleware.WithAuth(h.HandleSetCurrentWorkspace)).
		Methods("PUT")
}

func (h *UsersHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := appctx.GetUser(r.Context())
	if !ok {
		writeErrorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	writeJSONResponse(w, http.StatusOK, api.DomainUserToAPIUser(user))
}

type SetCurrentWorkspaceRequest struct {
	WorkspaceID string `json:"workspace_id"`
}

func (h *UsersHandler) HandleSetCurrentWorkspace(w http.ResponseWriter, r *http.Request) {
	user, ok := appctx.GetUser(r.Context())
	if !ok {
		writeErrorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req SetCurrentWorkspaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.WorkspaceID == "" {
		writeErrorResponse(w, http.StatusBadRequest, "workspace_id is required")
		return
	}

	updated, err := h.usersService.SetCurrentWorkspace(r.Context(), user.ID, req.WorkspaceID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	log.Printf("✅ User %s switched to workspace %s", user.ID, req.WorkspaceID)
	writeJSONResponse(w, http.StatusOK, api.DomainUserToAPIUser(updated))
}
