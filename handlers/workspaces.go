package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"teamspace/appctx"
	"teamspace/middleware"
	"teamspace/models"
	"teamspace/models/api"
	"teamspace/services"
)

// WorkspacesHandler serves workspace CRUD and member management.
type WorkspacesHandler struct {
	workspacesService services.WorkspacesService
}

func NewWorkspacesHandler(workspacesService services.WorkspacesService) *WorkspacesHandler {
	return &WorkspacesHandler{workspacesService: workspacesService}
}

// SetupEndpoints registers the workspace routes on the router
func (h *WorkspacesHandler) SetupEndpoints(router *mux.Router, authMiddleware *middleware.SessionAuthMiddleware) {
	router.HandleFunc("/api/workspaces", authMiddleware.WithAuth(h.HandleCreateWorkspace)).Methods("POST")
	router.HandleFunc("/api/workspaces", authMiddleware.WithAuth(h.HandleListWorkspaces)).Methods("GET")
	router.HandleFunc("/api/workspaces/{id}", authMiddleware.WithAuth(h.HandleGetWorkspace)).Methods("GET")
	router.HandleFunc("/api/workspaces/{id}", authMiddleware.WithAuth(h.HandleUpdateWorkspace)).Methods("PUT")
	router.HandleFunc("/api/workspaces/{id}", authMiddleware.WithAuth(h.HandleDeleteWorkspace)).
		Methods("DELETE")
	router.HandleFunc("/api/workspaces/{id}/members", authMiddleware.WithAuth(h.HandleListMembers)).
		Methods("GET")
	router.HandleFunc("/api/workspaces/{id}/analytics", authMiddleware.WithAuth(h.HandleAnalytics)).
		Methods("GET")
	router.HandleFunc(
		"/api/workspaces/{id}/members/{memberId}/role",
		authMiddleware.WithAuth(h.HandleChangeMemberRole),
	).Methods("PUT")
}

type WorkspaceRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ChangeMemberRoleRequest struct {
	Role models.RoleName `json:"role"`
}

func (h *WorkspacesHandler) HandleCreateWorkspace(w http.ResponseWriter, r *http.Request) {
	user, ok := appctx.GetUser(r.Context())
	if !ok {
		writeErrorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req WorkspaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	workspace, err := h.workspacesService.CreateWorkspace(r.Context(), user.ID, req.Name, req.Description)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	log.Printf("✅ Created workspace %s for user %s", workspace.ID, user.ID)
	writeJSONResponse(w, http.StatusCreated, api.DomainWorkspaceToAPIWorkspace(workspace))
}

func (h *WorkspacesHandler) HandleListWorkspaces(w http.ResponseWriter, r *http.Request) {
	user, ok := appctx.GetUser(r.Context())
	if !ok {
		writeErrorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	workspaces, err := h.workspacesService.GetWorkspacesForUser(r.Context(), user.ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, api.DomainWorkspacesToAPIWorkspaces(workspaces))
}

func (h *WorkspacesHandler) HandleGetWorkspace(w http.ResponseWriter, r *http.Request) {
	user, ok := appctx.GetUser(r.Context())
	if !ok {
		writeErrorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	workspace, err := h.workspacesService.GetWorkspaceByID(r.Context(), user.ID, mux.Vars(r)["id"])
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, api.DomainWorkspaceToAPIWorkspace(workspace))
}

func (h *WorkspacesHandler) HandleUpdateWorkspace(w http.ResponseWriter, r *http.Request) {
	user, ok := appctx.GetUser(r.Context())
	if !ok {
		writeErrorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req WorkspaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	workspace, err := h.workspacesService.UpdateWorkspace(
		r.Context(), user.ID, mux.Vars(r)["id"], req.Name, req.Description)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, api.DomainWorkspaceToAPIWorkspace(workspace))
}

func (h *WorkspacesHandler) HandleDeleteWorkspace(w http.ResponseWriter, r *http.Request) {
	user, ok := appctx.GetUser(r.Context())
	if !ok {
		writeErrorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	workspaceID := mux.Vars(r)["id"]
	if err := h.workspacesService.DeleteWorkspace(r.Context(), user.ID, workspaceID); err != nil {
		writeDomainError(w, err)
		return
	}

	log.Printf("✅ Deleted workspace %s", workspaceID)
	writeJSONResponse(w, http.StatusOK, map[string]string{"message": "workspace deleted"})
}

func (h *WorkspacesHandler) HandleListMembers(w http.ResponseWriter, r *http.Request) {
	user, ok := appctx.GetUser(r.Context())
	if !ok {
		writeErrorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	members, err := h.workspacesService.GetWorkspaceMembers(r.Context(), user.ID, mux.Vars(r)["id"])
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, api.DomainWorkspaceMembersToAPIWorkspaceMembers(members))
}

func (h *WorkspacesHandler) HandleAnalytics(w http.ResponseWriter, r *http.Request) {
	user, ok := appctx.GetUser(r.Context())
	if !ok {
		writeErrorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	analytics, err := h.workspacesService.GetWorkspaceAnalytics(r.Context(), user.ID, mux.Vars(r)["id"])
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, analytics)
}

func (h *WorkspacesHandler) HandleChangeMemberRole(w http.ResponseWriter, r *http.Request) {
	user, ok := appctx.GetUser(r.Context())
	if !ok {
		writeErrorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req ChangeMemberRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Role == "" {
		writeErrorResponse(w, http.StatusBadRequest, "role is required")
		return
	}

	vars := mux.Vars(r)
	member, err := h.workspacesService.ChangeMemberRole(
		r.Context(), user.ID, vars["id"], vars["memberId"], req.Role)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, api.DomainMemberToAPIMember(member))
}
