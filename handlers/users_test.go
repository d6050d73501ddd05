package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"teamspace/core"
	"teamspace/jwtauth"
	"teamspace/middleware"
	"teamspace/models"
	"teamspace/models/api"
	userssvc "teamspace/services/users"
	"teamspace/testutils"
)

func newTestUsersRouter(t *testing.T) (*userssvc.MockUsersService, *jwtauth.Issuer, *mux.Router) {
	t.Helper()

	mockService := new(userssvc.MockUsersService)
	issuer := jwtauth.NewIssuer("test-session-secret", time.Hour)
	authMiddleware := middleware.NewSessionAuthMiddleware(mockService, issuer)

	router := mux.NewRouter()
	NewUsersHandler(mockService).SetupEndpoints(router, authMiddleware)
	return mockService, issuer, router
}

func authorizedRequest(t *testing.T, issuer *jwtauth.Issuer, userID, method, path string, body []byte) *http.Request {
	t.Helper()

	token, err := issuer.Issue(userID)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestHandleGetProfile(t *testing.T) {
	mockService, issuer, router := newTestUsersRouter(t)

	user := testutils.NewTestUser()
	mockService.On("GetUserByID", mock.Anything, user.ID).Return(mo.Some(user), nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authorizedRequest(t, issuer, user.ID, "GET", "/api/users/me", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var got api.UserModel
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, user.Email, got.Email)
}

func TestHandleGetProfile_MissingToken(t *testing.T) {
	_, _, router := newTestUsersRouter(t)

	req := httptest.NewRequest("GET", "/api/users/me", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandleGetProfile_TokenForDeletedUser(t *testing.T) {
	mockService, issuer, router := newTestUsersRouter(t)

	mockService.On("GetUserByID", mock.Anything, "u_gone").Return(mo.None[*models.User](), nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authorizedRequest(t, issuer, "u_gone", "GET", "/api/users/me", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandleSetCurrentWorkspace(t *testing.T) {
	mockService, issuer, router := newTestUsersRouter(t)

	user := testutils.NewTestUser()
	workspace := testutils.NewTestWorkspace(user.ID)
	updated := *user
	updated.CurrentWorkspaceID = &workspace.ID

	mockService.On("GetUserByID", mock.Anything, user.ID).Return(mo.Some(user), nil)
	mockService.On("SetCurrentWorkspace", mock.Anything, user.ID, workspace.ID).Return(&updated, nil)

	body, _ := json.Marshal(SetCurrentWorkspaceRequest{WorkspaceID: workspace.ID})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authorizedRequest(t, issuer, user.ID, "PUT", "/api/users/me/workspace", body))

	require.Equal(t, http.StatusOK, rec.Code)

	var got api.UserModel
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.NotNil(t, got.CurrentWorkspaceID)
	assert.Equal(t, workspace.ID, *got.CurrentWorkspaceID)
	mockService.AssertExpectations(t)
}

func TestHandleSetCurrentWorkspace_NotAMember(t *testing.T) {
	mockService, issuer, router := newTestUsersRouter(t)

	user := testutils.NewTestUser()
	mockService.On("GetUserByID", mock.Anything, user.ID).Return(mo.Some(user), nil)
	mockService.On("SetCurrentWorkspace", mock.Anything, user.ID, "ws_other").
		Return(nil, core.NewUnauthorizedError("user is not a member of this workspace"))

	body, _ := json.Marshal(SetCurrentWorkspaceRequest{WorkspaceID: "ws_other"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authorizedRequest(t, issuer, user.ID, "PUT", "/api/users/me/workspace", body))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandleSetCurrentWorkspace_MissingWorkspaceID(t *testing.T) {
	mockService, issuer, router := newTestUsersRouter(t)

	user := testutils.NewTestUser()
	mockService.On("GetUserByID", mock.Anything, user.ID).Return(mo.Some(user), nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authorizedRequest(t, issuer, user.ID, "PUT", "/api/users/me/workspace", []byte(`{}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockService.AssertNotCalled(t, "SetCurrentWorkspace", mock.Anything, mock.Anything, mock.Anything)
}
