package handlers

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/mux"

	"teamspace/clients/google"
	"teamspace/jwtauth"
	"teamspace/models"
	"teamspace/models/api"
	"teamspace/services"
)

const oauthStateCookie = "oauth_state"

// GoogleOAuthClient is the slice of the Google client the auth handler needs.
type GoogleOAuthClient interface {
	AuthURL(ctx context.Context, state string) (string, error)
	Exchange(ctx context.Context, code string) (*google.Profile, error)
}

// AuthHandler serves registration, local login, and the Google OAuth flow.
type AuthHandler struct {
	authService         services.AuthService
	issuer              *jwtauth.Issuer
	googleClient        GoogleOAuthClient
	frontendCallbackURL string
}

func NewAuthHandler(
	authService services.AuthService,
	issuer *jwtauth.Issuer,
	googleClient GoogleOAuthClient,
	frontendCallbackURL string,
) *AuthHandler {
	return &AuthHandler{
		authService:         authService,
		issuer:              issuer,
		googleClient:        googleClient,
		frontendCallbackURL: frontendCallbackURL,
	}
}

// SetupEndpoints registers the auth routes on the router
func (h *AuthHandler) SetupEndpoints(router *mux.Router) {
	router.HandleFunc("/api/auth/register", h.HandleRegister).Methods("POST")
	router.HandleFunc("/api/auth/login", h.HandleLogin).Methods("POST")
	router.HandleFunc("/api/auth/logout", h.HandleLogout).Methods("POST")
	router.HandleFunc("/api/auth/google", h.HandleGoogleRedirect).Methods("GET")
	router.HandleFunc("/api/auth/google/callback", h.HandleGoogleCallback).Methods("GET")
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string         `json:"token"`
	User  *api.UserModel `json:"user"`
}

func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	log.Printf("🔐 Registration request received from %s", r.RemoteAddr)

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.authService.RegisterUser(r.Context(), models.RegisterUserRequest{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	log.Printf("✅ Registered user %s with workspace %s", result.UserID, result.WorkspaceID)
	writeJSONResponse(w, http.StatusCreated, result)
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	log.Printf("🔐 Login request received from %s", r.RemoteAddr)

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.authService.VerifyUser(r.Context(), models.VerifyUserRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	token, err := h.issuer.Issue(user.ID)
	if err != nil {
		log.Printf("❌ Failed to issue session token: %v", err)
		writeErrorResponse(w, http.StatusInternalServerError, "internal server error")
		return
	}

	log.Printf("✅ User %s logged in", user.ID)
	writeJSONResponse(w, http.StatusOK, LoginResponse{Token: token, User: api.DomainUserToAPIUser(user)})
}

// HandleLogout exists for API symmetry: sessions are stateless tokens, so
// the client discards its copy and the server has nothing to forget.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func (h *AuthHandler) HandleGoogleRedirect(w http.ResponseWriter, r *http.Request) {
	log.Printf("🔐 Google sign-in redirect requested from %s", r.RemoteAddr)

	if h.googleClient == nil {
		writeErrorResponse(w, http.StatusNotFound, "google sign-in is not enabled")
		return
	}

	state, err := newOAuthState()
	if err != nil {
		log.Printf("❌ Failed to generate OAuth state: %v", err)
		writeErrorResponse(w, http.StatusInternalServerError, "internal server error")
		return
	}

	authURL, err := h.googleClient.AuthURL(r.Context(), state)
	if err != nil {
		log.Printf("❌ Failed to build Google auth URL: %v", err)
		writeErrorResponse(w, http.StatusInternalServerError, "internal server error")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/api/auth/google",
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, authURL, http.StatusFound)
}

func (h *AuthHandler) HandleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	log.Printf("🔐 Google callback received from %s", r.RemoteAddr)

	if h.googleClient == nil {
		writeErrorResponse(w, http.StatusNotFound, "google sign-in is not enabled")
		return
	}

	cookie, err := r.Cookie(oauthStateCookie)
	if err != nil || cookie.Value == "" || cookie.Value != r.URL.Query().Get("state") {
		log.Printf("❌ OAuth state mismatch")
		h.redirectWithStatus(w, r, "failure")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		log.Printf("❌ Google callback without code: %s", r.URL.Query().Get("error"))
		h.redirectWithStatus(w, r, "failure")
		return
	}

	profile, err := h.googleClient.Exchange(r.Context(), code)
	if err != nil {
		log.Printf("❌ Google code exchange failed: %v", err)
		h.redirectWithStatus(w, r, "failure")
		return
	}

	var picture *string
	if profile.Picture != "" {
		picture = &profile.Picture
	}

	user, err := h.authService.LoginOrCreateAccount(r.Context(), models.ExternalAccountRequest{
		Provider:    models.ProviderGoogle,
		ProviderID:  profile.Sub,
		DisplayName: profile.Name,
		Email:       profile.Email,
		Picture:     picture,
	})
	if err != nil {
		log.Printf("❌ Provisioning failed for Google sign-in: %v", err)
		h.redirectWithStatus(w, r, "failure")
		return
	}

	token, err := h.issuer.Issue(user.ID)
	if err != nil {
		log.Printf("❌ Failed to issue session token: %v", err)
		h.redirectWithStatus(w, r, "failure")
		return
	}

	log.Printf("✅ Google sign-in completed for user %s", user.ID)
	redirect := fmt.Sprintf("%s?status=success&token=%s", h.frontendCallbackURL, url.QueryEscape(token))
	http.Redirect(w, r, redirect, http.StatusFound)
}

func (h *AuthHandler) redirectWithStatus(w http.ResponseWriter, r *http.Request, status string) {
	http.Redirect(w, r, fmt.Sprintf("%s?status=%s", h.frontendCallbackURL, status), http.StatusFound)
}

func newOAuthState() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
