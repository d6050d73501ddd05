package middleware

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"teamspace/appctx"
	"teamspace/jwtauth"
	"teamspace/services"
)

// SessionAuthMiddleware authenticates requests with the HS256 session
// tokens issued at login, loading the user entity into the request context.
type SessionAuthMiddleware struct {
	usersService services.UsersService
	issuer       *jwtauth.Issuer
}

// NewSessionAuthMiddleware creates a new authentication middleware instance
func NewSessionAuthMiddleware(usersService services.UsersService, issuer *jwtauth.Issuer) *SessionAuthMiddleware {
	return &SessionAuthMiddleware{
		usersService: usersService,
		issuer:       issuer,
	}
}

// WithAuth wraps an HTTP handler with session token authentication
func (m *SessionAuthMiddleware) WithAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Printf("❌ Missing Authorization header")
			m.writeErrorResponse(w, "missing authorization header", http.StatusUnauthorized)
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			log.Printf("❌ Invalid Authorization header format")
			m.writeErrorResponse(w, "invalid authorization header format", http.StatusUnauthorized)
			return
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			log.Printf("❌ Empty bearer token")
			m.writeErrorResponse(w, "empty bearer token", http.StatusUnauthorized)
			return
		}

		claims, err := m.issuer.Verify(token)
		if err != nil {
			log.Printf("❌ Session token verification failed: %v", err)
			m.writeErrorResponse(w, "invalid token", http.StatusUnauthorized)
			return
		}

		maybeUser, err := m.usersService.GetUserByID(r.Context(), claims.UserID())
		if err != nil {
			log.Printf("❌ Failed to load user for session: %v", err)
			m.writeErrorResponse(w, "internal server error", http.StatusInternalServerError)
			return
		}
		if !maybeUser.IsPresent() {
			// Token outlived its user.
			log.Printf("❌ Session references missing user: %s", claims.UserID())
			m.writeErrorResponse(w, "invalid token", http.StatusUnauthorized)
			return
		}

		user := maybeUser.MustGet()
		ctx := appctx.SetUser(r.Context(), user.OmitPassword())
		next(w, r.WithContext(ctx))
	}
}

func (m *SessionAuthMiddleware) writeErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": message}); err != nil {
		log.Printf("❌ Failed to write error response: %v", err)
	}
}
