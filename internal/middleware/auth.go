package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/codeverse-ai/codeverse-backend/internal/services"
	"github.com/google/uuid"
)

type contextKey string

// UserIDKey is the request-context key holding the authenticated user id.
const UserIDKey contextKey = "user_id"

// RequireSession authenticates the request via the session token in
// "Authorization: Bearer <token>" and puts the user id on the context.
func RequireSession(sessions *services.SessionService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				// Browser WebSocket clients cannot set headers; allow the
				// token via query parameter there.
				token = r.URL.Query().Get("token")
			}
			if token == "" {
				unauthorized(w, "Missing session token")
				return
			}

			userID, ok, err := sessions.Validate(r.Context(), token)
			if err != nil || !ok {
				unauthorized(w, "Invalid or expired session")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID reads the authenticated user id set by RequireSession.
func UserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return id, ok
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if strings.HasPrefix(header, prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"success":false,"message":"` + message + `"}`))
}
