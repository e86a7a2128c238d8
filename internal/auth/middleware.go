package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
)

type contextKey string

const userIDKey contextKey = "user_id"

// UserID extracts the authenticated user's id from a request context.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// WithUserID returns a context carrying the authenticated user id.
// Exposed for handler tests.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// Middleware verifies the Bearer token and injects the user id into
// the request context. Requests without a valid token get 401.
func Middleware(secretKey []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				w.Header().Set("WWW-Authenticate", `Bearer realm="ore"`)
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			userID, err := GetUserIDFromToken(token, secretKey)
			if err != nil {
				slog.DebugContext(r.Context(), "Token rejected", "error", err)
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}
