package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/example/afrimarket/internal/domain/user"
)

// respondError writes a JSON error response
func respondError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// SessionProvider exposes the single active session.
type SessionProvider interface {
	Session() (user.User, bool)
}

type contextKey string

const (
	UserContextKey contextKey = "user"
)

// RequireSession rejects requests made while nobody is logged in and puts
// the session holder in the request context.
func RequireSession(sessions SessionProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := sessions.Session()
			if !ok {
				respondError(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), UserContextKey, u)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalSession adds the session holder to the context when there is one.
func OptionalSession(sessions SessionProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if u, ok := sessions.Session(); ok {
				r = r.WithContext(context.WithValue(r.Context(), UserContextKey, u))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole checks if the session holder has one of the required roles.
// It must run after RequireSession.
func RequireRole(roles ...user.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := GetUserFromContext(r.Context())
			if !ok {
				respondError(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			for _, role := range roles {
				if u.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			respondError(w, "forbidden", http.StatusForbidden)
		})
	}
}

// GetUserFromContext retrieves the session holder from the request context
func GetUserFromContext(ctx context.Context) (user.User, bool) {
	u, ok := ctx.Value(UserContextKey).(user.User)
	return u, ok
}

// GetUserID is a helper to get just the user ID from context
func GetUserID(ctx context.Context) string {
	u, ok := GetUserFromContext(ctx)
	if !ok {
		return ""
	}
	return u.ID
}
