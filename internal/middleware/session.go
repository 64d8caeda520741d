package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"agency-console/internal/gate"
	"agency-console/internal/models"
)

type contextKey string

const (
	UserKey      contextKey = "user"
	RequestIDKey contextKey = "request_id"
)

// UserFromContext returns the signed-in user attached by RequireSession.
func UserFromContext(ctx context.Context) (models.AuthUser, bool) {
	user, ok := ctx.Value(UserKey).(models.AuthUser)
	return user, ok
}

func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

// RequireSession rejects anonymous requests: pages are redirected to the
// login screen, JSON calls get a 401.
func RequireSession(sess gate.Session) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := sess.Current()
			if !ok {
				if wantsHTML(r) {
					http.Redirect(w, r, gate.LoginPath, http.StatusFound)
					return
				}
				writeError(w, http.StatusUnauthorized, "Please sign in to continue")
				return
			}
			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireScreen limits an endpoint to roles whose shell has the screen.
// Other roles see the same not-found as an unknown path. Must run after
// RequireSession.
func RequireScreen(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok || !gate.ShellFor(gate.StateFor(user.Role)).Allows(key) {
				writeError(w, http.StatusNotFound, "Not found")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole limits an endpoint to the given roles. Must run after
// RequireSession.
func RequireRole(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if ok {
				for _, role := range roles {
					if gate.StateFor(user.Role) == gate.StateFor(role) {
						next.ServeHTTP(w, r)
						return
					}
				}
			}
			writeError(w, http.StatusForbidden, "Forbidden: insufficient permissions")
		})
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
