package core

import (
	"context"
	"net/http"

	"github.com/joblane/backend/db"
)

// contextKey is a type for context keys
type contextKey string

const userContextKey contextKey = "auth_user"

// UserFromContext returns the authenticated user stored by RequireAuth,
// or nil when the request did not pass through it.
func UserFromContext(ctx context.Context) *db.User {
	user, _ := ctx.Value(userContextKey).(*db.User)
	return user
}

// RequireAuth authenticates the request and stores the user in the
// request context for downstream handlers.
func (a *App) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err, resp := a.Auth().Authenticate(r)
		if err != nil {
			writeJsonError(w, resp)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRoles allows only users whose role is in the given set. Must
// run after RequireAuth; a request without an authenticated user is
// rejected as unauthenticated, a wrong role as forbidden.
func (a *App) RequireRoles(roles ...db.Role) func(http.Handler) http.Handler {
	allowed := make(map[db.Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := UserFromContext(r.Context())
			if user == nil {
				writeJsonError(w, errorNoAuthCredentials)
				return
			}
			if _, ok := allowed[user.Role]; !ok {
				writeJsonError(w, errorForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
