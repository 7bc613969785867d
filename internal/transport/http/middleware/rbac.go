package middleware

import (
	"net/http"

	"ponto/internal/transport/http/api"
)

// RequireRole gates a route on one of the given roles. Admin passes every
// gate.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	allowed := map[string]bool{"admin": true}
	for _, role := range roles {
		allowed[role] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := GetUser(r.Context())
			if !ok {
				api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", GetRequestID(r.Context()))
				return
			}
			if !allowed[user.Role] {
				api.Fail(w, http.StatusForbidden, "forbidden", "insufficient role", GetRequestID(r.Context()))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
