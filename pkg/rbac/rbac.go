// Package rbac provides role-based access control middleware. Roles always
// come from the verified token placed in the context by middleware.Auth.
package rbac

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/kalaghar/pkg/middleware"
	"github.com/shashiranjanraj/kalaghar/pkg/response"
)

func roleSet(roles []string) map[string]bool {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return allowed
}

// HasRole allows only callers holding one of roles.
func HasRole(roles ...string) func(http.Handler) http.Handler {
	allowed := roleSet(roles)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := middleware.RoleFromCtx(r)
			if !ok {
				response.Unauthorized(w, "Unauthorized")
				return
			}
			if !allowed[role] {
				response.Forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SelfOrRole allows the user named by the {param} path segment, or any
// caller holding one of roles.
func SelfOrRole(param string, roles ...string) func(http.Handler) http.Handler {
	allowed := roleSet(roles)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := middleware.ClaimsFromCtx(r)
			if !ok {
				response.Unauthorized(w, "Unauthorized")
				return
			}
			if claims.UserID() != chi.URLParam(r, param) && !allowed[claims.Role] {
				response.Forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
