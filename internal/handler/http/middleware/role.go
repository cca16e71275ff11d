package middleware

import (
	"net/http"
	"slices"

	"github.com/cmlabs-hris/payroll-engine/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

const (
	RoleOwner   = "owner"
	RoleManager = "manager"
	RolePayroll = "payroll"
)

// RequireRole allows the request through when the token's role is one of roles.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Forbidden(w, "Access denied")
				return
			}

			role, ok := claims["role"].(string)
			if !ok || !slices.Contains(roles, role) {
				response.Forbidden(w, "Access denied")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
