package middleware

import (
	"net/http"
	"slices"

	"github.com/attendance-marker/attendance-backend-go/internal/domain/auth"
	"github.com/attendance-marker/attendance-backend-go/internal/handler/http/response"
)

// RequireRole admits callers whose principal carries one of roles.
func RequireRole(roles ...auth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := auth.PrincipalFromContext(r.Context())
			if err != nil {
				response.HandleError(w, err)
				return
			}

			if !slices.Contains(roles, principal.Role) {
				response.HandleError(w, auth.ErrForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
