package middleware

import (
	"net/http"

	"github.com/attendance-marker/attendance-backend-go/internal/domain/auth"
	"github.com/attendance-marker/attendance-backend-go/internal/handler/http/response"
	"github.com/attendance-marker/attendance-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired rejects requests without a verified access token and stores
// the caller's principal in the request context. It expects jwtauth.Verifier
// to run first.
func AuthRequired(jwtService jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			principal, err := jwtService.PrincipalFromClaims(claims)
			if err != nil {
				response.HandleError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), principal)))
		}
		return http.HandlerFunc(hfn)
	}
}
