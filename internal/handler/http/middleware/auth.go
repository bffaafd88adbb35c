package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/pointage-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/pointage-backend-go/internal/pkg/jwt"
)

// AuthRequired rejects requests whose verified token is missing or is not an access token.
func AuthRequired(jwtService jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			if _, err := jwtService.ClaimsFromContext(r.Context()); err != nil {
				response.HandleError(w, err)
				return
			}
			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}
