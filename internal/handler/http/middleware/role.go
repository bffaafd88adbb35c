package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/pointage-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/pointage-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/pointage-backend-go/internal/pkg/jwt"
)

// RequireManager requires manager or owner role
func RequireManager(jwtService jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := jwtService.ClaimsFromContext(r.Context())
			if err != nil {
				response.HandleError(w, err)
				return
			}

			if !claims.Role.CanReviewAttendance() {
				response.HandleError(w, auth.ErrManagerAccessRequired)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
