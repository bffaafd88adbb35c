package jwt

import (
	"context"
	"time"

	"github.com/cmlabs-hris/pointage-backend-go/internal/domain/auth"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Tokens are issued by the identity service; this side only verifies them.
type Service interface {
	JWTAuth() *jwtauth.JWTAuth
	ClaimsFromContext(ctx context.Context) (auth.Claims, error)
}

type JWTService struct {
	tokenAuth *jwtauth.JWTAuth
}

func NewJWTService(secretKey string) Service {
	return &JWTService{
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// ClaimsFromContext reads the claims jwtauth.Verifier stored on the request
// context. Only access tokens are accepted.
func (j *JWTService) ClaimsFromContext(ctx context.Context) (auth.Claims, error) {
	token, claims, err := jwtauth.FromContext(ctx)
	if err != nil || token == nil {
		return auth.Claims{}, auth.ErrInvalidToken
	}

	if tokenType, _ := claims["type"].(string); tokenType != "access" {
		return auth.Claims{}, auth.ErrInvalidToken
	}

	userID, _ := claims["user_id"].(string)
	employeeID, _ := claims["employee_id"].(string)
	role, _ := claims["role"].(string)

	return auth.Claims{
		UserID:     userID,
		EmployeeID: employeeID,
		Role:       auth.Role(role),
	}, nil
}
