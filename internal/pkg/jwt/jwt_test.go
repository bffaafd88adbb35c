package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/pointage-backend-go/internal/domain/auth"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contextWithToken(t *testing.T, svc Service, claims map[string]interface{}) context.Context {
	t.Helper()
	ja := svc.JWTAuth()
	_, tokenString, err := ja.Encode(claims)
	require.NoError(t, err)

	token, err := jwtauth.VerifyToken(ja, tokenString)
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func TestJWTService_ClaimsFromContext(t *testing.T) {
	svc := NewJWTService("test-secret")

	ctx := contextWithToken(t, svc, map[string]interface{}{
		"user_id":     "user-1",
		"employee_id": "emp-1",
		"role":        "manager",
		"type":        "access",
		"exp":         time.Now().Add(time.Hour).Unix(),
	})

	claims, err := svc.ClaimsFromContext(ctx)

	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "emp-1", claims.EmployeeID)
	assert.Equal(t, auth.RoleManager, claims.Role)
	assert.True(t, claims.Role.CanReviewAttendance())
}

func TestJWTService_RejectsRefreshTokens(t *testing.T) {
	svc := NewJWTService("test-secret")

	ctx := contextWithToken(t, svc, map[string]interface{}{
		"user_id": "user-1",
		"type":    "refresh",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	_, err := svc.ClaimsFromContext(ctx)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestJWTService_NoToken(t *testing.T) {
	svc := NewJWTService("test-secret")

	_, err := svc.ClaimsFromContext(context.Background())
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestJWTService_RejectsForeignSignature(t *testing.T) {
	issuer := NewJWTService("another-secret")
	_, tokenString, err := issuer.JWTAuth().Encode(map[string]interface{}{"type": "access"})
	require.NoError(t, err)

	_, err = jwtauth.VerifyToken(NewJWTService("test-secret").JWTAuth(), tokenString)
	assert.Error(t, err)
}
