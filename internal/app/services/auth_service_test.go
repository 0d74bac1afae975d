package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assignhub/assignhub/internal/app/models/dto"
	"github.com/assignhub/assignhub/internal/pkg/apperrors"
	"github.com/assignhub/assignhub/internal/pkg/auth"
)

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "test-secret",
		TokenExp:    time.Hour,
		TokenIssuer: "assignhub.test",
	})
}

func TestLogin(t *testing.T) {
	users := newMemUserStore()
	user, _ := seedUser(t, users, "jane@example.com", "s3cret")
	svc := NewAuthService(users, testJWTService(), zerolog.Nop())

	result, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "jane@example.com", Password: "s3cret"})
	require.NoError(t, err)

	assert.Equal(t, user.Email, result.Profile.Email)
	assert.Equal(t, "Jane", result.Profile.FirstName)
	require.NotEmpty(t, result.AccessToken)

	claims, err := testJWTService().ValidateToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
}

func TestLoginMissingCredentials(t *testing.T) {
	svc := NewAuthService(newMemUserStore(), testJWTService(), zerolog.Nop())

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "jane@example.com"})
	assert.ErrorIs(t, err, apperrors.ErrMissingCredentials)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{Password: "s3cret"})
	assert.ErrorIs(t, err, apperrors.ErrMissingCredentials)
}

// Unknown email and wrong password are indistinguishable to the caller.
func TestLoginInvalidCredentials(t *testing.T) {
	users := newMemUserStore()
	seedUser(t, users, "jane@example.com", "s3cret")
	svc := NewAuthService(users, testJWTService(), zerolog.Nop())

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "nobody@example.com", Password: "s3cret"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{Email: "jane@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}
