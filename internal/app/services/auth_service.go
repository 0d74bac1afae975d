package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/assignhub/assignhub/internal/app/models/dto"
	"github.com/assignhub/assignhub/internal/app/repositories"
	"github.com/assignhub/assignhub/internal/pkg/apperrors"
	"github.com/assignhub/assignhub/internal/pkg/auth"
)

// AuthService defines the interface for login operations
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResult, error)
}

// authServiceImpl implements AuthService
type authServiceImpl struct {
	users      repositories.UserStore
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(users repositories.UserStore, jwtService *auth.JWTService, logger zerolog.Logger) AuthService {
	return &authServiceImpl{
		users:      users,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Login validates raw email/password credentials and issues an access token.
// Unknown email and wrong password collapse into one outward error so the
// endpoint cannot be used to enumerate accounts.
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResult, error) {
	if req.Email == "" || req.Password == "" {
		return nil, apperrors.ErrMissingCredentials
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("error looking up user: %w", err)
	}
	if user == nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("error generating access token: %w", err)
	}

	return &dto.LoginResult{
		Profile: dto.UserProfile{
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Email:     user.Email,
		},
		AccessToken: token,
	}, nil
}
