package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/prepsphere/backend/internal/app/models"
	"github.com/prepsphere/backend/internal/app/models/dto"
	"github.com/prepsphere/backend/internal/app/repositories"
	"github.com/prepsphere/backend/internal/pkg/apperrors"
	"github.com/prepsphere/backend/internal/pkg/auth"
	"github.com/prepsphere/backend/internal/pkg/logger"
)

const passwordResetTokenTTL = 30 * time.Minute

// AuthService defines authentication operations
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	Logout(ctx context.Context, userID int64) error
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type authServiceImpl struct {
	stores     repositories.Stores
	jwtService *auth.JWTService
}

// NewAuthService creates a new AuthService
func NewAuthService(stores repositories.Stores, jwtService *auth.JWTService) AuthService {
	return &authServiceImpl{
		stores:     stores,
		jwtService: jwtService,
	}
}

// Register creates a student account and returns a token pair
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	exists, err := s.stores.Users.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: &hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         models.RoleStudent,
		IsActive:     true,
	}
	if err := s.stores.Users.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info().Int64("user_id", user.ID).Str("email", user.Email).Msg("User registered")

	return s.issueTokens(ctx, user)
}

// Login verifies credentials and returns a token pair
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.stores.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if user.PasswordHash == nil || !auth.CheckPassword(*user.PasswordHash, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user)
}

func (s *authServiceImpl) issueTokens(ctx context.Context, user *models.User) (*dto.AuthResponse, error) {
	accessToken, refreshToken, expiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, err
	}

	expiry := s.jwtService.GetRefreshTokenExpiry()
	if err := s.stores.Tokens.CreateRefreshToken(ctx, user.ID, refreshToken, expiry); err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken:  accessToken,
			TokenType:    "Bearer",
			ExpiresIn:    expiresIn,
			RefreshToken: refreshToken,
		},
		User: dto.FromUser(user),
	}, nil
}

// RefreshToken rotates a refresh token and returns a fresh pair
func (s *authServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	stored, err := s.stores.Tokens.GetRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	if time.Now().After(stored.ExpiresAt) {
		_ = s.stores.Tokens.DeleteRefreshToken(ctx, refreshToken)
		return nil, apperrors.ErrTokenExpired
	}

	user, err := s.stores.Users.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	// One-time use: the old token is replaced
	if err := s.stores.Tokens.DeleteRefreshToken(ctx, refreshToken); err != nil {
		return nil, err
	}

	resp, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}
	return &resp.Token, nil
}

// Logout revokes all of the user's refresh tokens
func (s *authServiceImpl) Logout(ctx context.Context, userID int64) error {
	return s.stores.Tokens.DeleteUserRefreshTokens(ctx, userID)
}

// ForgotPassword issues a reset token. The token is returned to the caller
// layer for delivery; unknown emails produce no error to avoid enumeration.
func (s *authServiceImpl) ForgotPassword(ctx context.Context, email string) (string, error) {
	user, err := s.stores.Users.GetByEmail(ctx, email)
	if err != nil {
		logger.Debug().Str("email", email).Msg("Password reset requested for unknown email")
		return "", nil
	}

	token := uuid.New().String()
	expiresAt := time.Now().Add(passwordResetTokenTTL)
	if err := s.stores.Tokens.CreatePasswordResetToken(ctx, user.ID, token, expiresAt); err != nil {
		return "", err
	}

	logger.Info().Int64("user_id", user.ID).Msg("Password reset token issued")
	return token, nil
}

// ResetPassword consumes a reset token and sets a new password
func (s *authServiceImpl) ResetPassword(ctx context.Context, token, newPassword string) error {
	stored, err := s.stores.Tokens.GetPasswordResetToken(ctx, token)
	if err != nil {
		return err
	}

	if stored.Used || time.Now().After(stored.ExpiresAt) {
		return apperrors.ErrInvalidPasswordResetToken
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.stores.Users.UpdatePassword(ctx, stored.UserID, hash); err != nil {
		return err
	}
	if err := s.stores.Tokens.MarkPasswordResetUsed(ctx, stored.ID); err != nil {
		return err
	}

	// Force re-login everywhere
	return s.stores.Tokens.DeleteUserRefreshTokens(ctx, stored.UserID)
}
