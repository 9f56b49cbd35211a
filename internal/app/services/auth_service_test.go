package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prepsphere/backend/internal/app/models"
	"github.com/prepsphere/backend/internal/app/models/dto"
	"github.com/prepsphere/backend/internal/app/repositories"
	"github.com/prepsphere/backend/internal/pkg/apperrors"
	"github.com/prepsphere/backend/internal/pkg/auth"
)

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret-key",
		AccessTokenExp:  time.Minute,
		RefreshTokenExp: time.Hour,
		TokenIssuer:     "prepsphere-test",
	})
}

func authStores(users *mockUserRepo, tokens *mockTokenRepo) repositories.Stores {
	if tokens == nil {
		tokens = &mockTokenRepo{
			createRefreshFn: func(_ context.Context, _ int64, _ string, _ time.Time) error { return nil },
		}
	}
	return repositories.Stores{Users: users, Tokens: tokens}
}

func TestRegister(t *testing.T) {
	users := &mockUserRepo{
		emailExistsFn: func(_ context.Context, _ string) (bool, error) { return false, nil },
		createFn: func(_ context.Context, u *models.User) error {
			u.ID = 42
			return nil
		},
	}
	svc := NewAuthService(authStores(users, nil), testJWTService())

	got, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:     "priya@campus.edu",
		Password:  "changeme123",
		FirstName: "Priya",
		LastName:  "Sharma",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.User.Role != string(models.RoleStudent) {
		t.Errorf("expected STUDENT role, got %s", got.User.Role)
	}
	if got.Token.AccessToken == "" || got.Token.RefreshToken == "" {
		t.Error("expected a token pair")
	}
	if got.Token.TokenType != "Bearer" {
		t.Errorf("expected Bearer token type, got %s", got.Token.TokenType)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := &mockUserRepo{
		emailExistsFn: func(_ context.Context, _ string) (bool, error) { return true, nil },
	}
	svc := NewAuthService(authStores(users, nil), testJWTService())

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:     "priya@campus.edu",
		Password:  "changeme123",
		FirstName: "Priya",
	})
	if !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func activeUser(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	return &models.User{
		ID:           42,
		Email:        "priya@campus.edu",
		PasswordHash: &hash,
		FirstName:    "Priya",
		Role:         models.RoleStudent,
		IsActive:     true,
	}
}

func TestLogin(t *testing.T) {
	user := activeUser(t, "changeme123")
	users := &mockUserRepo{
		getByEmailFn: func(_ context.Context, _ string) (*models.User, error) { return user, nil },
	}
	svc := NewAuthService(authStores(users, nil), testJWTService())

	got, err := svc.Login(context.Background(), &dto.LoginRequest{Email: user.Email, Password: "changeme123"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.User.ID != 42 {
		t.Errorf("expected user 42, got %d", got.User.ID)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	user := activeUser(t, "changeme123")
	users := &mockUserRepo{
		getByEmailFn: func(_ context.Context, _ string) (*models.User, error) { return user, nil },
	}
	svc := NewAuthService(authStores(users, nil), testJWTService())

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: user.Email, Password: "wrong"})
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	users := &mockUserRepo{
		getByEmailFn: func(_ context.Context, _ string) (*models.User, error) {
			return nil, apperrors.ErrUserNotFound
		},
	}
	svc := NewAuthService(authStores(users, nil), testJWTService())

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "nobody@campus.edu", Password: "x"})
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginDisabledAccount(t *testing.T) {
	user := activeUser(t, "changeme123")
	user.IsActive = false
	users := &mockUserRepo{
		getByEmailFn: func(_ context.Context, _ string) (*models.User, error) { return user, nil },
	}
	svc := NewAuthService(authStores(users, nil), testJWTService())

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: user.Email, Password: "changeme123"})
	if !errors.Is(err, apperrors.ErrAccountDisabled) {
		t.Fatalf("expected ErrAccountDisabled, got %v", err)
	}
}

func TestLoginWebhookProvisionedUserHasNoPassword(t *testing.T) {
	user := activeUser(t, "changeme123")
	user.PasswordHash = nil
	users := &mockUserRepo{
		getByEmailFn: func(_ context.Context, _ string) (*models.User, error) { return user, nil },
	}
	svc := NewAuthService(authStores(users, nil), testJWTService())

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: user.Email, Password: "changeme123"})
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRefreshTokenRotates(t *testing.T) {
	user := activeUser(t, "changeme123")
	deleted := ""
	tokens := &mockTokenRepo{
		getRefreshFn: func(_ context.Context, token string) (*models.RefreshToken, error) {
			return &models.RefreshToken{UserID: 42, Token: token, ExpiresAt: time.Now().Add(time.Hour)}, nil
		},
		deleteRefreshFn: func(_ context.Context, token string) error {
			deleted = token
			return nil
		},
		createRefreshFn: func(_ context.Context, _ int64, _ string, _ time.Time) error { return nil },
	}
	users := &mockUserRepo{
		getByIDFn: func(_ context.Context, _ int64) (*models.User, error) { return user, nil },
	}
	svc := NewAuthService(authStores(users, tokens), testJWTService())

	got, err := svc.RefreshToken(context.Background(), "old-refresh-token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != "old-refresh-token" {
		t.Error("expected the old refresh token to be revoked")
	}
	if got.AccessToken == "" || got.RefreshToken == "" {
		t.Error("expected a fresh token pair")
	}
}

func TestRefreshTokenExpired(t *testing.T) {
	tokens := &mockTokenRepo{
		getRefreshFn: func(_ context.Context, token string) (*models.RefreshToken, error) {
			return &models.RefreshToken{UserID: 42, Token: token, ExpiresAt: time.Now().Add(-time.Minute)}, nil
		},
		deleteRefreshFn: func(_ context.Context, _ string) error { return nil },
	}
	svc := NewAuthService(authStores(&mockUserRepo{}, tokens), testJWTService())

	_, err := svc.RefreshToken(context.Background(), "stale-token")
	if !errors.Is(err, apperrors.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestForgotPasswordUnknownEmailIsSilent(t *testing.T) {
	users := &mockUserRepo{
		getByEmailFn: func(_ context.Context, _ string) (*models.User, error) {
			return nil, apperrors.ErrUserNotFound
		},
	}
	svc := NewAuthService(authStores(users, nil), testJWTService())

	token, err := svc.ForgotPassword(context.Background(), "nobody@campus.edu")
	if err != nil {
		t.Fatalf("expected no error for unknown email, got %v", err)
	}
	if token != "" {
		t.Error("expected no token for unknown email")
	}
}

func TestResetPassword(t *testing.T) {
	passwordUpdated := false
	markedUsed := false
	revoked := false
	tokens := &mockTokenRepo{
		getPasswordResetFn: func(_ context.Context, token string) (*models.PasswordResetToken, error) {
			return &models.PasswordResetToken{ID: 5, UserID: 42, Token: token, ExpiresAt: time.Now().Add(time.Minute)}, nil
		},
		markResetUsedFn: func(_ context.Context, id int64) error {
			markedUsed = id == 5
			return nil
		},
		deleteUserRefreshFn: func(_ context.Context, userID int64) error {
			revoked = userID == 42
			return nil
		},
	}
	users := &mockUserRepo{
		updatePasswordFn: func(_ context.Context, userID int64, hash string) error {
			passwordUpdated = userID == 42 && hash != ""
			return nil
		},
	}
	svc := NewAuthService(authStores(users, tokens), testJWTService())

	if err := svc.ResetPassword(context.Background(), "reset-token", "newpassword1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !passwordUpdated {
		t.Error("expected the password to be updated")
	}
	if !markedUsed {
		t.Error("expected the reset token to be marked used")
	}
	if !revoked {
		t.Error("expected all refresh tokens to be revoked")
	}
}

func TestResetPasswordUsedToken(t *testing.T) {
	tokens := &mockTokenRepo{
		getPasswordResetFn: func(_ context.Context, token string) (*models.PasswordResetToken, error) {
			return &models.PasswordResetToken{ID: 5, UserID: 42, Token: token, Used: true, ExpiresAt: time.Now().Add(time.Minute)}, nil
		},
	}
	svc := NewAuthService(authStores(&mockUserRepo{}, tokens), testJWTService())

	err := svc.ResetPassword(context.Background(), "reset-token", "newpassword1")
	if !errors.Is(err, apperrors.ErrInvalidPasswordResetToken) {
		t.Fatalf("expected ErrInvalidPasswordResetToken, got %v", err)
	}
}
