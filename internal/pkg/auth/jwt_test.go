package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/prepsphere/backend/internal/app/models"
)

func newTestService(accessExp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret-key",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: time.Hour,
		TokenIssuer:     "prepsphere-test",
	})
}

func testUser() *models.User {
	return &models.User{
		ID:    42,
		Email: "priya@campus.edu",
		Role:  models.RoleStudent,
	}
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	svc := newTestService(time.Minute)

	access, refresh, expiresIn, err := svc.GenerateTokenPair(testUser())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatal("expected both tokens to be issued")
	}
	if expiresIn != 60 {
		t.Errorf("expected expiresIn 60, got %d", expiresIn)
	}

	claims, err := svc.ValidateToken(access)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("expected userID 42, got %d", claims.UserID)
	}
	if claims.Email != "priya@campus.edu" {
		t.Errorf("unexpected email %q", claims.Email)
	}
	if claims.Role != string(models.RoleStudent) {
		t.Errorf("unexpected role %q", claims.Role)
	}
}

func TestValidateExpiredToken(t *testing.T) {
	svc := newTestService(-time.Minute)

	access, _, _, err := svc.GenerateTokenPair(testUser())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = svc.ValidateToken(access)
	if !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	issuer := newTestService(time.Minute)
	access, _, _, err := issuer.GenerateTokenPair(testUser())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	verifier := NewJWTService(JWTConfig{
		SecretKey:       "a-different-secret",
		AccessTokenExp:  time.Minute,
		RefreshTokenExp: time.Hour,
		TokenIssuer:     "prepsphere-test",
	})
	if _, err := verifier.ValidateToken(access); err == nil {
		t.Fatal("expected validation to fail with the wrong secret")
	}
}

func TestValidateGarbageToken(t *testing.T) {
	svc := newTestService(time.Minute)
	if _, err := svc.ValidateToken("not.a.jwt"); err == nil {
		t.Fatal("expected an error for garbage input")
	}
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "valid bearer", header: "Bearer abc123", want: "abc123"},
		{name: "lowercase scheme", header: "bearer abc123", want: "abc123"},
		{name: "empty header", header: "", wantErr: true},
		{name: "missing token", header: "Bearer", wantErr: true},
		{name: "wrong scheme", header: "Basic abc123", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractBearerToken(tt.header)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
