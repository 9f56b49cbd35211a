package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/prepsphere/backend/internal/app/models"
	"github.com/prepsphere/backend/internal/db"
	"github.com/prepsphere/backend/internal/pkg/apperrors"
)

// TokenRepository handles refresh and password-reset token persistence
type TokenRepository struct {
	db db.DBTX
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db db.DBTX) *TokenRepository {
	return &TokenRepository{db: db}
}

// CreateRefreshToken stores a refresh token for a user
func (r *TokenRepository) CreateRefreshToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO refresh_tokens (user_id, token, expires_at)
		VALUES ($1, $2, $3)`,
		userID, token, expiresAt)
	if err != nil {
		return fmt.Errorf("error creating refresh token: %w", err)
	}
	return nil
}

// GetRefreshToken looks up a refresh token by its value
func (r *TokenRepository) GetRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	rt := &models.RefreshToken{}
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, token, expires_at, created_at
		FROM refresh_tokens
		WHERE token = $1`,
		token).Scan(&rt.ID, &rt.UserID, &rt.Token, &rt.ExpiresAt, &rt.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTokenInvalid
		}
		return nil, fmt.Errorf("error fetching refresh token: %w", err)
	}
	return rt, nil
}

// DeleteRefreshToken removes a single refresh token
func (r *TokenRepository) DeleteRefreshToken(ctx context.Context, token string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM refresh_tokens WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("error deleting refresh token: %w", err)
	}
	return nil
}

// DeleteUserRefreshTokens removes every refresh token of a user
func (r *TokenRepository) DeleteUserRefreshTokens(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM refresh_tokens WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("error deleting user refresh tokens: %w", err)
	}
	return nil
}

// CreatePasswordResetToken stores a single-use reset token
func (r *TokenRepository) CreatePasswordResetToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO password_reset_tokens (user_id, token, expires_at)
		VALUES ($1, $2, $3)`,
		userID, token, expiresAt)
	if err != nil {
		return fmt.Errorf("error creating password reset token: %w", err)
	}
	return nil
}

// GetPasswordResetToken looks up a reset token by its value
func (r *TokenRepository) GetPasswordResetToken(ctx context.Context, token string) (*models.PasswordResetToken, error) {
	prt := &models.PasswordResetToken{}
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, token, expires_at, used, created_at
		FROM password_reset_tokens
		WHERE token = $1`,
		token).Scan(&prt.ID, &prt.UserID, &prt.Token, &prt.ExpiresAt, &prt.Used, &prt.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInvalidPasswordResetToken
		}
		return nil, fmt.Errorf("error fetching password reset token: %w", err)
	}
	return prt, nil
}

// MarkPasswordResetUsed consumes a reset token
func (r *TokenRepository) MarkPasswordResetUsed(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `UPDATE password_reset_tokens SET used = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error marking password reset token used: %w", err)
	}
	return nil
}
