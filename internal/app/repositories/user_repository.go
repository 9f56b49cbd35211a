package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/prepsphere/backend/internal/app/models"
	"github.com/prepsphere/backend/internal/db"
	"github.com/prepsphere/backend/internal/pkg/apperrors"
	"github.com/prepsphere/backend/internal/pkg/dberrors"
)

// UserRepository handles user database operations
type UserRepository struct {
	db db.DBTX
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db db.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, external_id, email, password_hash, first_name, last_name, role, is_active, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID, &user.ExternalID, &user.Email, &user.PasswordHash,
		&user.FirstName, &user.LastName, &user.Role, &user.IsActive,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error scanning user: %w", err)
	}
	return user, nil
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (external_id, email, password_hash, first_name, last_name, role, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`,
		user.ExternalID, user.Email, user.PasswordHash, user.FirstName, user.LastName,
		user.Role, user.IsActive).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error creating user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return scanUser(r.db.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return scanUser(r.db.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

// GetByExternalID retrieves a user by identity-provider id
func (r *UserRepository) GetByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	return scanUser(r.db.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE external_id = $1`, externalID))
}

// EmailExists checks if an email already exists
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking email: %w", err)
	}
	return exists, nil
}

// Update updates a user's basic details
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET first_name = $1, last_name = $2, updated_at = NOW()
		WHERE id = $3`,
		user.FirstName, user.LastName, user.ID)
	if err != nil {
		return fmt.Errorf("error updating user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// UpdatePassword replaces a user's password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`,
		passwordHash, userID)
	if err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// SetRole changes a user's role
func (r *UserRepository) SetRole(ctx context.Context, userID int64, role models.RoleType) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users SET role = $1, updated_at = NOW() WHERE id = $2`,
		role, userID)
	if err != nil {
		return fmt.Errorf("error updating role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// SetActive enables or disables an account
func (r *UserRepository) SetActive(ctx context.Context, userID int64, isActive bool) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users SET is_active = $1, updated_at = NOW() WHERE id = $2`,
		isActive, userID)
	if err != nil {
		return fmt.Errorf("error updating active flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// UpsertByExternalID inserts or refreshes a user keyed by identity-provider id
func (r *UserRepository) UpsertByExternalID(ctx context.Context, user *models.User) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (external_id, email, first_name, last_name, role, is_active)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		ON CONFLICT (external_id) DO UPDATE
		SET email = EXCLUDED.email,
		    first_name = EXCLUDED.first_name,
		    last_name = EXCLUDED.last_name,
		    updated_at = NOW()
		RETURNING id, created_at, updated_at`,
		user.ExternalID, user.Email, user.FirstName, user.LastName, user.Role).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		return fmt.Errorf("error upserting user: %w", err)
	}
	return nil
}

// List returns users, optionally filtered by role
func (r *UserRepository) List(ctx context.Context, role *models.RoleType, offset uint64, limit int) ([]*models.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE ($1::text IS NULL OR role = $1)
		ORDER BY created_at DESC
		OFFSET $2 LIMIT $3`,
		role, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// Count counts users, optionally filtered by role
func (r *UserRepository) Count(ctx context.Context, role *models.RoleType) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM users WHERE ($1::text IS NULL OR role = $1)`, role).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting users: %w", err)
	}
	return count, nil
}
