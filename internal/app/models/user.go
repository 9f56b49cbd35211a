package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID           int64     `json:"id" db:"id" example:"1"`
	ExternalID   *string   `json:"externalId,omitempty" db:"external_id"` // Identity-provider id (nullable)
	Email        string    `json:"email" db:"email" example:"student@campus.edu"`
	PasswordHash *string   `json:"-" db:"password_hash"` // Nullable for webhook-provisioned users
	FirstName    string    `json:"firstName" db:"first_name" example:"Priya"`
	LastName     string    `json:"lastName" db:"last_name" example:"Sharma"`
	Role         RoleType  `json:"role" db:"role" example:"STUDENT"`
	IsActive     bool      `json:"isActive" db:"is_active" example:"true"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// RefreshToken is an opaque server-side token backing JWT refresh
type RefreshToken struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Token     string    `json:"-" db:"token"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// PasswordResetToken is a single-use token for the password reset flow
type PasswordResetToken struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Token     string    `json:"-" db:"token"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
	Used      bool      `json:"used" db:"used"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
