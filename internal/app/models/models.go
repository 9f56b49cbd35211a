package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent RoleType = "STUDENT"
	RoleTPO     RoleType = "TPO"
	RoleAdmin   RoleType = "ADMIN"
)

// IsValid reports whether the role is one of the known roles.
func (r RoleType) IsValid() bool {
	switch r {
	case RoleStudent, RoleTPO, RoleAdmin:
		return true
	}
	return false
}

// CanReview reports whether the role may verify documents and approve profiles.
func (r RoleType) CanReview() bool {
	return r == RoleTPO || r == RoleAdmin
}
