package dto

import "github.com/prepsphere/backend/internal/app/models"

// UserResponse represents basic user information
type UserResponse struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
	IsActive  bool   `json:"isActive"`
}

// FromUser converts a models.User to a UserResponse
func FromUser(user *models.User) UserResponse {
	if user == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      string(user.Role),
		IsActive:  user.IsActive,
	}
}

// UpdateUserRequest represents account detail updates
type UpdateUserRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName"`
}

// SetUserRoleRequest changes a user's role (admin only)
type SetUserRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=STUDENT TPO ADMIN"`
}

// SetUserActiveRequest enables or disables an account (admin only)
type SetUserActiveRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// UserListResponse represents a paginated user listing
type UserListResponse struct {
	Users      []UserResponse `json:"users"`
	Pagination PaginationInfo `json:"pagination"`
}
