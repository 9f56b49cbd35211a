package dto

import "github.com/prepsphere/backend/internal/app/models"

// UpsertProfileRequest creates or updates the caller's profile
type UpsertProfileRequest struct {
	Degree         string   `json:"degree" binding:"required"`
	Branch         string   `json:"branch" binding:"required"`
	GraduationYear *int     `json:"graduationYear" binding:"omitempty,min=2000,max=2100"`
	CGPA           *float64 `json:"cgpa" binding:"omitempty,min=0,max=10"`
	Phone          *string  `json:"phone"`
	Skills         string   `json:"skills"`
}

// ProfileResponse represents a student profile
type ProfileResponse struct {
	ID               int64         `json:"id"`
	UserID           int64         `json:"userId"`
	Degree           string        `json:"degree"`
	Branch           string        `json:"branch"`
	GraduationYear   *int          `json:"graduationYear,omitempty"`
	CGPA             *float64      `json:"cgpa,omitempty"`
	Phone            *string       `json:"phone,omitempty"`
	Skills           string        `json:"skills"`
	ApprovalStatus   string        `json:"approvalStatus"`
	ApprovalReason   *string       `json:"approvalReason,omitempty"`
	PlacementStatus  string        `json:"placementStatus"`
	PlacementCompany *string       `json:"placementCompany,omitempty"`
	PlacementPackage *float64      `json:"placementPackage,omitempty"`
	OfferLetterURL   *string       `json:"offerLetterUrl,omitempty"`
	Version          int           `json:"version"`
	User             *UserResponse `json:"user,omitempty"`
}

// FromProfile converts a models.Profile to a ProfileResponse
func FromProfile(profile *models.Profile) ProfileResponse {
	if profile == nil {
		return ProfileResponse{}
	}
	resp := ProfileResponse{
		ID:               profile.ID,
		UserID:           profile.UserID,
		Degree:           profile.Degree,
		Branch:           profile.Branch,
		GraduationYear:   profile.GraduationYear,
		CGPA:             profile.CGPA,
		Phone:            profile.Phone,
		Skills:           profile.Skills,
		ApprovalStatus:   string(profile.ApprovalStatus),
		ApprovalReason:   profile.ApprovalReason,
		PlacementStatus:  string(profile.PlacementStatus),
		PlacementCompany: profile.PlacementCompany,
		PlacementPackage: profile.PlacementPackage,
		OfferLetterURL:   profile.OfferLetterURL,
		Version:          profile.Version,
	}
	if profile.User != nil {
		user := FromUser(profile.User)
		resp.User = &user
	}
	return resp
}

// ReviewProfileRequest approves or rejects a profile
type ReviewProfileRequest struct {
	Approve bool    `json:"approve"`
	Reason  *string `json:"reason"`
}

// UpdatePlacementRequest advances a student's placement status
type UpdatePlacementRequest struct {
	Status         string   `json:"status" binding:"required,oneof=NOT_PLACED IN_PROCESS PLACED"`
	Company        *string  `json:"company"`
	Package        *float64 `json:"package" binding:"omitempty,min=0"`
	OfferLetterURL *string  `json:"offerLetterUrl" binding:"omitempty,url"`
	Justification  *string  `json:"justification"`
}

// ProfileListResponse represents a paginated profile listing
type ProfileListResponse struct {
	Profiles   []ProfileResponse `json:"profiles"`
	Pagination PaginationInfo    `json:"pagination"`
}

// ProfileVersionResponse represents a historical profile snapshot
type ProfileVersionResponse struct {
	Version   int    `json:"version"`
	Snapshot  any    `json:"snapshot"`
	ChangedBy *int64 `json:"changedBy,omitempty"`
	CreatedAt string `json:"createdAt"`
}
