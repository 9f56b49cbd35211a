package models

import (
	"time"
)

// ApprovalStatus is the review state of a student profile
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "PENDING"
	ApprovalApproved ApprovalStatus = "APPROVED"
	ApprovalRejected ApprovalStatus = "REJECTED"
)

// approvalTransitions lists the allowed approval state changes. Any edit to
// profile data resets the status to PENDING regardless of this table.
var approvalTransitions = map[ApprovalStatus][]ApprovalStatus{
	ApprovalPending:  {ApprovalApproved, ApprovalRejected},
	ApprovalApproved: {ApprovalPending},
	ApprovalRejected: {ApprovalPending},
}

// CanTransitionTo reports whether the status may move to the target state.
func (s ApprovalStatus) CanTransitionTo(target ApprovalStatus) bool {
	for _, allowed := range approvalTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsValid reports whether the value is a known approval status.
func (s ApprovalStatus) IsValid() bool {
	switch s {
	case ApprovalPending, ApprovalApproved, ApprovalRejected:
		return true
	}
	return false
}

// PlacementStatus tracks a student's placement progress
type PlacementStatus string

const (
	PlacementNotPlaced PlacementStatus = "NOT_PLACED"
	PlacementInProcess PlacementStatus = "IN_PROCESS"
	PlacementPlaced    PlacementStatus = "PLACED"
)

// placementTransitions lists forward moves. Any other change is an override
// and requires a justification.
var placementTransitions = map[PlacementStatus][]PlacementStatus{
	PlacementNotPlaced: {PlacementInProcess, PlacementPlaced},
	PlacementInProcess: {PlacementPlaced},
	PlacementPlaced:    {},
}

// CanTransitionTo reports whether the move is a normal forward transition.
func (s PlacementStatus) CanTransitionTo(target PlacementStatus) bool {
	for _, allowed := range placementTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsValid reports whether the value is a known placement status.
func (s PlacementStatus) IsValid() bool {
	switch s {
	case PlacementNotPlaced, PlacementInProcess, PlacementPlaced:
		return true
	}
	return false
}

// Profile defines the student profile model based on the 'profiles' table
type Profile struct {
	ID               int64           `json:"id" db:"id"`
	UserID           int64           `json:"userId" db:"user_id"`
	Degree           string          `json:"degree" db:"degree" example:"B.Tech"`
	Branch           string          `json:"branch" db:"branch" example:"Computer Science"`
	GraduationYear   *int            `json:"graduationYear,omitempty" db:"graduation_year"`
	CGPA             *float64        `json:"cgpa,omitempty" db:"cgpa"`
	Phone            *string         `json:"phone,omitempty" db:"phone"`
	Skills           string          `json:"skills" db:"skills"`
	ApprovalStatus   ApprovalStatus  `json:"approvalStatus" db:"approval_status"`
	ApprovalReason   *string         `json:"approvalReason,omitempty" db:"approval_reason"`
	PlacementStatus  PlacementStatus `json:"placementStatus" db:"placement_status"`
	PlacementCompany *string         `json:"placementCompany,omitempty" db:"placement_company"`
	PlacementPackage *float64        `json:"placementPackage,omitempty" db:"placement_package"`
	OfferLetterURL   *string         `json:"offerLetterUrl,omitempty" db:"offer_letter_url"`
	Version          int             `json:"version" db:"version"`
	CreatedAt        time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time       `json:"updatedAt" db:"updated_at"`
	User             *User           `json:"user,omitempty"` // Relation, no db tag
}

// ProfileVersion is an immutable snapshot of a profile at a given version
type ProfileVersion struct {
	ID        int64     `json:"id" db:"id"`
	ProfileID int64     `json:"profileId" db:"profile_id"`
	Version   int       `json:"version" db:"version"`
	Snapshot  []byte    `json:"snapshot" db:"snapshot"` // JSONB payload
	ChangedBy *int64    `json:"changedBy,omitempty" db:"changed_by"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
