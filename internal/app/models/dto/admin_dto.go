package dto

import (
	"encoding/json"
	"time"

	"github.com/prepsphere/backend/internal/app/models"
)

// AnalyticsResponse aggregates portal-wide placement statistics
type AnalyticsResponse struct {
	TotalStudents    int64            `json:"totalStudents"`
	ApprovedProfiles int64            `json:"approvedProfiles"`
	PendingProfiles  int64            `json:"pendingProfiles"`
	PlacedStudents   int64            `json:"placedStudents"`
	OpenJobs         int64            `json:"openJobs"`
	TotalApplied     int64            `json:"totalApplications"`
	UpcomingEvents   int64            `json:"upcomingEvents"`
	PlacementsByYear map[int]int64    `json:"placementsByYear"`
	ApplicationsBy   map[string]int64 `json:"applicationsByStatus"`
}

// AuditLogResponse represents an audit trail entry
type AuditLogResponse struct {
	ID         int64     `json:"id"`
	ActorID    *int64    `json:"actorId,omitempty"`
	Action     string    `json:"action"`
	EntityType string    `json:"entityType"`
	EntityID   *int64    `json:"entityId,omitempty"`
	Details    any       `json:"details,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// FromAuditLog converts a models.AuditLog to an AuditLogResponse
func FromAuditLog(entry *models.AuditLog) AuditLogResponse {
	if entry == nil {
		return AuditLogResponse{}
	}
	return AuditLogResponse{
		ID:         entry.ID,
		ActorID:    entry.ActorID,
		Action:     entry.Action,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		Details:    rawJSON(entry.Details),
		CreatedAt:  entry.CreatedAt,
	}
}

// rawJSON passes stored JSONB through without re-encoding
func rawJSON(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return json.RawMessage(b)
}

// AuditLogListResponse represents a paginated audit trail listing
type AuditLogListResponse struct {
	Entries    []AuditLogResponse `json:"entries"`
	Pagination PaginationInfo     `json:"pagination"`
}
