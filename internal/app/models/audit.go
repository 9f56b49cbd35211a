package models

import (
	"time"
)

// Audit actions recorded by workflow operations
const (
	AuditActionProfileUpdate     = "PROFILE_UPDATE"
	AuditActionProfileApprove    = "PROFILE_APPROVE"
	AuditActionProfileReject     = "PROFILE_REJECT"
	AuditActionFileUpload        = "FILE_UPLOAD"
	AuditActionFileVerify        = "FILE_VERIFY"
	AuditActionFileReject        = "FILE_REJECT"
	AuditActionApplyJob          = "APPLY_JOB"
	AuditActionApplicationUpdate = "APPLICATION_UPDATE"
	AuditActionEventRegister     = "EVENT_REGISTER"
	AuditActionNotificationSend  = "NOTIFICATION_SEND"
	AuditActionPlacementUpdate   = "PLACEMENT_UPDATE"
	AuditActionPlacementOverride = "PLACEMENT_OVERRIDE"
	AuditActionBroadcast         = "BROADCAST"
	AuditActionUserProvision     = "USER_PROVISION"
	AuditActionUserRoleChange    = "USER_ROLE_CHANGE"
	AuditActionUserStatusChange  = "USER_STATUS_CHANGE"
)

// AuditLog defines an immutable audit trail entry
type AuditLog struct {
	ID         int64     `json:"id" db:"id"`
	ActorID    *int64    `json:"actorId,omitempty" db:"actor_id"`
	Action     string    `json:"action" db:"action"`
	EntityType string    `json:"entityType" db:"entity_type"`
	EntityID   *int64    `json:"entityId,omitempty" db:"entity_id"`
	Details    []byte    `json:"details,omitempty" db:"details"` // JSONB payload
	IP         *string   `json:"ip,omitempty" db:"ip"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}
