package models

import (
	"time"
)

// NotificationCategory groups notifications by origin
type NotificationCategory string

const (
	NotificationGeneral   NotificationCategory = "GENERAL"
	NotificationProfile   NotificationCategory = "PROFILE"
	NotificationDocument  NotificationCategory = "DOCUMENT"
	NotificationJob       NotificationCategory = "JOB"
	NotificationEvent     NotificationCategory = "EVENT"
	NotificationPlacement NotificationCategory = "PLACEMENT"
)

// Notification defines the notification model based on the 'notifications' table
type Notification struct {
	ID        int64                `json:"id" db:"id"`
	UserID    int64                `json:"userId" db:"user_id"`
	Title     string               `json:"title" db:"title"`
	Body      string               `json:"body" db:"body"`
	Category  NotificationCategory `json:"category" db:"category"`
	SenderID  *int64               `json:"senderId,omitempty" db:"sent_by"`
	IsRead    bool                 `json:"isRead" db:"is_read"`
	CreatedAt time.Time            `json:"createdAt" db:"created_at"`
}
