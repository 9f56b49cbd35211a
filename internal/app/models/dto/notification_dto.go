package dto

import (
	"time"

	"github.com/prepsphere/backend/internal/app/models"
)

// NotificationResponse represents a single notification
type NotificationResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Category  string    `json:"category"`
	SenderID  *int64    `json:"senderId,omitempty"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// FromNotification converts a models.Notification to a NotificationResponse
func FromNotification(n *models.Notification) NotificationResponse {
	if n == nil {
		return NotificationResponse{}
	}
	return NotificationResponse{
		ID:        n.ID,
		Title:     n.Title,
		Body:      n.Body,
		Category:  string(n.Category),
		SenderID:  n.SenderID,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

// NotificationListResponse represents a paginated notification listing
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int64                  `json:"unreadCount"`
	Pagination    PaginationInfo         `json:"pagination"`
}

// SendNotificationRequest sends a notification to one user, addressed by
// user id or by email
type SendNotificationRequest struct {
	UserID   *int64  `json:"userId"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Title    string  `json:"title" binding:"required"`
	Body     string  `json:"body" binding:"required"`
	Category string  `json:"category" binding:"omitempty,oneof=GENERAL PROFILE DOCUMENT JOB EVENT PLACEMENT"`
}

// BroadcastRequest sends a notification to a filtered set of students
type BroadcastRequest struct {
	Title          string  `json:"title" binding:"required"`
	Body           string  `json:"body" binding:"required"`
	Degree         *string `json:"degree"`
	GraduationYear *int    `json:"graduationYear" binding:"omitempty,min=2000,max=2100"`
}

// BroadcastResponse reports how many students were notified
type BroadcastResponse struct {
	Recipients int64 `json:"recipients"`
}
