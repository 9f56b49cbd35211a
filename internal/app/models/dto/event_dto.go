package dto

import (
	"time"

	"github.com/prepsphere/backend/internal/app/models"
)

// CreateEventRequest creates a placement event
type CreateEventRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	StartsAt    time.Time  `json:"startsAt" binding:"required"`
	EndsAt      *time.Time `json:"endsAt"`
	FormURL     *string    `json:"formUrl" binding:"omitempty,url"`
	Category    string     `json:"category"`
	Capacity    *int       `json:"capacity" binding:"omitempty,min=1"`
}

// UpdateEventRequest updates a placement event
type UpdateEventRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	StartsAt    time.Time  `json:"startsAt" binding:"required"`
	EndsAt      *time.Time `json:"endsAt"`
	FormURL     *string    `json:"formUrl" binding:"omitempty,url"`
	Category    string     `json:"category"`
	Capacity    *int       `json:"capacity" binding:"omitempty,min=1"`
	Status      string     `json:"status" binding:"omitempty,oneof=SCHEDULED COMPLETED CANCELLED"`
}

// EventResponse represents a placement event
type EventResponse struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Location     string     `json:"location"`
	StartsAt     time.Time  `json:"startsAt"`
	EndsAt       *time.Time `json:"endsAt,omitempty"`
	FormURL      *string    `json:"formUrl,omitempty"`
	Category     string     `json:"category,omitempty"`
	Capacity     *int       `json:"capacity,omitempty"`
	Status       string     `json:"status"`
	Registered   bool       `json:"registered"`
	RegisteredAt *time.Time `json:"registeredAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// FromEvent converts a models.Event to an EventResponse
func FromEvent(event *models.Event) EventResponse {
	if event == nil {
		return EventResponse{}
	}
	return EventResponse{
		ID:          event.ID,
		Title:       event.Title,
		Description: event.Description,
		Location:    event.Location,
		StartsAt:    event.StartsAt,
		EndsAt:      event.EndsAt,
		FormURL:     event.FormURL,
		Category:    event.Category,
		Capacity:    event.Capacity,
		Status:      string(event.Status),
		CreatedAt:   event.CreatedAt,
	}
}

// EventListResponse represents a paginated event listing
type EventListResponse struct {
	Events     []EventResponse `json:"events"`
	Pagination PaginationInfo  `json:"pagination"`
}

// RegistrationResponse represents an event registration
type RegistrationResponse struct {
	ID           int64         `json:"id"`
	EventID      int64         `json:"eventId"`
	UserID       int64         `json:"userId"`
	RegisteredAt time.Time     `json:"registeredAt"`
	User         *UserResponse `json:"user,omitempty"`
}

// FromRegistration converts a models.EventRegistration to a RegistrationResponse
func FromRegistration(reg *models.EventRegistration) RegistrationResponse {
	if reg == nil {
		return RegistrationResponse{}
	}
	resp := RegistrationResponse{
		ID:           reg.ID,
		EventID:      reg.EventID,
		UserID:       reg.UserID,
		RegisteredAt: reg.RegisteredAt,
	}
	if reg.User != nil {
		user := FromUser(reg.User)
		resp.User = &user
	}
	return resp
}
