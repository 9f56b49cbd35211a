package models

import (
	"time"
)

// EventStatus is the lifecycle state of a placement event
type EventStatus string

const (
	EventScheduled EventStatus = "SCHEDULED"
	EventCompleted EventStatus = "COMPLETED"
	EventCancelled EventStatus = "CANCELLED"
)

var eventStatusTransitions = map[EventStatus][]EventStatus{
	EventScheduled: {EventCompleted, EventCancelled},
	EventCompleted: {},
	EventCancelled: {},
}

// CanTransitionTo reports whether the status may move to the target state.
func (s EventStatus) CanTransitionTo(target EventStatus) bool {
	for _, allowed := range eventStatusTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsValid reports whether the value is a known event status.
func (s EventStatus) IsValid() bool {
	switch s {
	case EventScheduled, EventCompleted, EventCancelled:
		return true
	}
	return false
}

// AcceptsRegistrations reports whether students may still register.
// Completed events keep accepting registrations for attendance backfill,
// cancelled ones do not.
func (s EventStatus) AcceptsRegistrations() bool {
	return s != EventCancelled
}

// Event defines the placement event model based on the 'events' table
type Event struct {
	ID          int64       `json:"id" db:"id"`
	Title       string      `json:"title" db:"title" example:"Pre-placement Talk"`
	Description string      `json:"description" db:"description"`
	Location    string      `json:"location" db:"location" example:"Auditorium A"`
	StartsAt    time.Time   `json:"startsAt" db:"starts_at"`
	EndsAt      *time.Time  `json:"endsAt,omitempty" db:"ends_at"`
	FormURL     *string     `json:"formUrl,omitempty" db:"form_url"`
	Category    string      `json:"category" db:"category" example:"WORKSHOP"`
	Capacity    *int        `json:"capacity,omitempty" db:"capacity"`
	Status      EventStatus `json:"status" db:"status"`
	CreatedBy   *int64      `json:"createdBy,omitempty" db:"created_by"`
	CreatedAt   time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time   `json:"updatedAt" db:"updated_at"`
}

// EventRegistration records a student's registration for an event
type EventRegistration struct {
	ID           int64     `json:"id" db:"id"`
	EventID      int64     `json:"eventId" db:"event_id"`
	UserID       int64     `json:"userId" db:"user_id"`
	RegisteredAt time.Time `json:"registeredAt" db:"registered_at"`
	User         *User     `json:"user,omitempty"` // Relation, no db tag
}
