package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prepsphere/backend/internal/app/models"
	"github.com/prepsphere/backend/internal/app/models/dto"
	"github.com/prepsphere/backend/internal/app/repositories"
	"github.com/prepsphere/backend/internal/pkg/apperrors"
)

func eventStores(events *mockEventRepo) repositories.Stores {
	return repositories.Stores{
		Events: events,
		Audit:  &mockAuditRepo{},
	}
}

func TestEventRegister(t *testing.T) {
	events := &mockEventRepo{
		getByIDFn: func(_ context.Context, _ int64) (*models.Event, error) {
			return &models.Event{ID: 5, Status: models.EventScheduled}, nil
		},
		registerFn: func(_ context.Context, eventID, userID int64) (*models.EventRegistration, error) {
			return &models.EventRegistration{ID: 20, EventID: eventID, UserID: userID, RegisteredAt: time.Now()}, nil
		},
	}
	stores := eventStores(events)
	svc := NewEventService(stores, &fakeUnitOfWork{stores: stores})

	got, err := svc.Register(context.Background(), 42, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.EventID != 5 || got.UserID != 42 {
		t.Errorf("unexpected registration %+v", got)
	}
}

func TestEventRegisterCancelledEvent(t *testing.T) {
	events := &mockEventRepo{
		getByIDFn: func(_ context.Context, _ int64) (*models.Event, error) {
			return &models.Event{ID: 5, Status: models.EventCancelled}, nil
		},
	}
	stores := eventStores(events)
	svc := NewEventService(stores, &fakeUnitOfWork{stores: stores})

	if _, err := svc.Register(context.Background(), 42, 5); !errors.Is(err, apperrors.ErrEventCancelled) {
		t.Fatalf("expected ErrEventCancelled, got %v", err)
	}
}

func TestEventRegisterFullEvent(t *testing.T) {
	events := &mockEventRepo{
		getByIDFn: func(_ context.Context, _ int64) (*models.Event, error) {
			return &models.Event{ID: 5, Status: models.EventScheduled, Capacity: intPtr(2)}, nil
		},
		getRegFn: func(_ context.Context, _, _ int64) (*models.EventRegistration, error) {
			return nil, apperrors.ErrResourceNotFound
		},
		countRegsFn: func(_ context.Context, _ int64) (int64, error) {
			return 2, nil
		},
	}
	stores := eventStores(events)
	svc := NewEventService(stores, &fakeUnitOfWork{stores: stores})

	if _, err := svc.Register(context.Background(), 42, 5); !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestEventRegisterExistingRegistrationBypassesCapacity(t *testing.T) {
	events := &mockEventRepo{
		getByIDFn: func(_ context.Context, _ int64) (*models.Event, error) {
			return &models.Event{ID: 5, Status: models.EventScheduled, Capacity: intPtr(2)}, nil
		},
		getRegFn: func(_ context.Context, eventID, userID int64) (*models.EventRegistration, error) {
			return &models.EventRegistration{ID: 20, EventID: eventID, UserID: userID}, nil
		},
		countRegsFn: func(_ context.Context, _ int64) (int64, error) {
			t.Error("capacity must not be counted for an existing registration")
			return 0, nil
		},
		registerFn: func(_ context.Context, eventID, userID int64) (*models.EventRegistration, error) {
			return &models.EventRegistration{ID: 20, EventID: eventID, UserID: userID}, nil
		},
	}
	stores := eventStores(events)
	svc := NewEventService(stores, &fakeUnitOfWork{stores: stores})

	if _, err := svc.Register(context.Background(), 42, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEventUpdateInvalidTransition(t *testing.T) {
	events := &mockEventRepo{
		getByIDFn: func(_ context.Context, _ int64) (*models.Event, error) {
			return &models.Event{ID: 5, Status: models.EventCancelled}, nil
		},
	}
	stores := eventStores(events)
	svc := NewEventService(stores, &fakeUnitOfWork{stores: stores})

	_, err := svc.Update(context.Background(), 1, 5, &dto.UpdateEventRequest{
		Title:    "Pre-placement Talk",
		StartsAt: time.Now(),
		Status:   "SCHEDULED",
	})
	if !errors.Is(err, apperrors.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestEventCreateKeepsFormLinkAndCategory(t *testing.T) {
	events := &mockEventRepo{
		createFn: func(_ context.Context, event *models.Event) error {
			event.ID = 5
			event.Status = models.EventScheduled
			return nil
		},
	}
	stores := eventStores(events)
	svc := NewEventService(stores, &fakeUnitOfWork{stores: stores})

	got, err := svc.Create(context.Background(), 1, &dto.CreateEventRequest{
		Title:    "Resume Workshop",
		StartsAt: time.Now().Add(24 * time.Hour),
		FormURL:  strPtr("https://forms.example.com/resume-workshop"),
		Category: "WORKSHOP",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.FormURL == nil || *got.FormURL != "https://forms.example.com/resume-workshop" {
		t.Error("expected the registration form link on the event")
	}
	if got.Category != "WORKSHOP" {
		t.Errorf("expected WORKSHOP category, got %q", got.Category)
	}
}

func TestEventUpdateRewritesFormLink(t *testing.T) {
	var updated *models.Event
	events := &mockEventRepo{
		getByIDFn: func(_ context.Context, _ int64) (*models.Event, error) {
			return &models.Event{ID: 5, Status: models.EventScheduled, Category: "TALK"}, nil
		},
		updateFn: func(_ context.Context, event *models.Event) error {
			updated = event
			return nil
		},
	}
	stores := eventStores(events)
	svc := NewEventService(stores, &fakeUnitOfWork{stores: stores})

	_, err := svc.Update(context.Background(), 1, 5, &dto.UpdateEventRequest{
		Title:    "Mock Interviews",
		StartsAt: time.Now().Add(48 * time.Hour),
		FormURL:  strPtr("https://forms.example.com/mock-interviews"),
		Category: "WORKSHOP",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated == nil || updated.FormURL == nil || *updated.FormURL != "https://forms.example.com/mock-interviews" {
		t.Error("expected the form link to be rewritten")
	}
	if updated.Category != "WORKSHOP" {
		t.Errorf("expected WORKSHOP category, got %q", updated.Category)
	}
}
