package services

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/prepsphere/backend/internal/app/models"
	"github.com/prepsphere/backend/internal/app/models/dto"
	"github.com/prepsphere/backend/internal/app/repositories"
	"github.com/prepsphere/backend/internal/pkg/apperrors"
	"github.com/prepsphere/backend/internal/pkg/helpers"
	"github.com/prepsphere/backend/internal/pkg/logger"
	"github.com/prepsphere/backend/internal/pkg/metrics"
)

// EventService defines placement event operations
type EventService interface {
	Create(ctx context.Context, creatorID int64, req *dto.CreateEventRequest) (*models.Event, error)
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	Update(ctx context.Context, actorID, eventID int64, req *dto.UpdateEventRequest) (*models.Event, error)
	List(ctx context.Context, status *models.EventStatus, page, size int) (*dto.EventListResponse, error)
	Register(ctx context.Context, userID, eventID int64) (*models.EventRegistration, error)
	ListRegistrations(ctx context.Context, eventID int64) ([]*models.EventRegistration, error)
}

type eventServiceImpl struct {
	stores repositories.Stores
	uow    repositories.UnitOfWork
}

// NewEventService creates a new EventService
func NewEventService(stores repositories.Stores, uow repositories.UnitOfWork) EventService {
	return &eventServiceImpl{stores: stores, uow: uow}
}

// Create creates a placement event
func (s *eventServiceImpl) Create(ctx context.Context, creatorID int64, req *dto.CreateEventRequest) (*models.Event, error) {
	event := &models.Event{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		FormURL:     req.FormURL,
		Category:    req.Category,
		Capacity:    req.Capacity,
		CreatedBy:   &creatorID,
	}
	if err := s.stores.Events.Create(ctx, event); err != nil {
		return nil, err
	}

	logger.Info().Int64("event_id", event.ID).Str("title", event.Title).Msg("Event created")
	return event, nil
}

// GetByID returns an event by ID
func (s *eventServiceImpl) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	return s.stores.Events.GetByID(ctx, id)
}

// Update rewrites an event, validating any status change
func (s *eventServiceImpl) Update(ctx context.Context, actorID, eventID int64, req *dto.UpdateEventRequest) (*models.Event, error) {
	event, err := s.stores.Events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if req.Status != "" {
		target := models.EventStatus(req.Status)
		if target != event.Status && !event.Status.CanTransitionTo(target) {
			return nil, apperrors.ErrInvalidTransition
		}
		event.Status = target
	}

	event.Title = req.Title
	event.Description = req.Description
	event.Location = req.Location
	event.StartsAt = req.StartsAt
	event.EndsAt = req.EndsAt
	event.FormURL = req.FormURL
	event.Category = req.Category
	event.Capacity = req.Capacity

	if err := s.stores.Events.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// List returns a page of events
func (s *eventServiceImpl) List(ctx context.Context, status *models.EventStatus, page, size int) (*dto.EventListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	events, err := s.stores.Events.List(ctx, status, offset, limit)
	if err != nil {
		return nil, err
	}
	total, err := s.stores.Events.Count(ctx, status)
	if err != nil {
		return nil, err
	}

	resp := &dto.EventListResponse{
		Events:     make([]dto.EventResponse, 0, len(events)),
		Pagination: helpers.NewPaginationInfo(total, page, limit),
	}
	for _, e := range events {
		resp.Events = append(resp.Events, dto.FromEvent(e))
	}
	return resp, nil
}

// Register registers the caller for an event. Registering twice refreshes
// the registration timestamp instead of failing. Cancelled events and full
// events reject new registrations.
func (s *eventServiceImpl) Register(ctx context.Context, userID, eventID int64) (*models.EventRegistration, error) {
	var result *models.EventRegistration
	err := s.uow.WithinTx(ctx, func(stores repositories.Stores) error {
		event, err := stores.Events.GetByID(ctx, eventID)
		if err != nil {
			return err
		}
		if !event.Status.AcceptsRegistrations() {
			return apperrors.ErrEventCancelled
		}

		if event.Capacity != nil {
			// Re-registration never counts against capacity
			_, regErr := stores.Events.GetRegistration(ctx, eventID, userID)
			if regErr != nil {
				if !errors.Is(regErr, apperrors.ErrResourceNotFound) {
					return regErr
				}
				count, err := stores.Events.CountRegistrations(ctx, eventID)
				if err != nil {
					return err
				}
				if count >= int64(*event.Capacity) {
					return apperrors.ErrConflict
				}
			}
		}

		reg, err := stores.Events.Register(ctx, eventID, userID)
		if err != nil {
			return err
		}

		details, _ := json.Marshal(map[string]any{"eventId": eventID})
		if err := stores.Audit.Create(ctx, &models.AuditLog{
			ActorID:    &userID,
			Action:     models.AuditActionEventRegister,
			EntityType: "event_registration",
			EntityID:   &reg.ID,
			Details:    details,
			IP:         helpers.ClientIPFromContext(ctx),
		}); err != nil {
			return err
		}

		result = reg
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.EventRegistrations.Inc()
	return result, nil
}

// ListRegistrations returns an event's registrations with attendee details
func (s *eventServiceImpl) ListRegistrations(ctx context.Context, eventID int64) ([]*models.EventRegistration, error) {
	if _, err := s.stores.Events.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.stores.Events.ListRegistrations(ctx, eventID)
}
