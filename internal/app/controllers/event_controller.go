package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/prepsphere/backend/internal/app/models"
	"github.com/prepsphere/backend/internal/app/models/dto"
	"github.com/prepsphere/backend/internal/app/services"
	"github.com/prepsphere/backend/internal/middleware"
	"github.com/prepsphere/backend/internal/pkg/helpers"
)

// EventController handles placement event operations
type EventController struct {
	eventService services.EventService
	logger       zerolog.Logger
}

// NewEventController creates a new EventController
func NewEventController(eventService services.EventService, logger zerolog.Logger) *EventController {
	return &EventController{
		eventService: eventService,
		logger:       logger,
	}
}

// CreateEvent creates a placement event
// @Summary Create an event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateEventRequest true "Event details"
// @Success 201 {object} dto.StructuredResponse{data=dto.EventResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Router /events [post]
func (c *EventController) CreateEvent(ctx *gin.Context) {
	creatorID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateEventRequest
	if !middleware.ValidateRequest(ctx, &req) {
		return
	}

	event, err := c.eventService.Create(ctx.Request.Context(), creatorID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int64("creatorID", creatorID).
		Int64("eventID", event.ID).
		Str("title", event.Title).
		Msg("Event created")

	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(dto.FromEvent(event), "Event created"))
}

// GetEvent returns one event
// @Summary Get an event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.StructuredResponse{data=dto.EventResponse}
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id} [get]
func (c *EventController) GetEvent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	event, err := c.eventService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromEvent(event), ""))
}

// UpdateEvent updates an event
// @Summary Update an event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param request body dto.UpdateEventRequest true "Event details"
// @Success 200 {object} dto.StructuredResponse{data=dto.EventResponse}
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 409 {object} dto.ErrorResponse "Invalid status transition"
// @Router /events/{id} [put]
func (c *EventController) UpdateEvent(ctx *gin.Context) {
	actorID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateEventRequest
	if !middleware.ValidateRequest(ctx, &req) {
		return
	}

	event, err := c.eventService.Update(ctx.Request.Context(), actorID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromEvent(event), "Event updated"))
}

// ListEvents returns a paginated event listing
// @Summary List events
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status" Enums(SCHEDULED, COMPLETED, CANCELLED)
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.StructuredResponse{data=dto.EventListResponse}
// @Router /events [get]
func (c *EventController) ListEvents(ctx *gin.Context) {
	var status *models.EventStatus
	if raw := ctx.Query("status"); raw != "" {
		candidate := models.EventStatus(raw)
		if !candidate.IsValid() {
			detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid status filter")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
			return
		}
		status = &candidate
	}

	page, size := helpers.ParsePaginationParams(ctx)
	listing, err := c.eventService.List(ctx.Request.Context(), status, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(listing, ""))
}

// RegisterForEvent registers the caller for an event.
// Registering twice updates the existing registration instead of failing.
// @Summary Register for an event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.StructuredResponse{data=dto.RegistrationResponse}
// @Failure 400 {object} dto.ErrorResponse "Event cancelled"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 409 {object} dto.ErrorResponse "Event is full"
// @Router /events/{id}/register [post]
func (c *EventController) RegisterForEvent(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	registration, err := c.eventService.Register(ctx.Request.Context(), userID, id)
	if err != nil {
		c.logger.Warn().Err(err).Int64("userID", userID).Int64("eventID", id).Msg("Registration rejected")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int64("userID", userID).
		Int64("eventID", id).
		Msg("Event registration recorded")

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromRegistration(registration), "Registered"))
}

// ListRegistrations lists registrations for one event
// @Summary List event registrations
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.StructuredResponse{data=[]dto.RegistrationResponse}
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id}/registrations [get]
func (c *EventController) ListRegistrations(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	registrations, err := c.eventService.ListRegistrations(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.RegistrationResponse, 0, len(registrations))
	for _, registration := range registrations {
		responses = append(responses, dto.FromRegistration(registration))
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(responses, ""))
}
