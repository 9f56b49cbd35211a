package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/prepsphere/backend/internal/app/models/dto"
	"github.com/prepsphere/backend/internal/app/services"
	"github.com/prepsphere/backend/internal/middleware"
	"github.com/prepsphere/backend/internal/pkg/helpers"
)

// NotificationController handles notification operations
type NotificationController struct {
	notificationService services.NotificationService
	logger              zerolog.Logger
}

// NewNotificationController creates a new NotificationController
func NewNotificationController(notificationService services.NotificationService, logger zerolog.Logger) *NotificationController {
	return &NotificationController{
		notificationService: notificationService,
		logger:              logger,
	}
}

// ListNotifications returns the caller's notifications, newest first
// @Summary List own notifications
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.StructuredResponse{data=dto.NotificationListResponse}
// @Router /notifications [get]
func (c *NotificationController) ListNotifications(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	listing, err := c.notificationService.List(ctx.Request.Context(), userID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(listing, ""))
}

// MarkRead marks one of the caller's notifications as read
// @Summary Mark a notification read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 200 {object} dto.StructuredResponse "Marked read"
// @Failure 404 {object} dto.ErrorResponse "Notification not found"
// @Router /notifications/{id}/read [post]
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.notificationService.MarkRead(ctx.Request.Context(), userID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(nil, "Notification marked read"))
}

// MarkAllRead marks every notification of the caller as read
// @Summary Mark all notifications read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse "Marked read"
// @Router /notifications/read-all [post]
func (c *NotificationController) MarkAllRead(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	if err := c.notificationService.MarkAllRead(ctx.Request.Context(), userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(nil, "All notifications marked read"))
}

// Send sends a notification to a single user
// @Summary Send a notification to one user
// @Description Sends a notification to a single user, addressed by user id or by email
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SendNotificationRequest true "Recipient and content"
// @Success 200 {object} dto.StructuredResponse{data=dto.NotificationResponse}
// @Failure 400 {object} dto.ErrorResponse "Missing recipient"
// @Failure 404 {object} dto.ErrorResponse "Recipient not found"
// @Router /notifications/send [post]
func (c *NotificationController) Send(ctx *gin.Context) {
	actorID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.SendNotificationRequest
	if !middleware.ValidateRequest(ctx, &req) {
		return
	}

	notification, err := c.notificationService.Send(ctx.Request.Context(), actorID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromNotification(notification), "Notification sent"))
}

// Broadcast sends a notification to a filtered set of active students
// @Summary Broadcast a notification
// @Description Sends a notification to every active student matching the degree and graduation year filters
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BroadcastRequest true "Broadcast content and filters"
// @Success 200 {object} dto.StructuredResponse{data=dto.BroadcastResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Router /notifications/broadcast [post]
func (c *NotificationController) Broadcast(ctx *gin.Context) {
	actorID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.BroadcastRequest
	if !middleware.ValidateRequest(ctx, &req) {
		return
	}

	recipients, err := c.notificationService.Broadcast(ctx.Request.Context(), actorID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int64("actorID", actorID).
		Int64("recipients", recipients).
		Str("title", req.Title).
		Msg("Broadcast sent")

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.BroadcastResponse{Recipients: recipients}, "Broadcast sent"))
}
