package controllers

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/prepsphere/backend/internal/app/models/dto"
	"github.com/prepsphere/backend/internal/app/services"
	"github.com/prepsphere/backend/internal/middleware"
)

// WebhookController handles identity-provider webhooks
type WebhookController struct {
	userService services.UserService
	secret      string
	logger      zerolog.Logger
}

// NewWebhookController creates a new WebhookController
func NewWebhookController(userService services.UserService, secret string, logger zerolog.Logger) *WebhookController {
	return &WebhookController{
		userService: userService,
		secret:      secret,
		logger:      logger,
	}
}

// HandleUserEvent provisions or updates a user from an identity-provider event
// @Summary Identity-provider webhook
// @Description Accepts user.created and user.updated events and upserts the matching account
// @Tags webhooks
// @Accept json
// @Produce json
// @Param X-Webhook-Secret header string true "Shared webhook secret"
// @Param request body dto.WebhookEvent true "Event payload"
// @Success 200 {object} dto.StructuredResponse{data=dto.UserResponse}
// @Failure 400 {object} dto.ErrorResponse "Malformed payload"
// @Failure 401 {object} dto.ErrorResponse "Bad secret"
// @Router /webhooks/users [post]
func (c *WebhookController) HandleUserEvent(ctx *gin.Context) {
	provided := ctx.GetHeader("X-Webhook-Secret")
	if c.secret == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(c.secret)) != 1 {
		c.logger.Warn().Str("clientIP", ctx.ClientIP()).Msg("Webhook rejected: bad secret")
		detail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Invalid webhook secret")
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))
		return
	}

	var event dto.WebhookEvent
	if err := ctx.ShouldBindJSON(&event); err != nil {
		middleware.BindingError(ctx, err)
		return
	}

	switch event.Type {
	case "user.created", "user.updated":
	default:
		// Unknown event types are acknowledged so the provider stops retrying
		c.logger.Debug().Str("type", event.Type).Msg("Ignoring webhook event")
		ctx.JSON(http.StatusOK, dto.NewStructuredResponse(nil, "Event ignored"))
		return
	}

	user, err := c.userService.ProvisionFromWebhook(ctx.Request.Context(), &event)
	if err != nil {
		c.logger.Error().Err(err).Str("externalID", event.Data.ID).Msg("Webhook provisioning failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Str("externalID", event.Data.ID).
		Int64("userID", user.ID).
		Str("type", event.Type).
		Msg("User provisioned from webhook")

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromUser(user), "User provisioned"))
}
