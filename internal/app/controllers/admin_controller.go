package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/prepsphere/backend/internal/app/models/dto"
	"github.com/prepsphere/backend/internal/app/repositories"
	"github.com/prepsphere/backend/internal/app/services"
	"github.com/prepsphere/backend/internal/middleware"
	"github.com/prepsphere/backend/internal/pkg/helpers"
)

// AdminController handles analytics and audit trail operations
type AdminController struct {
	adminService services.AdminService
	logger       zerolog.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(adminService services.AdminService, logger zerolog.Logger) *AdminController {
	return &AdminController{
		adminService: adminService,
		logger:       logger,
	}
}

// Analytics returns portal-wide placement statistics
// @Summary Placement analytics
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse{data=dto.AnalyticsResponse}
// @Router /admin/analytics [get]
func (c *AdminController) Analytics(ctx *gin.Context) {
	analytics, err := c.adminService.Analytics(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("Analytics query failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(analytics, ""))
}

// AuditLogs returns a filtered, paginated audit trail
// @Summary List audit trail entries
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param actorId query int false "Filter by actor"
// @Param action query string false "Filter by action"
// @Param entityType query string false "Filter by entity type"
// @Param entityId query int false "Filter by entity ID"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.StructuredResponse{data=dto.AuditLogListResponse}
// @Router /admin/audit-logs [get]
func (c *AdminController) AuditLogs(ctx *gin.Context) {
	filter := repositories.AuditListFilter{
		ActorID:    queryInt64(ctx, "actorId"),
		Action:     queryString(ctx, "action"),
		EntityType: queryString(ctx, "entityType"),
		EntityID:   queryInt64(ctx, "entityId"),
	}

	page, size := helpers.ParsePaginationParams(ctx)
	listing, err := c.adminService.AuditLogs(ctx.Request.Context(), filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(listing, ""))
}
