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

// UserController handles account related operations
type UserController struct {
	userService services.UserService
	logger      zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(userService services.UserService, logger zerolog.Logger) *UserController {
	return &UserController{
		userService: userService,
		logger:      logger,
	}
}

// GetMe returns the authenticated user's account
// @Summary Get own account
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse{data=dto.UserResponse}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /users/me [get]
func (c *UserController) GetMe(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	user, err := c.userService.GetByID(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromUser(user), ""))
}

// UpdateMe updates the authenticated user's account details
// @Summary Update own account
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateUserRequest true "Account details"
// @Success 200 {object} dto.StructuredResponse{data=dto.UserResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /users/me [put]
func (c *UserController) UpdateMe(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if !middleware.ValidateRequest(ctx, &req) {
		return
	}

	user, err := c.userService.Update(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromUser(user), "Account updated"))
}

// GetUser returns one user by ID
// @Summary Get a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.StructuredResponse{data=dto.UserResponse}
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{id} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	user, err := c.userService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromUser(user), ""))
}

// ListUsers returns a paginated user listing
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param role query string false "Filter by role" Enums(STUDENT, TPO, ADMIN)
// @Param email query string false "Look up a single user by email"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.StructuredResponse{data=dto.UserListResponse}
// @Router /users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	if email := ctx.Query("email"); email != "" {
		user, err := c.userService.GetByEmail(ctx.Request.Context(), email)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		listing := &dto.UserListResponse{
			Users:      []dto.UserResponse{dto.FromUser(user)},
			Pagination: helpers.NewPaginationInfo(1, 1, 1),
		}
		ctx.JSON(http.StatusOK, dto.NewStructuredResponse(listing, ""))
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)

	var role *models.RoleType
	if raw := ctx.Query("role"); raw != "" {
		candidate := models.RoleType(raw)
		if !candidate.IsValid() {
			detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid role filter")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
			return
		}
		role = &candidate
	}

	listing, err := c.userService.List(ctx.Request.Context(), role, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(listing, ""))
}

// SetRole changes a user's role
// @Summary Change a user's role
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body dto.SetUserRoleRequest true "New role"
// @Success 200 {object} dto.StructuredResponse "Role updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid role"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{id}/role [put]
func (c *UserController) SetRole(ctx *gin.Context) {
	actorID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.SetUserRoleRequest
	if !middleware.ValidateRequest(ctx, &req) {
		return
	}

	if err := c.userService.SetRole(ctx.Request.Context(), actorID, id, models.RoleType(req.Role)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int64("actorID", actorID).
		Int64("userID", id).
		Str("role", req.Role).
		Msg("User role changed")

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(nil, "Role updated"))
}

// SetActive enables or disables a user account
// @Summary Enable or disable a user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body dto.SetUserActiveRequest true "Desired state"
// @Success 200 {object} dto.StructuredResponse "Account state updated"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{id}/active [put]
func (c *UserController) SetActive(ctx *gin.Context) {
	actorID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.SetUserActiveRequest
	if !middleware.ValidateRequest(ctx, &req) {
		return
	}

	if err := c.userService.SetActive(ctx.Request.Context(), actorID, id, *req.IsActive); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int64("actorID", actorID).
		Int64("userID", id).
		Bool("isActive", *req.IsActive).
		Msg("User account state changed")

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(nil, "Account state updated"))
}
