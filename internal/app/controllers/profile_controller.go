package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/prepsphere/backend/internal/app/models"
	"github.com/prepsphere/backend/internal/app/models/dto"
	"github.com/prepsphere/backend/internal/app/repositories"
	"github.com/prepsphere/backend/internal/app/services"
	"github.com/prepsphere/backend/internal/middleware"
	"github.com/prepsphere/backend/internal/pkg/helpers"
)

// ProfileController handles student profile operations
type ProfileController struct {
	profileService services.ProfileService
	logger         zerolog.Logger
}

// NewProfileController creates a new ProfileController
func NewProfileController(profileService services.ProfileService, logger zerolog.Logger) *ProfileController {
	return &ProfileController{
		profileService: profileService,
		logger:         logger,
	}
}

// GetMyProfile returns the caller's profile
// @Summary Get own profile
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse{data=dto.ProfileResponse}
// @Failure 404 {object} dto.ErrorResponse "Profile not found"
// @Router /profiles/me [get]
func (c *ProfileController) GetMyProfile(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	profile, err := c.profileService.GetByUserID(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromProfile(profile), ""))
}

// UpsertMyProfile creates or updates the caller's profile.
// Any data change resets the profile to pending review.
// @Summary Create or update own profile
// @Tags profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpsertProfileRequest true "Profile data"
// @Success 200 {object} dto.StructuredResponse{data=dto.ProfileResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Router /profiles/me [put]
func (c *ProfileController) UpsertMyProfile(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.UpsertProfileRequest
	if !middleware.ValidateRequest(ctx, &req) {
		return
	}

	profile, err := c.profileService.Upsert(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int64("userID", userID).
		Int64("profileID", profile.ID).
		Int("version", profile.Version).
		Msg("Profile saved")

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromProfile(profile), "Profile saved"))
}

// GetProfile returns one profile by ID
// @Summary Get a profile
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Param id path int true "Profile ID"
// @Success 200 {object} dto.StructuredResponse{data=dto.ProfileResponse}
// @Failure 404 {object} dto.ErrorResponse "Profile not found"
// @Router /profiles/{id} [get]
func (c *ProfileController) GetProfile(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	profile, err := c.profileService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromProfile(profile), ""))
}

// ListProfiles returns a filtered, paginated profile listing
// @Summary List profiles
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Param approvalStatus query string false "Filter by approval status" Enums(PENDING, APPROVED, REJECTED)
// @Param placementStatus query string false "Filter by placement status" Enums(NOT_PLACED, IN_PROCESS, PLACED)
// @Param degree query string false "Filter by degree"
// @Param graduationYear query int false "Filter by graduation year"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.StructuredResponse{data=dto.ProfileListResponse}
// @Router /profiles [get]
func (c *ProfileController) ListProfiles(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	filter := repositories.ProfileListFilter{
		Degree:         queryString(ctx, "degree"),
		GraduationYear: queryInt(ctx, "graduationYear"),
	}
	if raw := ctx.Query("approvalStatus"); raw != "" {
		status := models.ApprovalStatus(raw)
		if !status.IsValid() {
			detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid approvalStatus filter")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
			return
		}
		filter.ApprovalStatus = &status
	}
	if raw := ctx.Query("placementStatus"); raw != "" {
		status := models.PlacementStatus(raw)
		if !status.IsValid() {
			detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid placementStatus filter")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
			return
		}
		filter.PlacementStatus = &status
	}

	listing, err := c.profileService.List(ctx.Request.Context(), filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(listing, ""))
}

// ReviewProfile approves or rejects a pending profile
// @Summary Review a profile
// @Description Approves or rejects a profile. Rejection requires a reason.
// @Tags profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Profile ID"
// @Param request body dto.ReviewProfileRequest true "Review decision"
// @Success 200 {object} dto.StructuredResponse{data=dto.ProfileResponse}
// @Failure 400 {object} dto.ErrorResponse "Rejection without a reason"
// @Failure 404 {object} dto.ErrorResponse "Profile not found"
// @Failure 409 {object} dto.ErrorResponse "Invalid status transition"
// @Router /profiles/{id}/review [post]
func (c *ProfileController) ReviewProfile(ctx *gin.Context) {
	reviewerID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.ReviewProfileRequest
	if !middleware.ValidateRequest(ctx, &req) {
		return
	}

	profile, err := c.profileService.Review(ctx.Request.Context(), reviewerID, id, req.Approve, req.Reason)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int64("reviewerID", reviewerID).
		Int64("profileID", id).
		Bool("approved", req.Approve).
		Msg("Profile reviewed")

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromProfile(profile), "Review recorded"))
}

// UpdatePlacement updates a student's placement status
// @Summary Update placement status
// @Description Advances a placement status. Moving backwards or re-assigning requires a justification.
// @Tags profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Profile ID"
// @Param request body dto.UpdatePlacementRequest true "Placement state"
// @Success 200 {object} dto.StructuredResponse{data=dto.ProfileResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid placement status or missing justification"
// @Failure 404 {object} dto.ErrorResponse "Profile not found"
// @Router /profiles/{id}/placement [put]
func (c *ProfileController) UpdatePlacement(ctx *gin.Context) {
	actorID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdatePlacementRequest
	if !middleware.ValidateRequest(ctx, &req) {
		return
	}

	profile, err := c.profileService.UpdatePlacement(ctx.Request.Context(), actorID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int64("actorID", actorID).
		Int64("profileID", id).
		Str("status", req.Status).
		Msg("Placement updated")

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromProfile(profile), "Placement updated"))
}

// ListProfileVersions returns the version history of a profile
// @Summary List profile versions
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Param id path int true "Profile ID"
// @Success 200 {object} dto.StructuredResponse{data=[]dto.ProfileVersionResponse}
// @Failure 404 {object} dto.ErrorResponse "Profile not found"
// @Router /profiles/{id}/versions [get]
func (c *ProfileController) ListProfileVersions(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	versions, err := c.profileService.ListVersions(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.ProfileVersionResponse, 0, len(versions))
	for _, version := range versions {
		responses = append(responses, dto.ProfileVersionResponse{
			Version:   version.Version,
			Snapshot:  rawSnapshot(version.Snapshot),
			ChangedBy: version.ChangedBy,
			CreatedAt: version.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(responses, ""))
}
