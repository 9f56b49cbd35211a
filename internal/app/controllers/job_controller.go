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

// JobController handles job posting and application operations
type JobController struct {
	jobService services.JobService
	logger     zerolog.Logger
}

// NewJobController creates a new JobController
func NewJobController(jobService services.JobService, logger zerolog.Logger) *JobController {
	return &JobController{
		jobService: jobService,
		logger:     logger,
	}
}

// CreateJob creates a job posting
// @Summary Create a job posting
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateJobRequest true "Job details"
// @Success 201 {object} dto.StructuredResponse{data=dto.JobResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Router /jobs [post]
func (c *JobController) CreateJob(ctx *gin.Context) {
	creatorID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateJobRequest
	if !middleware.ValidateRequest(ctx, &req) {
		return
	}

	job, err := c.jobService.Create(ctx.Request.Context(), creatorID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int64("creatorID", creatorID).
		Int64("jobID", job.ID).
		Str("company", job.Company).
		Msg("Job created")

	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(dto.FromJob(job), "Job created"))
}

// GetJob returns one job posting
// @Summary Get a job posting
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job ID"
// @Success 200 {object} dto.StructuredResponse{data=dto.JobResponse}
// @Failure 404 {object} dto.ErrorResponse "Job not found"
// @Router /jobs/{id} [get]
func (c *JobController) GetJob(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	job, err := c.jobService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromJob(job), ""))
}

// UpdateJob updates a job posting
// @Summary Update a job posting
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job ID"
// @Param request body dto.UpdateJobRequest true "Job details"
// @Success 200 {object} dto.StructuredResponse{data=dto.JobResponse}
// @Failure 404 {object} dto.ErrorResponse "Job not found"
// @Failure 409 {object} dto.ErrorResponse "Invalid status transition"
// @Router /jobs/{id} [put]
func (c *JobController) UpdateJob(ctx *gin.Context) {
	actorID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateJobRequest
	if !middleware.ValidateRequest(ctx, &req) {
		return
	}

	job, err := c.jobService.Update(ctx.Request.Context(), actorID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromJob(job), "Job updated"))
}

// ListJobs returns a filtered, paginated job listing
// @Summary List job postings
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status" Enums(OPEN, CLOSED)
// @Param company query string false "Filter by company name"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.StructuredResponse{data=dto.JobListResponse}
// @Router /jobs [get]
func (c *JobController) ListJobs(ctx *gin.Context) {
	filter := repositories.JobListFilter{Company: queryString(ctx, "company")}
	if raw := ctx.Query("status"); raw != "" {
		status := models.JobStatus(raw)
		if !status.IsValid() {
			detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid status filter")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
			return
		}
		filter.Status = &status
	}

	page, size := helpers.ParsePaginationParams(ctx)
	listing, err := c.jobService.List(ctx.Request.Context(), filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(listing, ""))
}

// Apply submits an application for the caller
// @Summary Apply to a job
// @Description Submits an application. Re-applying to the same job fails.
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job ID"
// @Success 201 {object} dto.StructuredResponse{data=dto.ApplicationResponse}
// @Failure 400 {object} dto.ErrorResponse "Job is closed or already applied"
// @Failure 404 {object} dto.ErrorResponse "Job not found"
// @Router /jobs/{id}/apply [post]
func (c *JobController) Apply(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	application, err := c.jobService.Apply(ctx.Request.Context(), userID, id)
	if err != nil {
		c.logger.Warn().Err(err).Int64("userID", userID).Int64("jobID", id).Msg("Application rejected")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int64("userID", userID).
		Int64("jobID", id).
		Int64("applicationID", application.ID).
		Msg("Application submitted")

	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(dto.FromApplication(application), "Application submitted"))
}

// MyApplications lists the caller's applications with job details
// @Summary List own applications
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse{data=[]dto.ApplicationResponse}
// @Router /applications/me [get]
func (c *JobController) MyApplications(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	applications, err := c.jobService.MyApplications(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.ApplicationResponse, 0, len(applications))
	for _, application := range applications {
		responses = append(responses, dto.FromApplication(application))
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(responses, ""))
}

// ListApplications lists applications for one job
// @Summary List applications for a job
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job ID"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.StructuredResponse{data=dto.ApplicationListResponse}
// @Failure 404 {object} dto.ErrorResponse "Job not found"
// @Router /jobs/{id}/applications [get]
func (c *JobController) ListApplications(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	listing, err := c.jobService.ListApplications(ctx.Request.Context(), id, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(listing, ""))
}

// UpdateApplication moves an application through the review pipeline
// @Summary Update application status
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param request body dto.UpdateApplicationRequest true "New status"
// @Success 200 {object} dto.StructuredResponse{data=dto.ApplicationResponse}
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Failure 409 {object} dto.ErrorResponse "Invalid status transition"
// @Router /applications/{id} [put]
func (c *JobController) UpdateApplication(ctx *gin.Context) {
	actorID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateApplicationRequest
	if !middleware.ValidateRequest(ctx, &req) {
		return
	}

	application, err := c.jobService.UpdateApplicationStatus(ctx.Request.Context(), actorID, id, models.ApplicationStatus(req.Status))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int64("actorID", actorID).
		Int64("applicationID", id).
		Str("status", req.Status).
		Msg("Application status updated")

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromApplication(application), "Application updated"))
}
