package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/prepsphere/backend/internal/app/models/dto"
	"github.com/prepsphere/backend/internal/app/services"
	"github.com/prepsphere/backend/internal/middleware"
)

// InterviewController handles mock interview feedback operations
type InterviewController struct {
	interviewService services.InterviewService
	logger           zerolog.Logger
}

// NewInterviewController creates a new InterviewController
func NewInterviewController(interviewService services.InterviewService, logger zerolog.Logger) *InterviewController {
	return &InterviewController{
		interviewService: interviewService,
		logger:           logger,
	}
}

// Feedback evaluates a finished mock interview transcript
// @Summary Mock interview feedback
// @Description Scores the transcript and returns per-question commentary. Falls back to generic feedback when the evaluator is unavailable.
// @Tags interview
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.InterviewFeedbackRequest true "Role and answered questions"
// @Success 200 {object} dto.StructuredResponse{data=dto.InterviewFeedbackResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Router /interview/feedback [post]
func (c *InterviewController) Feedback(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.InterviewFeedbackRequest
	if !middleware.ValidateRequest(ctx, &req) {
		return
	}

	feedback, err := c.interviewService.Feedback(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int64("userID", userID).
		Str("role", req.Role).
		Int("questions", len(req.Answers)).
		Int("score", feedback.Score).
		Msg("Interview feedback generated")

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(feedback, ""))
}
