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
	"github.com/prepsphere/backend/internal/pkg/apperrors"
	"github.com/prepsphere/backend/internal/pkg/helpers"
)

// FileController handles document upload and verification operations
type FileController struct {
	fileService services.FileService
	logger      zerolog.Logger
}

// NewFileController creates a new FileController
func NewFileController(fileService services.FileService, logger zerolog.Logger) *FileController {
	return &FileController{
		fileService: fileService,
		logger:      logger,
	}
}

// Upload stores a new document for the caller
// @Summary Upload a document
// @Description Accepts a PDF or image document. A re-upload of previously rejected content is rejected again automatically.
// @Tags files
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param fileType formData string true "Document type" Enums(RESUME, MARKSHEET, CERTIFICATE, PHOTO, OFFER_LETTER)
// @Param file formData file true "Document content"
// @Success 201 {object} dto.StructuredResponse{data=dto.FileUploadResponse}
// @Failure 400 {object} dto.ErrorResponse "Missing file or invalid type"
// @Failure 413 {object} dto.ErrorResponse "File too large"
// @Failure 502 {object} dto.ErrorResponse "Storage unavailable"
// @Router /files [post]
func (c *FileController) Upload(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	fileType := models.FileType(ctx.PostForm("fileType"))
	if !fileType.IsValid() {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid or missing fileType").
			WithField("fileType")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	header, err := ctx.FormFile("file")
	if err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Missing file").WithField("file")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	content, err := header.Open()
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to open uploaded file")
		middleware.HandleAPIError(ctx, err)
		return
	}
	defer content.Close()

	upload, err := c.fileService.Upload(ctx.Request.Context(), &services.UploadInput{
		UserID:   userID,
		FileType: fileType,
		FileName: header.Filename,
		MimeType: header.Header.Get("Content-Type"),
		Size:     header.Size,
		Content:  content,
	})
	if err != nil {
		c.logger.Warn().Err(err).Int64("userID", userID).Str("fileName", header.Filename).Msg("Upload rejected")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int64("userID", userID).
		Int64("fileID", upload.ID).
		Str("fileType", string(fileType)).
		Str("status", string(upload.Status)).
		Msg("Document uploaded")

	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(dto.FromFileUpload(upload), "Document uploaded"))
}

// GetFile returns one document. Students may only see their own.
// @Summary Get a document
// @Tags files
// @Produce json
// @Security BearerAuth
// @Param id path int true "File ID"
// @Success 200 {object} dto.StructuredResponse{data=dto.FileUploadResponse}
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "File not found"
// @Router /files/{id} [get]
func (c *FileController) GetFile(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	upload, err := c.fileService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if middleware.GetRole(ctx) == models.RoleStudent && upload.UserID != userID {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromFileUpload(upload), ""))
}

// Download redirects to the stored object. Students may only fetch their own.
// @Summary Download a document
// @Tags files
// @Security BearerAuth
// @Param id path int true "File ID"
// @Success 302 {string} string "Redirect to the stored object"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "File not found"
// @Failure 502 {object} dto.ErrorResponse "Storage unavailable"
// @Router /files/{id}/download [get]
func (c *FileController) Download(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	upload, err := c.fileService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if middleware.GetRole(ctx) == models.RoleStudent && upload.UserID != userID {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}
	if upload.URL == "" {
		middleware.HandleAPIError(ctx, apperrors.ErrStorageFailure)
		return
	}

	ctx.Redirect(http.StatusFound, upload.URL)
}

// ListMyFiles lists the caller's documents
// @Summary List own documents
// @Tags files
// @Produce json
// @Security BearerAuth
// @Param fileType query string false "Filter by type" Enums(RESUME, MARKSHEET, CERTIFICATE, PHOTO, OFFER_LETTER)
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.StructuredResponse{data=dto.FileListResponse}
// @Router /files/me [get]
func (c *FileController) ListMyFiles(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	filter := repositories.FileListFilter{UserID: &userID}
	if !c.applyTypeAndStatusFilters(ctx, &filter) {
		return
	}

	c.respondFileList(ctx, filter)
}

// ListFiles lists documents across students for reviewers
// @Summary List documents
// @Tags files
// @Produce json
// @Security BearerAuth
// @Param userId query int false "Filter by student"
// @Param fileType query string false "Filter by type" Enums(RESUME, MARKSHEET, CERTIFICATE, PHOTO, OFFER_LETTER)
// @Param status query string false "Filter by status" Enums(PENDING, VERIFIED, REJECTED)
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.StructuredResponse{data=dto.FileListResponse}
// @Router /files [get]
func (c *FileController) ListFiles(ctx *gin.Context) {
	filter := repositories.FileListFilter{UserID: queryInt64(ctx, "userId")}
	if !c.applyTypeAndStatusFilters(ctx, &filter) {
		return
	}

	c.respondFileList(ctx, filter)
}

func (c *FileController) applyTypeAndStatusFilters(ctx *gin.Context, filter *repositories.FileListFilter) bool {
	if raw := ctx.Query("fileType"); raw != "" {
		fileType := models.FileType(raw)
		if !fileType.IsValid() {
			detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid fileType filter")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
			return false
		}
		filter.FileType = &fileType
	}
	if raw := ctx.Query("status"); raw != "" {
		status := models.FileStatus(raw)
		if !status.IsValid() {
			detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid status filter")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
			return false
		}
		filter.Status = &status
	}
	return true
}

func (c *FileController) respondFileList(ctx *gin.Context, filter repositories.FileListFilter) {
	page, size := helpers.ParsePaginationParams(ctx)

	listing, limit, err := c.fileService.List(ctx.Request.Context(), filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	files := make([]dto.FileUploadResponse, 0, len(listing.Files))
	for _, upload := range listing.Files {
		files = append(files, dto.FromFileUpload(upload))
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FileListResponse{
		Files:      files,
		Pagination: helpers.NewPaginationInfo(listing.Total, page, limit),
	}, ""))
}

// ReviewFile verifies or rejects a pending document
// @Summary Review a document
// @Description Verifies or rejects a document. Rejection requires a reason.
// @Tags files
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "File ID"
// @Param request body dto.ReviewFileRequest true "Review decision"
// @Success 200 {object} dto.StructuredResponse{data=dto.FileUploadResponse}
// @Failure 400 {object} dto.ErrorResponse "Rejection without a reason"
// @Failure 404 {object} dto.ErrorResponse "File not found"
// @Failure 409 {object} dto.ErrorResponse "Invalid status transition"
// @Router /files/{id}/review [post]
func (c *FileController) ReviewFile(ctx *gin.Context) {
	reviewerID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.ReviewFileRequest
	if !middleware.ValidateRequest(ctx, &req) {
		return
	}

	upload, err := c.fileService.Review(ctx.Request.Context(), reviewerID, id, req.Verify, req.Reason)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int64("reviewerID", reviewerID).
		Int64("fileID", id).
		Bool("verified", req.Verify).
		Msg("Document reviewed")

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromFileUpload(upload), "Review recorded"))
}

// ListFileVersions returns the status history of a document
// @Summary List document versions
// @Tags files
// @Produce json
// @Security BearerAuth
// @Param id path int true "File ID"
// @Success 200 {object} dto.StructuredResponse{data=[]dto.FileVersionResponse}
// @Failure 404 {object} dto.ErrorResponse "File not found"
// @Router /files/{id}/versions [get]
func (c *FileController) ListFileVersions(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	versions, err := c.fileService.ListVersions(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.FileVersionResponse, 0, len(versions))
	for _, version := range versions {
		responses = append(responses, dto.FileVersionResponse{
			Status:    string(version.Status),
			Reason:    version.Reason,
			ChangedBy: version.ChangedBy,
			CreatedAt: version.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(responses, ""))
}
