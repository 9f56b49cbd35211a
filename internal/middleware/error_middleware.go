package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prepsphere/backend/internal/app/models/dto"
	"github.com/prepsphere/backend/internal/pkg/apperrors"
	"github.com/prepsphere/backend/internal/pkg/logger"
)

// HandleAPIError maps service errors to standard API error responses
func HandleAPIError(c *gin.Context, err error) {
	status, detail := classifyError(err)

	// Surface a custom message when the service wrapped the sentinel
	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		detail.Message = custom.Message
		if custom.Details != nil {
			detail = detail.WithDetails(custom.Details)
		}
	}

	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Request failed")
	}

	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}

func classifyError(err error) (int, *dto.ErrorDetail) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid email or password")
	case errors.Is(err, apperrors.ErrTokenExpired):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenInvalid):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrInvalidPasswordResetToken):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid or expired reset token")
	case errors.Is(err, apperrors.ErrAccountDisabled):
		return http.StatusForbidden, dto.NewErrorDetail(dto.ErrorCodeAccountDisabled, "Account is disabled")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		return http.StatusForbidden, dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied")

	case errors.Is(err, apperrors.ErrJobClosed):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeResourceInvalid, "Job is closed")
	case errors.Is(err, apperrors.ErrAlreadyApplied):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Already applied")
	case errors.Is(err, apperrors.ErrEventCancelled):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeResourceInvalid, "Event is cancelled")
	case errors.Is(err, apperrors.ErrReasonRequired):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "A reason is required for this action")
	case errors.Is(err, apperrors.ErrInvalidTransition):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeInvalidTransition, "Invalid status transition")
	case errors.Is(err, apperrors.ErrInvalidPlacement):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid placement status")

	case errors.Is(err, apperrors.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, dto.NewErrorDetail(dto.ErrorCodeFileTooLarge, "File exceeds the maximum allowed size")
	case errors.Is(err, apperrors.ErrUnsupportedFileType):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeUnsupportedFile, "Unsupported file type")
	case errors.Is(err, apperrors.ErrStorageFailure):
		return http.StatusBadGateway, dto.NewErrorDetail(dto.ErrorCodeExternalServiceError, "File storage is unavailable")

	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Email already exists")
	case errors.Is(err, apperrors.ErrResourceAlreadyExists), errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Resource conflict")
	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed")

	case errors.Is(err, apperrors.ErrUserNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "User not found")
	case errors.Is(err, apperrors.ErrProfileNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Profile not found")
	case errors.Is(err, apperrors.ErrFileNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "File not found")
	case errors.Is(err, apperrors.ErrJobNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Job not found")
	case errors.Is(err, apperrors.ErrApplicationNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Application not found")
	case errors.Is(err, apperrors.ErrEventNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Event not found")
	case errors.Is(err, apperrors.ErrNotificationNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Notification not found")
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Resource not found")

	default:
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
	}
}

// BindingError builds a 400 response for request binding failures
func BindingError(c *gin.Context, err error) {
	detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").
		WithDetails(err.Error())
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
}
