package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/prepsphere/backend/internal/app/models/dto"
)

var validate = validator.New()

// ValidateRequest binds the JSON body into obj and validates its struct tags.
// On failure it writes a 400 response and returns false.
func ValidateRequest(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			respondValidationErrors(c, validationErrors)
			return false
		}
		BindingError(c, err)
		return false
	}

	if err := validate.Struct(obj); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			respondValidationErrors(c, validationErrors)
			return false
		}
		BindingError(c, err)
		return false
	}

	return true
}

func respondValidationErrors(c *gin.Context, validationErrors validator.ValidationErrors) {
	combined := dto.NewValidationErrors()
	for _, fieldError := range validationErrors {
		combined.AddError(fieldName(fieldError), formatValidationError(fieldError))
	}

	detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed").
		WithDetails(combined.Errors)
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
}

func fieldName(e validator.FieldError) string {
	field := e.Field()
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

// formatValidationError converts a validator tag into a readable message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "min":
		return fmt.Sprintf("Must be at least %s characters long", e.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters long", e.Param())
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s", e.Param())
	case "lte":
		return fmt.Sprintf("Must be less than or equal to %s", e.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", e.Param())
	case "dive":
		return "Contains invalid entries"
	default:
		return fmt.Sprintf("Failed validation for '%s'", e.Tag())
	}
}
