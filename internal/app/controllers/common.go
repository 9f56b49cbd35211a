package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/prepsphere/backend/internal/app/models/dto"
	"github.com/prepsphere/backend/internal/middleware"
)

// requireUserID pulls the authenticated user ID out of the context.
// Writes a 401 response and returns false when it is missing.
func requireUserID(ctx *gin.Context) (int64, bool) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		detail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))
		return 0, false
	}
	return userID, true
}

// parseIDParam parses a numeric path parameter.
// Writes a 400 response and returns false on malformed input.
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name+" parameter")
		ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return 0, false
	}
	return id, true
}

// queryInt64 parses an optional numeric query parameter
func queryInt64(ctx *gin.Context, name string) *int64 {
	raw := ctx.Query(name)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &value
}

// queryInt parses an optional numeric query parameter
func queryInt(ctx *gin.Context, name string) *int {
	raw := ctx.Query(name)
	if raw == "" {
		return nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &value
}

// rawSnapshot passes a stored JSONB snapshot through without re-encoding
func rawSnapshot(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return json.RawMessage(b)
}

// queryString returns an optional query parameter
func queryString(ctx *gin.Context, name string) *string {
	raw := ctx.Query(name)
	if raw == "" {
		return nil
	}
	return &raw
}
