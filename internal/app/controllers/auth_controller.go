// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/prepsphere/backend/internal/app/models/dto"
	"github.com/prepsphere/backend/internal/app/services"
	"github.com/prepsphere/backend/internal/middleware"
)

// AuthController handles authentication related operations
type AuthController struct {
	authService services.AuthService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

// Register handles student registration
// @Summary Register a new student account
// @Description Creates a student account and returns a token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration information"
// @Success 201 {object} dto.StructuredResponse{data=dto.AuthResponse} "Account created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if !middleware.ValidateRequest(ctx, &req) {
		return
	}

	authResponse, err := c.authService.Register(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("email", req.Email).Msg("Registration failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Str("email", req.Email).
		Int64("userID", authResponse.User.ID).
		Msg("Student account created")

	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(authResponse, "Account created successfully"))
}

// Login handles user login
// @Summary User login
// @Description Authenticates a user and returns a token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.StructuredResponse{data=dto.AuthResponse} "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 403 {object} dto.ErrorResponse "Account disabled"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !middleware.ValidateRequest(ctx, &req) {
		return
	}

	authResponse, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("email", req.Email).Msg("Login failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("email", req.Email).Msg("User logged in")
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(authResponse, "Login successful"))
}

// RefreshToken handles refresh token requests
// @Summary Refresh access token
// @Description Exchanges a valid refresh token for a new token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.StructuredResponse{data=dto.TokenResponse} "Token refreshed"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Invalid refresh token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/refresh-token [post]
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if !middleware.ValidateRequest(ctx, &req) {
		return
	}

	tokenResponse, err := c.authService.RefreshToken(ctx.Request.Context(), req.RefreshToken)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Refresh token failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(tokenResponse, "Token refreshed"))
}

// Logout invalidates all refresh tokens of the caller
// @Summary Log out
// @Description Revokes every refresh token issued to the authenticated user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse "Logged out"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	if err := c.authService.Logout(ctx.Request.Context(), userID); err != nil {
		c.logger.Error().Err(err).Int64("userID", userID).Msg("Logout failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("userID", userID).Msg("User logged out")
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(nil, "Logged out successfully"))
}

// ForgotPassword starts the password reset flow
// @Summary Request a password reset
// @Description Issues a reset token if the email belongs to an account. The response is identical either way.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ForgotPasswordRequest true "Account email"
// @Success 200 {object} dto.StructuredResponse "Reset requested"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/forgot-password [post]
func (c *AuthController) ForgotPassword(ctx *gin.Context) {
	var req dto.ForgotPasswordRequest
	if !middleware.ValidateRequest(ctx, &req) {
		return
	}

	token, err := c.authService.ForgotPassword(ctx.Request.Context(), req.Email)
	if err != nil {
		c.logger.Error().Err(err).Msg("Forgot password failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	// The token would normally be delivered by email. It is never included
	// in the response so account existence stays hidden.
	if token != "" {
		c.logger.Debug().Str("email", req.Email).Msg("Password reset token issued")
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(nil,
		"If the email belongs to an account, a reset link has been sent"))
}

// ResetPassword completes the password reset flow
// @Summary Reset password
// @Description Sets a new password using a valid reset token and revokes existing sessions
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ResetPasswordRequest true "Reset token and new password"
// @Success 200 {object} dto.StructuredResponse "Password reset"
// @Failure 400 {object} dto.ErrorResponse "Invalid or expired token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/reset-password [post]
func (c *AuthController) ResetPassword(ctx *gin.Context) {
	var req dto.ResetPasswordRequest
	if !middleware.ValidateRequest(ctx, &req) {
		return
	}

	if err := c.authService.ResetPassword(ctx.Request.Context(), req.Token, req.NewPassword); err != nil {
		c.logger.Warn().Err(err).Msg("Password reset failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Msg("Password reset completed")
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(nil, "Password has been reset"))
}
