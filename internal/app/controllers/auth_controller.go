// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nursingassoc/website/internal/app/models/dto"
	"github.com/nursingassoc/website/internal/app/services"
	"github.com/nursingassoc/website/internal/middleware"
	"github.com/nursingassoc/website/internal/pkg/auth"
	"github.com/rs/zerolog"
)

// AuthController handles authentication related operations
type AuthController struct {
	authService  services.AuthService
	secureCookie bool
	logger       zerolog.Logger
}

// NewAuthController creates a new AuthController. secureCookie marks the
// session cookie Secure and should be set behind TLS.
func NewAuthController(authService services.AuthService, secureCookie bool, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService:  authService,
		secureCookie: secureCookie,
		logger:       logger,
	}
}

// Login handles admin login
// @Summary Admin login
// @Description Authenticates an admin-area account, returns an access token and sets the session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.TokenResponse} "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 403 {object} dto.ErrorResponse "Account disabled"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !middleware.BindRequest(ctx, &req) {
		return
	}

	tokenResponse, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(auth.SessionCookieName, tokenResponse.AccessToken, int(tokenResponse.ExpiresIn), "/", "", c.secureCookie, true)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(tokenResponse))
}

// Logout clears the session cookie
// @Summary Logout
// @Tags auth
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(auth.SessionCookieName, "", -1, "/", "", c.secureCookie, true)
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Logged out"))
}

// Me returns the signed-in account
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required"),
		))
		return
	}

	user, err := c.authService.GetCurrentUser(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(user))
}

// ChangePassword updates the signed-in account's password
// @Summary Change password
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChangePasswordRequest true "Current and new password"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 401 {object} dto.ErrorResponse "Wrong current password"
// @Router /auth/password [put]
func (c *AuthController) ChangePassword(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required"),
		))
		return
	}

	var req dto.ChangePasswordRequest
	if !middleware.BindRequest(ctx, &req) {
		return
	}

	if err := c.authService.ChangePassword(ctx.Request.Context(), userID, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("userId", userID).Msg("Password changed")
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Password updated"))
}
