// Package controllers handles HTTP request handling
package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/collegesocial/internal/app/models/dto"
	"github.com/yigit/collegesocial/internal/app/services"
	"github.com/yigit/collegesocial/internal/middleware"
)

// AuthService is what AuthController needs from the auth service.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*services.LoginResult, error)
	ChangePassword(ctx context.Context, studentID int64, current, next string) error
}

// AuthController handles authentication related operations
type AuthController struct {
	authService  AuthService
	secureCookie bool
	logger       zerolog.Logger
}

// NewAuthController creates a new AuthController. secureCookie marks the token cookie Secure.
func NewAuthController(authService AuthService, secureCookie bool, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService:  authService,
		secureCookie: secureCookie,
		logger:       logger,
	}
}

// Login handles student login
// @Summary Student login
// @Description Exchanges email and password for a bearer token. The token is also set as the httpOnly "token" cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Invalid email or password"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	result, err := c.authService.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(middleware.TokenCookie, result.Token, int(result.ExpiresIn), "/", "", c.secureCookie, true)

	ctx.JSON(http.StatusOK, dto.LoginResponse{
		Success:   true,
		Token:     result.Token,
		TokenType: "Bearer",
		ExpiresIn: result.ExpiresIn,
		Student: dto.LoginStudent{
			ID:         result.Student.ID,
			Name:       result.Student.Name,
			Email:      result.Student.Email,
			FirstLogin: result.Student.FirstLogin,
		},
	})
}

// ChangePassword handles password changes
// @Summary Change password
// @Description Replaces the caller's password and clears the first-login flag.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ChangePasswordRequest true "Current and new password"
// @Success 200 {object} dto.SuccessResponse "Password changed"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized or wrong current password"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/change-password [post]
// @Security BearerAuth
func (c *AuthController) ChangePassword(ctx *gin.Context) {
	studentID, ok := middleware.RequireStudent(ctx)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.authService.ChangePassword(ctx.Request.Context(), studentID, req.CurrentPassword, req.NewPassword); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Password changed successfully"))
}
