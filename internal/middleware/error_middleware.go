package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/collegesocial/internal/app/models/dto"
	"github.com/yigit/collegesocial/internal/pkg/apperrors"
)

// errorMapping ties a sentinel to its status, code and fallback message.
type errorMapping struct {
	target  error
	status  int
	code    dto.ErrorCode
	message string
	// public reports whether the CustomError message may be shown to the caller.
	public bool
}

var errorMappings = []errorMapping{
	{apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token has expired", true},
	{apperrors.ErrTokenInvalid, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token", true},
	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials", true},
	{apperrors.ErrUnauthenticated, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "Authentication required", true},
	{apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed", true},
	{apperrors.ErrNotFoundOrUnauthorized, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Not found or unauthorized", true},
	{apperrors.ErrConflict, http.StatusConflict, dto.ErrorCodeConflict, "Conflict", true},
	{apperrors.ErrCollaborator, http.StatusBadGateway, dto.ErrorCodeExternalServiceError, "External service failed", false},
	{apperrors.ErrStore, http.StatusInternalServerError, dto.ErrorCodeDatabaseError, "Internal server error", false},
}

// debugErrors exposes internal causes in DebugInfo. Enabled outside production.
var debugErrors bool

// SetDebugErrors toggles DebugInfo on 5xx responses.
func SetDebugErrors(enabled bool) {
	debugErrors = enabled
}

// HandleAPIError is the single translation from an error to the JSON error body.
// Store and collaborator causes never reach the caller's message.
func HandleAPIError(c *gin.Context, err error) {
	status, detail := errorDetailFor(err)
	if debugErrors && status >= http.StatusInternalServerError {
		detail = detail.WithDebugInfo("%v", err)
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}

func errorDetailFor(err error) (int, *dto.ErrorDetail) {
	var ce *apperrors.CustomError
	hasCustom := errors.As(err, &ce)

	for _, m := range errorMappings {
		if !errors.Is(err, m.target) {
			continue
		}
		message := m.message
		if m.public && hasCustom && ce.Message != "" {
			message = ce.Message
		}
		detail := dto.NewErrorDetail(m.code, message)
		if hasCustom {
			if ce.Field != "" {
				detail = detail.WithField(ce.Field)
			}
			if m.public && ce.Details != nil {
				detail = detail.WithDetails(ce.Details)
			}
		}
		return m.status, detail
	}

	return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
}
