package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/collegesocial/internal/app/models/dto"
	"github.com/yigit/collegesocial/internal/pkg/validation"
)

// BindJSON binds the request body into obj and answers 400 when binding or the
// validator tags fail. It reports whether the handler may continue.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, validation.FormatBindingError(err))
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return false
	}
	return true
}

// RequireStudent reads the authenticated student id or answers 401.
func RequireStudent(c *gin.Context) (int64, bool) {
	id, ok := StudentID(c)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}
