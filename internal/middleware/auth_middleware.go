package middleware

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yigit/collegesocial/internal/app/models/dto"
	"github.com/yigit/collegesocial/internal/pkg/apperrors"
	"github.com/yigit/collegesocial/internal/pkg/auth"
)

// Context keys set by JWTAuth
const (
	ContextStudentID = "studentID"
	ContextEmail     = "email"
)

// TokenCookie is the cookie login sets and the upload endpoint falls back to.
const TokenCookie = "token"

// TokenValidator verifies a bearer token and returns its claims.
type TokenValidator interface {
	ValidateToken(token string) (*auth.Claims, error)
}

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	tokens     TokenValidator
	adminToken string
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(tokens TokenValidator, adminToken string) *AuthMiddleware {
	return &AuthMiddleware{
		tokens:     tokens,
		adminToken: adminToken,
	}
}

type tokenSource func(c *gin.Context) string

func fromHeader(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	token, err := auth.ExtractBearerToken(strings.Trim(header, "\"'"))
	if err != nil {
		return ""
	}
	return token
}

func fromCookie(c *gin.Context) string {
	token, err := c.Cookie(TokenCookie)
	if err != nil {
		return ""
	}
	return token
}

func fromQuery(c *gin.Context) string {
	return c.Query("token")
}

// JWTAuth requires a student bearer token in the Authorization header.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return m.authenticate(fromHeader)
}

// JWTAuthWithCookie also accepts the token cookie. Used by the upload endpoint.
func (m *AuthMiddleware) JWTAuthWithCookie() gin.HandlerFunc {
	return m.authenticate(fromHeader, fromCookie)
}

// JWTAuthWithQuery also accepts ?token=. Browsers cannot set headers on a websocket upgrade.
func (m *AuthMiddleware) JWTAuthWithQuery() gin.HandlerFunc {
	return m.authenticate(fromHeader, fromQuery)
}

func (m *AuthMiddleware) authenticate(sources ...tokenSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string
		for _, source := range sources {
			if token = source(c); token != "" {
				break
			}
		}

		if token == "" {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			errorDetail = errorDetail.WithDetails("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		claims, err := m.tokens.ValidateToken(token)
		if err != nil {
			errorCode := dto.ErrorCodeInvalidToken
			errorDetails := "Invalid token"
			if errors.Is(err, apperrors.ErrTokenExpired) || errors.Is(err, auth.ErrExpiredToken) {
				errorCode = dto.ErrorCodeExpiredToken
				errorDetails = "Token has expired"
			}

			errorDetail := dto.NewErrorDetail(errorCode, "Authentication failed")
			errorDetail = errorDetail.WithDetails(errorDetails)
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Set(ContextStudentID, claims.StudentID)
		c.Set(ContextEmail, claims.Email)
		c.Next()
	}
}

// AdminAuth requires the configured administrative bearer token.
func (m *AuthMiddleware) AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := fromHeader(c)
		if token == "" || m.adminToken == "" ||
			subtle.ConstantTimeCompare([]byte(token), []byte(m.adminToken)) != 1 {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Unauthorized")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}
		c.Next()
	}
}

// StudentID returns the authenticated student id set by JWTAuth.
func StudentID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(ContextStudentID)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok && id > 0
}
