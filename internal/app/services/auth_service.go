package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/yigit/collegesocial/internal/app/models"
	"github.com/yigit/collegesocial/internal/app/repositories"
	"github.com/yigit/collegesocial/internal/pkg/apperrors"
	"github.com/yigit/collegesocial/internal/pkg/auth"
)

// LoginResult is a signed access token and the student it belongs to.
type LoginResult struct {
	Token     string
	ExpiresIn int64
	Student   *models.Student
}

// AuthService handles authentication operations
type AuthService struct {
	students   repositories.StudentStore
	hasher     *auth.PasswordHasher
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	students repositories.StudentStore,
	hasher *auth.PasswordHasher,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		students:   students,
		hasher:     hasher,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Login checks email and password. Unknown emails, wrong passwords and rows without a
// password all yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	student, err := s.students.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrStudentNotFound) {
			s.logger.Warn().Str("email", email).Msg("Login attempt for unknown email")
			return nil, apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "Invalid email or password")
		}
		return nil, apperrors.StoreError("failed to look up student", err)
	}

	if !student.HasPassword() || !s.hasher.Check(*student.Password, password) {
		s.logger.Warn().Int64("studentID", student.ID).Msg("Login attempt with invalid password")
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "Invalid email or password")
	}

	token, expiresIn, err := s.jwtService.GenerateToken(student.ID, student.Email)
	if err != nil {
		s.logger.Error().Err(err).Int64("studentID", student.ID).Msg("Failed to sign access token")
		return nil, err
	}

	s.logger.Info().Int64("studentID", student.ID).Msg("Student logged in")
	return &LoginResult{Token: token, ExpiresIn: expiresIn, Student: student}, nil
}

// ChangePassword replaces the caller's password and clears the first-login flag.
func (s *AuthService) ChangePassword(ctx context.Context, studentID int64, current, next string) error {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, repositories.ErrStudentNotFound) {
			return apperrors.NewUnauthenticatedError("Student no longer exists")
		}
		return apperrors.StoreError("failed to look up student", err)
	}

	if !student.HasPassword() || !s.hasher.Check(*student.Password, current) {
		return apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "Current password is incorrect").WithField("current_password")
	}
	if current == next {
		return apperrors.NewValidationError("New password must differ from the current one").WithField("new_password")
	}

	hash, err := s.hasher.Hash(next)
	if err != nil {
		return err
	}
	if err := s.students.UpdatePassword(ctx, studentID, hash, false); err != nil {
		return apperrors.StoreError("failed to update password", err)
	}

	s.logger.Info().Int64("studentID", studentID).Msg("Password changed")
	return nil
}

// ValidateToken returns the claims of a bearer token.
func (s *AuthService) ValidateToken(token string) (*auth.Claims, error) {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil, apperrors.NewCustomError(apperrors.ErrTokenExpired, "Token has expired")
		}
		return nil, apperrors.NewCustomError(apperrors.ErrTokenInvalid, "Invalid token")
	}
	return claims, nil
}
