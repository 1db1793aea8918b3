package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/collegesocial/internal/app/models"
	"github.com/yigit/collegesocial/internal/app/models/dto"
	"github.com/yigit/collegesocial/internal/app/repositories"
	"github.com/yigit/collegesocial/internal/pkg/apperrors"
	"github.com/yigit/collegesocial/internal/pkg/filestorage"
	"github.com/yigit/collegesocial/internal/pkg/validation"
)

// SearchLimit bounds student search results.
const SearchLimit = 20

// ProfileService reads and edits student profiles.
type ProfileService struct {
	students  repositories.StudentStore
	tx        repositories.RosterTransactor
	interests *InterestService
	storage   filestorage.ObjectStore
	logger    zerolog.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(
	students repositories.StudentStore,
	tx repositories.RosterTransactor,
	interests *InterestService,
	storage filestorage.ObjectStore,
	logger zerolog.Logger,
) *ProfileService {
	return &ProfileService{
		students:  students,
		tx:        tx,
		interests: interests,
		storage:   storage,
		logger:    logger,
	}
}

// Get returns the full profile of a student.
func (s *ProfileService) Get(ctx context.Context, studentID int64) (*models.Student, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, repositories.ErrStudentNotFound) {
			return nil, apperrors.NewNotFoundOrUnauthorizedError("Student not found")
		}
		return nil, apperrors.StoreError("failed to fetch profile", err)
	}
	return student, nil
}

// Card returns the public card of another student.
func (s *ProfileService) Card(ctx context.Context, studentID int64) (dto.StudentCard, error) {
	student, err := s.Get(ctx, studentID)
	if err != nil {
		return dto.StudentCard{}, err
	}
	return dto.NewStudentCard(student), nil
}

// Search finds other students by name or ERN prefix.
func (s *ProfileService) Search(ctx context.Context, callerID int64, query string) ([]dto.StudentCard, error) {
	cards := []dto.StudentCard{}
	if strings.TrimSpace(query) == "" {
		return cards, nil
	}

	students, err := s.students.Search(ctx, query, callerID, SearchLimit)
	if err != nil {
		return nil, apperrors.StoreError("failed to search students", err)
	}
	for i := range students {
		cards = append(cards, dto.NewStudentCard(&students[i]))
	}
	return cards, nil
}

// Update applies the present fields of req in one transaction. A new picture first
// releases the previous one from the object store; if that fails nothing is written.
// An empty profile_pic_url removes the picture.
func (s *ProfileService) Update(ctx context.Context, studentID int64, req dto.UpdateProfileRequest) (*models.Student, error) {
	var mobile *string
	if req.MobileNumber != nil {
		normalized := validation.NormalizeMobile(*req.MobileNumber)
		if normalized != "" {
			if !validation.IsMobileNumber(normalized) {
				return nil, apperrors.NewValidationError("Invalid mobile number").WithField("mobile_number")
			}
			mobile = &normalized
		}
	}

	var interests models.Interests
	if req.Interests != nil {
		cleaned, err := s.interests.Validate(ctx, *req.Interests)
		if err != nil {
			return nil, err
		}
		interests = cleaned
	}

	picURL, picID, err := resolvePicture(s.storage, req)
	if err != nil {
		return nil, err
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context, tx repositories.RosterTx) error {
		current, err := tx.Students.GetByID(ctx, studentID)
		if err != nil {
			if errors.Is(err, repositories.ErrStudentNotFound) {
				return apperrors.NewNotFoundOrUnauthorizedError("Student not found")
			}
			return apperrors.StoreError("failed to fetch profile", err)
		}

		if req.ProfilePicURL != nil {
			if old := current.ProfilePicPublicID; old != nil && *old != "" && (picID == nil || *old != *picID) {
				if err := s.storage.Delete(ctx, *old); err != nil {
					s.logger.Error().Err(err).Int64("studentID", studentID).Str("publicID", *old).Msg("Failed to delete previous profile picture")
					return apperrors.CollaboratorError("failed to delete previous profile picture", err)
				}
			}
			if err := tx.Students.UpdateProfilePicture(ctx, studentID, picURL, picID); err != nil {
				return apperrors.StoreError("failed to update profile picture", err)
			}
		}

		if req.MobileNumber != nil {
			if err := tx.Students.UpdateMobileNumber(ctx, studentID, mobile); err != nil {
				return apperrors.StoreError("failed to update mobile number", err)
			}
		}

		if req.Interests != nil {
			if err := tx.Students.UpdateInterests(ctx, studentID, interests); err != nil {
				return apperrors.StoreError("failed to update interests", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("studentID", studentID).Msg("Profile updated")
	return s.Get(ctx, studentID)
}

// resolvePicture keeps the url and public id paired. A missing public id is derived
// from the delivery URL.
func resolvePicture(storage filestorage.ObjectStore, req dto.UpdateProfileRequest) (*string, *string, error) {
	if req.ProfilePicURL == nil {
		if req.ProfilePicPublicID != nil {
			return nil, nil, apperrors.NewValidationError("profile_pic_public_id requires profile_pic_url").WithField("profile_pic_url")
		}
		return nil, nil, nil
	}

	url := strings.TrimSpace(*req.ProfilePicURL)
	if url == "" {
		return nil, nil, nil
	}

	publicID := ""
	if req.ProfilePicPublicID != nil {
		publicID = strings.TrimSpace(*req.ProfilePicPublicID)
	}
	if publicID == "" {
		publicID = storage.PublicIDFromURL(url)
	}
	if publicID == "" {
		return nil, nil, apperrors.NewValidationError("profile_pic_public_id is required").WithField("profile_pic_public_id")
	}
	return &url, &publicID, nil
}
