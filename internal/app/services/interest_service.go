package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yigit/collegesocial/internal/app/models"
	"github.com/yigit/collegesocial/internal/app/repositories"
	"github.com/yigit/collegesocial/internal/pkg/apperrors"
)

// InterestService reads the interest catalog and checks selections against it.
type InterestService struct {
	interests repositories.InterestStore
}

// NewInterestService creates a new InterestService
func NewInterestService(interests repositories.InterestStore) *InterestService {
	return &InterestService{interests: interests}
}

// List returns the whole catalog.
func (s *InterestService) List(ctx context.Context) ([]models.InterestCategory, error) {
	catalog, err := s.interests.List(ctx)
	if err != nil {
		return nil, apperrors.StoreError("failed to fetch interests", err)
	}
	return catalog, nil
}

// Validate rejects unknown categories and options. Duplicated options are dropped and the
// cleaned selection is returned.
func (s *InterestService) Validate(ctx context.Context, selected models.Interests) (models.Interests, error) {
	catalog, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	known := make(map[string]map[string]struct{}, len(catalog))
	for _, c := range catalog {
		opts := make(map[string]struct{}, len(c.Options))
		for _, o := range c.Options {
			opts[o] = struct{}{}
		}
		known[c.Category] = opts
	}

	cleaned := make(models.Interests, len(selected))
	for category, options := range selected {
		opts, ok := known[category]
		if !ok {
			return nil, apperrors.NewValidationError(fmt.Sprintf("Unknown interest category %q", category)).WithField("interests")
		}

		seen := make(map[string]struct{}, len(options))
		picked := make([]string, 0, len(options))
		var unknown []string
		for _, o := range options {
			if _, ok := opts[o]; !ok {
				unknown = append(unknown, o)
				continue
			}
			if _, dup := seen[o]; dup {
				continue
			}
			seen[o] = struct{}{}
			picked = append(picked, o)
		}
		if len(unknown) > 0 {
			return nil, apperrors.NewValidationError(
				fmt.Sprintf("Unknown %s interests: %s", category, strings.Join(unknown, ", ")),
			).WithField("interests")
		}
		cleaned[category] = picked
	}
	return cleaned, nil
}

// Seed fills an empty catalog.
func (s *InterestService) Seed(ctx context.Context, catalog []models.InterestCategory) (int, error) {
	return s.interests.SeedIfEmpty(ctx, catalog)
}
