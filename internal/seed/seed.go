package seed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/collegesocial/internal/app/models"
)

// CatalogSeeder stores the interest catalog when the collection is empty.
type CatalogSeeder interface {
	Seed(ctx context.Context, catalog []models.InterestCategory) (int, error)
}

// DefaultInterests is the catalog students pick profile interests from.
func DefaultInterests() []models.InterestCategory {
	return []models.InterestCategory{
		{
			Category: "sports",
			Options: []string{
				"Cricket", "Football", "Basketball", "Volleyball",
				"Badminton", "Table Tennis", "Chess", "Kabaddi",
			},
		},
		{
			Category: "hobbies",
			Options: []string{
				"Reading", "Gaming", "Music", "Dancing", "Photography",
				"Painting", "Writing", "Cooking", "Trekking",
			},
		},
		{
			Category: "domain",
			Options: []string{
				"Web Development", "Mobile Apps", "Cybersecurity", "Cloud Computing",
				"Data Science", "Blockchain", "IoT", "Machine Learning",
				"Artificial Intelligence", "Data Analysis", "Data Engineering", "DevOps",
			},
		},
	}
}

// CreateDefaultData seeds the interest catalog. An existing catalog is left untouched.
func CreateDefaultData(ctx context.Context, interests CatalogSeeder, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (interest catalog)...")

	inserted, err := interests.Seed(ctx, DefaultInterests())
	if err != nil {
		return fmt.Errorf("failed to seed interest catalog: %w", err)
	}

	if inserted == 0 {
		lgr.Info().Msg("Interest catalog already present, skipping")
		return nil
	}
	lgr.Info().Int("categories", inserted).Msg("Interest catalog seeded")
	return nil
}
