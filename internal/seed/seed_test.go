package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/collegesocial/internal/app/models"
)

type recordingSeeder struct {
	got []models.InterestCategory
	n   int
	err error
}

func (r *recordingSeeder) Seed(_ context.Context, catalog []models.InterestCategory) (int, error) {
	r.got = catalog
	return r.n, r.err
}

func TestDefaultInterests(t *testing.T) {
	catalog := DefaultInterests()
	require.Len(t, catalog, 3)

	categories := make([]string, 0, len(catalog))
	for _, c := range catalog {
		categories = append(categories, c.Category)
		seen := map[string]bool{}
		for _, o := range c.Options {
			assert.False(t, seen[o], "duplicate option %q in %s", o, c.Category)
			seen[o] = true
		}
	}
	assert.Equal(t, []string{"sports", "hobbies", "domain"}, categories)
	assert.Contains(t, catalog[0].Options, "Cricket")
}

func TestCreateDefaultData(t *testing.T) {
	seeder := &recordingSeeder{n: 3}
	require.NoError(t, CreateDefaultData(context.Background(), seeder, zerolog.Nop()))
	assert.Len(t, seeder.got, 3)

	seeder = &recordingSeeder{}
	require.NoError(t, CreateDefaultData(context.Background(), seeder, zerolog.Nop()))

	seeder = &recordingSeeder{err: errors.New("mongo down")}
	err := CreateDefaultData(context.Background(), seeder, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mongo down")
}
