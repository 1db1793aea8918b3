package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/collegesocial/internal/app/models"
)

func TestInterestSeedOnlyWhenEmpty(t *testing.T) {
	store := &fakeInterests{}
	svc := NewInterestService(store)

	n, err := svc.Seed(context.Background(), testCatalog)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = svc.Seed(context.Background(), []models.InterestCategory{{Category: "domain", Options: []string{"AI"}}})
	require.NoError(t, err)
	assert.Zero(t, n)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testCatalog, list)
}

func TestInterestValidateKeepsOrderAndDropsDuplicates(t *testing.T) {
	svc := NewInterestService(&fakeInterests{catalog: testCatalog})

	cleaned, err := svc.Validate(context.Background(), models.Interests{"hobbies": {"Music", "Reading", "Music"}})
	require.NoError(t, err)
	assert.Equal(t, models.Interests{"hobbies": {"Music", "Reading"}}, cleaned)
}
