package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/collegesocial/internal/app/models"
	"github.com/yigit/collegesocial/internal/app/models/dto"
	"github.com/yigit/collegesocial/internal/pkg/apperrors"
)

var testCatalog = []models.InterestCategory{
	{Category: "sports", Options: []string{"Cricket", "Football"}},
	{Category: "hobbies", Options: []string{"Reading", "Music"}},
}

type profileFixture struct {
	svc     *ProfileService
	roster  *fakeRoster
	storage *fakeStorage
	asha    int64
	ravi    int64
}

func newProfileFixture() *profileFixture {
	f := &profileFixture{roster: newFakeRoster(), storage: &fakeStorage{}}
	f.asha = f.roster.addStudent(models.Student{
		ERNNumber:          "E100",
		Name:               "Asha Rao",
		Email:              "asha@x.edu",
		ProfilePicURL:      strPtr("https://cdn.test/profiles/1/old"),
		ProfilePicPublicID: strPtr("profiles/1/old"),
	})
	f.ravi = f.roster.addStudent(models.Student{ERNNumber: "E101", Name: "Ravi Kumar", Email: "ravi@x.edu"})
	interests := NewInterestService(&fakeInterests{catalog: testCatalog})
	f.svc = NewProfileService(f.roster, f.roster, interests, f.storage, zerolog.Nop())
	return f
}

func TestUpdateProfileReplacesPicture(t *testing.T) {
	f := newProfileFixture()

	updated, err := f.svc.Update(context.Background(), f.asha, dto.UpdateProfileRequest{
		ProfilePicURL: strPtr("https://cdn.test/profiles/1/new"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"profiles/1/old"}, f.storage.deleted)
	assert.Equal(t, "https://cdn.test/profiles/1/new", *updated.ProfilePicURL)
	assert.Equal(t, "profiles/1/new", *updated.ProfilePicPublicID)
}

func TestUpdateProfileSamePictureKeepsObject(t *testing.T) {
	f := newProfileFixture()

	_, err := f.svc.Update(context.Background(), f.asha, dto.UpdateProfileRequest{
		ProfilePicURL:      strPtr("https://cdn.test/profiles/1/old"),
		ProfilePicPublicID: strPtr("profiles/1/old"),
	})
	require.NoError(t, err)
	assert.Empty(t, f.storage.deleted)
}

func TestUpdateProfileStorageFailureChangesNothing(t *testing.T) {
	f := newProfileFixture()
	f.storage.deleteErr = errors.New("cloudinary: 503")

	_, err := f.svc.Update(context.Background(), f.asha, dto.UpdateProfileRequest{
		ProfilePicURL: strPtr("https://cdn.test/profiles/1/new"),
		MobileNumber:  strPtr("9876543210"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrCollaborator)

	s, _ := f.roster.student(f.asha)
	assert.Equal(t, "profiles/1/old", *s.ProfilePicPublicID)
	assert.Nil(t, s.MobileNumber)
}

func TestUpdateProfileRemovesPicture(t *testing.T) {
	f := newProfileFixture()

	updated, err := f.svc.Update(context.Background(), f.asha, dto.UpdateProfileRequest{ProfilePicURL: strPtr("")})
	require.NoError(t, err)
	assert.Nil(t, updated.ProfilePicURL)
	assert.Nil(t, updated.ProfilePicPublicID)
	assert.Equal(t, []string{"profiles/1/old"}, f.storage.deleted)
}

func TestUpdateProfileMobileAndInterests(t *testing.T) {
	f := newProfileFixture()
	selected := models.Interests{"sports": {"Cricket", "Cricket"}, "hobbies": {}}

	updated, err := f.svc.Update(context.Background(), f.ravi, dto.UpdateProfileRequest{
		MobileNumber: strPtr("+91 98765-43210"),
		Interests:    &selected,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.MobileNumber)
	assert.Equal(t, models.Interests{"sports": {"Cricket"}, "hobbies": {}}, updated.Interests)
	assert.Empty(t, f.storage.deleted)

	cleared, err := f.svc.Update(context.Background(), f.ravi, dto.UpdateProfileRequest{MobileNumber: strPtr("")})
	require.NoError(t, err)
	assert.Nil(t, cleared.MobileNumber)
}

func TestUpdateProfileValidation(t *testing.T) {
	f := newProfileFixture()
	unknownCategory := models.Interests{"cooking": {"Baking"}}
	unknownOption := models.Interests{"sports": {"Chess"}}

	tests := []struct {
		name  string
		req   dto.UpdateProfileRequest
		field string
	}{
		{"bad mobile", dto.UpdateProfileRequest{MobileNumber: strPtr("12ab")}, "mobile_number"},
		{"unknown category", dto.UpdateProfileRequest{Interests: &unknownCategory}, "interests"},
		{"unknown option", dto.UpdateProfileRequest{Interests: &unknownOption}, "interests"},
		{"public id alone", dto.UpdateProfileRequest{ProfilePicPublicID: strPtr("x")}, "profile_pic_url"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Update(context.Background(), f.asha, tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
			var ce *apperrors.CustomError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, tt.field, ce.Field)
		})
	}
	assert.Empty(t, f.storage.deleted)
}

func TestGetProfileUnknownStudent(t *testing.T) {
	f := newProfileFixture()
	_, err := f.svc.Get(context.Background(), 999)
	assert.ErrorIs(t, err, apperrors.ErrNotFoundOrUnauthorized)
}

func TestSearchStudents(t *testing.T) {
	f := newProfileFixture()
	ctx := context.Background()

	cards, err := f.svc.Search(ctx, f.asha, "ravi")
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "E101", cards[0].ERNNumber)
	assert.Equal(t, models.Interests{}, cards[0].Interests)

	cards, err = f.svc.Search(ctx, f.asha, "e10")
	require.NoError(t, err)
	assert.Len(t, cards, 1, "caller excluded")

	cards, err = f.svc.Search(ctx, f.asha, "  ")
	require.NoError(t, err)
	assert.NotNil(t, cards)
	assert.Empty(t, cards)
}
