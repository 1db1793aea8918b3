package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreErrorMatchesSentinelAndCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := fmt.Errorf("list posts: %w", StoreError("find posts", cause))

	assert.ErrorIs(t, err, ErrStore)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrCollaborator)
	assert.Equal(t, "find posts: connection reset", MessageOf(err))
}

func TestCollaboratorErrorNil(t *testing.T) {
	assert.NoError(t, CollaboratorError("delete media", nil))
	assert.NoError(t, StoreError("insert", nil))
}

func TestCustomErrorMessage(t *testing.T) {
	err := NewValidationError("Missing required fields: venue, date").WithField("details")

	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.Equal(t, "Missing required fields: venue, date", err.Error())
	assert.Equal(t, "details", err.Field)
	assert.True(t, Is(err, ErrConflict, ErrValidationFailed))

	bare := &CustomError{Err: ErrConflict}
	assert.Equal(t, "conflict", bare.Error())
	assert.Equal(t, "", MessageOf(errors.New("plain")))
}
