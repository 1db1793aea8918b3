package repositories

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestDuplicateErrorMapsConstraints(t *testing.T) {
	// A unique index reports its own name as the constraint.
	emailIndex := &pgconn.PgError{Code: "23505", ConstraintName: "students_email_key"}
	assert.ErrorIs(t, duplicateError(fmt.Errorf("insert: %w", emailIndex)), ErrEmailExists)

	ern := &pgconn.PgError{Code: "23505", ConstraintName: "students_ern_number_key"}
	assert.ErrorIs(t, duplicateError(ern), ErrERNExists)

	other := &pgconn.PgError{Code: "23503", ConstraintName: "students_email_key"}
	assert.NoError(t, duplicateError(other))
	assert.NoError(t, duplicateError(errors.New("conn reset")))
}
