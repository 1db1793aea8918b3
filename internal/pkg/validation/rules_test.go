package validation

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestIsEmail(t *testing.T) {
	assert.True(t, IsEmail("asha@x.edu"))
	assert.True(t, IsEmail("Asha.Rao+cs@college.ac.in"))
	assert.False(t, IsEmail("asha"))
	assert.False(t, IsEmail("asha@x"))
}

func TestIsMobileNumber(t *testing.T) {
	assert.True(t, IsMobileNumber("9876543210"))
	assert.True(t, IsMobileNumber("+91 98765-43210"))
	assert.False(t, IsMobileNumber("12ab"))
	assert.False(t, IsMobileNumber(""))
}

func TestValidBatchYear(t *testing.T) {
	assert.True(t, ValidBatchYear(2026))
	assert.False(t, ValidBatchYear(0))
	assert.False(t, ValidBatchYear(3000))
}

func TestFormatBindingError(t *testing.T) {
	type req struct {
		Email    string `validate:"required,email"`
		Password string `validate:"required,min=8"`
	}
	err := validator.New().Struct(req{Email: "nope", Password: "short"})

	msg := FormatBindingError(err)
	assert.Contains(t, msg, "Email must be a valid email address")
	assert.Contains(t, msg, "Password must be at least 8")

	assert.Equal(t, "Invalid request format", FormatBindingError(errors.New("unexpected EOF")))
}
