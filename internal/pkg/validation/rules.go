package validation

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validation rule patterns
var (
	EmailPattern  = `^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`
	MobilePattern = `^\+?[0-9]{7,15}$`

	PasswordMinLength = 8

	MinBatchYear = 1950
	MaxBatchYear = 2100
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email  *regexp.Regexp
	Mobile *regexp.Regexp
}{
	Email:  regexp.MustCompile(EmailPattern),
	Mobile: regexp.MustCompile(MobilePattern),
}

// IsEmail reports whether s looks like an email address.
func IsEmail(s string) bool {
	return CompiledPatterns.Email.MatchString(s)
}

// IsMobileNumber accepts digits with an optional leading +; spaces and dashes are ignored.
func IsMobileNumber(s string) bool {
	return CompiledPatterns.Mobile.MatchString(NormalizeMobile(s))
}

// NormalizeMobile strips spaces and dashes.
func NormalizeMobile(s string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(s))
}

// ValidBatchYear bounds the batch year column.
func ValidBatchYear(year int) bool {
	return year >= MinBatchYear && year <= MaxBatchYear
}

// FormatBindingError turns a gin binding error into a single readable message.
func FormatBindingError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Invalid request format"
	}

	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, formatFieldError(e))
	}
	return strings.Join(msgs, "; ")
}

func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
