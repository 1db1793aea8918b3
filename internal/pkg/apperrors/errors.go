package apperrors

import "errors"

// Request-level taxonomy. HandleAPIError maps each sentinel to one HTTP status.
var (
	// ErrUnauthenticated means the bearer credential is missing or invalid.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrInvalidCredentials is returned by login for an unknown email, a wrong password
	// or a student row that has no password yet.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrValidationFailed means a required field is missing or malformed.
	ErrValidationFailed = errors.New("validation failed")
	// ErrNotFoundOrUnauthorized collapses "no such row" and "row not owned by caller".
	ErrNotFoundOrUnauthorized = errors.New("not found or unauthorized")
	// ErrConflict is a uniqueness violation the caller can act on.
	ErrConflict = errors.New("conflict")
	// ErrStore wraps any failure of the roster or content store.
	ErrStore = errors.New("store operation failed")
	// ErrCollaborator wraps object storage and notification failures.
	ErrCollaborator = errors.New("external collaborator failed")
)

// Student errors
var (
	ErrStudentNotFound = errors.New("student not found")
	ErrEmailTaken      = errors.New("email already in use")
)

// Token errors
var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")
)

// CustomError carries a user-facing message next to one of the sentinels above.
type CustomError struct {
	Err     error
	Message string
	Field   string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithField names the offending request field.
func (e *CustomError) WithField(field string) *CustomError {
	e.Field = field
	return e
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// NewValidationError creates a validation error with a message
func NewValidationError(message string) *CustomError {
	return NewCustomError(ErrValidationFailed, message)
}

// NewNotFoundOrUnauthorizedError creates the collapsed ownership outcome with a message
func NewNotFoundOrUnauthorizedError(message string) *CustomError {
	return NewCustomError(ErrNotFoundOrUnauthorized, message)
}

// NewUnauthenticatedError creates an authentication error with a message
func NewUnauthenticatedError(message string) *CustomError {
	return NewCustomError(ErrUnauthenticated, message)
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) *CustomError {
	return NewCustomError(ErrConflict, message)
}

// StoreError wraps a store failure so that it matches ErrStore while keeping the cause.
func StoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &CustomError{Err: errors.Join(ErrStore, err), Message: op + ": " + err.Error()}
}

// CollaboratorError wraps an object storage or notification failure.
func CollaboratorError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &CustomError{Err: errors.Join(ErrCollaborator, err), Message: op + ": " + err.Error()}
}

// MessageOf returns the user-facing message of err when it carries one.
func MessageOf(err error) string {
	var ce *CustomError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message
	}
	return ""
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}
