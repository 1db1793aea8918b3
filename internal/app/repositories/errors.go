package repositories

import "errors"

// Repository level errors. Services translate them into the request taxonomy.
var (
	ErrStudentNotFound = errors.New("student not found")
	ErrERNExists       = errors.New("ern number already in use")
	ErrEmailExists     = errors.New("email already in use")
	ErrPostNotFound    = errors.New("post not found")
)
