package errors

import "errors"

var (
	ErrNotFound = errors.New("staff member not found")

	ErrInvalidID = errors.New("invalid staff ID format")
)
