package errors

import "errors"

var (
	ErrNotFound = errors.New("client not found")

	ErrInvalidID = errors.New("invalid client ID format")

	ErrPhoneTaken = errors.New("phone number already registered")
)
