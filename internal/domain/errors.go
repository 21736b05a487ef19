package domain

import "errors"

var (
	// ErrNotFound marks a reference to an identifier that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation marks malformed, missing or empty input.
	ErrValidation = errors.New("validation failed")
)
