package common

import "errors"

var (
	// Storage errors.
	ErrSessionCorrupted = errors.New("stored session is corrupted")

	// Input errors.
	ErrValidation = errors.New("validation error")

	// Admin errors.
	ErrAdminRequired = errors.New("admin access required")

	// Identity assertion errors.
	ErrInvalidAssertion = errors.New("invalid identity assertion")
)
