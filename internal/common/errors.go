package common

import "errors"

var (
	// ErrValidation marks input rejected before any network call.
	ErrValidation = errors.New("validation error")

	// ErrorNotFound is returned when an entry is not present in the loaded collection.
	ErrorNotFound = errors.New("not found")

	// ErrorUnauthorized is returned when a gate rejects the candidate password.
	ErrorUnauthorized = errors.New("unauthorized")

	// ErrInvalidToken is returned for malformed, forged or mis-scoped unlock tokens.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired is returned for unlock tokens past their lifetime.
	ErrTokenExpired = errors.New("token expired")
)
