package entity

import "errors"

// Domain errors
var (
	// Storage errors
	ErrQuotaExceeded = errors.New("storage quota exceeded")

	// Session errors
	ErrSessionClosed    = errors.New("session is closed")
	ErrAlreadySubmitted = errors.New("session is already submitted")
	ErrNotSubmitted     = errors.New("session is not submitted yet")
	ErrUnknownQuestion  = errors.New("unknown question")
	ErrInvalidRating    = errors.New("rating out of range")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidParameter = errors.New("invalid parameter")
)
