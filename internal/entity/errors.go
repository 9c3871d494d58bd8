package entity

import "errors"

// Domain errors
var (
	// Session errors
	ErrSessionNotFound  = errors.New("session not found")
	ErrIntakeIncomplete = errors.New("intake is not complete")

	// External model errors
	ErrModelGateway = errors.New("model gateway failure")
	ErrExtraction   = errors.New("malformed extraction output")

	// Validation errors
	ErrMissingField      = errors.New("required field is missing")
	ErrInvalidParameter  = errors.New("invalid parameter")
	ErrUnsupportedFormat = errors.New("unsupported result format")
)
