package services

import "errors"

// Errors returned by the services. Callers match them with errors.Is;
// detail is added by wrapping.
var (
	ErrUnauthorized      = errors.New("authentication required")
	ErrForbidden         = errors.New("permission denied")
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("validation failed")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrConflict          = errors.New("conflict")
)
