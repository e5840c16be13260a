package service

import "errors"

// Sentinel errors form the client-facing taxonomy. Handlers map them to
// HTTP statuses; anything unwrapped becomes a 500.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
	ErrValidation   = errors.New("validation failed")
)
