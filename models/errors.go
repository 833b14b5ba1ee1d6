package models

import "errors"

// Sentinel errors shared across the persistence and service layers.
// Callers wrap them with fmt.Errorf("...: %w", err) and match with errors.Is.
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrForbidden         = errors.New("forbidden")
	ErrConflict          = errors.New("conflict")
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnauthorized      = errors.New("unauthorized")

	// ErrStoreUnavailable marks a durable-store connectivity failure. It never
	// leaves the durable layer; the fallback wrapper absorbs it.
	ErrStoreUnavailable = errors.New("durable store unavailable")
)
