package domain

import "errors"

// Sentinel errors returned by services - match with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// ConflictError carries details about the resource a write collided with,
// e.g. a concurrent branch of the same source version hitting the unique
// (document_id, version_number) index.
type ConflictError struct {
	Message      string
	ResourceType string // "instruks" or "category"
	ResourceID   string
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return e.Message
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
