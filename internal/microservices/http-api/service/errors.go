package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrConflict           = errors.New("conflict")

	// Generative language collaborator
	ErrAssistantNotConfigured = errors.New("gemini api key not configured")
	ErrUpstreamRateLimited    = errors.New("upstream rate limited")
	ErrUpstreamUnavailable    = errors.New("upstream unavailable")
	ErrUpstreamFailed         = errors.New("upstream request failed")
	ErrUpstreamMalformed      = errors.New("failed to parse response from AI")
)

// ValidationError reports a caller supplied value that breaks a declared constraint.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// notFound turns a missing row into ErrNotFound with context. Any other error is a storage failure.
func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %w", what, ErrNotFound)
	}
	return storage(err)
}

// storage wraps a persistence failure so callers can match ErrStorageUnavailable.
func storage(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
}
