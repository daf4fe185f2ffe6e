package errors

import (
	"errors"
	"fmt"
)

// Common application errors with proper types for error handling

var (
	// ErrNotFound indicates a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrAccessDenied indicates the user doesn't have permission
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput indicates invalid input data
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates missing or invalid authentication
	ErrUnauthorized = errors.New("unauthorized")

	// ErrConflict indicates a conflict with existing data
	ErrConflict = errors.New("conflict")

	// ErrOverlap indicates a time range collides with an existing slot
	ErrOverlap = errors.New("overlaps with an existing slot")

	// ErrInvalidState indicates an illegal lifecycle transition
	ErrInvalidState = errors.New("invalid state transition")

	// ErrInternal indicates an internal server error
	ErrInternal = errors.New("internal error")
)

// NotFoundError creates a not found error with context
func NotFoundError(resource string) error {
	return fmt.Errorf("%s %w", resource, ErrNotFound)
}

// AccessDeniedError creates an access denied error with context
func AccessDeniedError(reason string) error {
	if reason != "" {
		return fmt.Errorf("%s: %w", reason, ErrAccessDenied)
	}
	return ErrAccessDenied
}

// InvalidInputError creates an invalid input error with context
func InvalidInputError(field, reason string) error {
	return fmt.Errorf("%s: %s: %w", field, reason, ErrInvalidInput)
}

// ConflictError creates a conflict error with context
func ConflictError(reason string) error {
	return fmt.Errorf("%s: %w", reason, ErrConflict)
}

// InvalidStateError creates an invalid state error naming the current status
func InvalidStateError(from, attempted string) error {
	return fmt.Errorf("cannot %s from status %q: %w", attempted, from, ErrInvalidState)
}

// InternalError creates an internal error with context
func InternalError(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrInternal)
}

// OverlapError is returned when a slot's time range intersects another slot
// of the same tutor. It carries the conflicting slot id so callers can report
// it back to the client.
type OverlapError struct {
	ConflictingSlotID int
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("time range overlaps with slot %d", e.ConflictingSlotID)
}

// Unwrap makes OverlapError match ErrOverlap via errors.Is
func (e *OverlapError) Unwrap() error {
	return ErrOverlap
}

// Is checks if an error matches a target error (works with wrapped errors)
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
