// Package errors defines the typed errors returned by the go-sparse packages.
package errors

import (
	"fmt"
)

// Error types
const (
	// ErrInvalidArgument is returned when an invalid argument is provided
	ErrInvalidArgument = "invalid_argument"

	// ErrIOFailure is returned when reading or writing the pattern file or
	// repository configuration fails
	ErrIOFailure = "io_failure"

	// ErrLockFailure is returned when a file lock cannot be acquired
	ErrLockFailure = "lock_failure"

	// ErrNotFound is returned when a configuration key or file is absent
	ErrNotFound = "not_found"

	// ErrInvalidValue is returned when a configuration value cannot be parsed
	ErrInvalidValue = "invalid_value"

	// ErrBareRepository is returned when an operation needs a working tree
	// and the repository has none
	ErrBareRepository = "bare_repository"
)

// Error represents an error in the application
type Error struct {
	// Type is the error type
	Type string

	// Message is the error message
	Message string

	// Cause is the underlying error
	Cause error
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %s", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new error
func NewError(errorType, message string, cause error) *Error {
	return &Error{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// NewInvalidArgumentError creates a new invalid argument error
func NewInvalidArgumentError(message string, cause error) *Error {
	return NewError(ErrInvalidArgument, message, cause)
}

// NewIOFailureError creates a new I/O failure error
func NewIOFailureError(message string, cause error) *Error {
	return NewError(ErrIOFailure, message, cause)
}

// NewLockFailureError creates a new lock failure error
func NewLockFailureError(message string, cause error) *Error {
	return NewError(ErrLockFailure, message, cause)
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string, cause error) *Error {
	return NewError(ErrNotFound, message, cause)
}

// NewInvalidValueError creates a new invalid value error
func NewInvalidValueError(message string, cause error) *Error {
	return NewError(ErrInvalidValue, message, cause)
}

// NewBareRepositoryError creates a new bare repository error
func NewBareRepositoryError(message string, cause error) *Error {
	return NewError(ErrBareRepository, message, cause)
}

// IsInvalidArgument checks if the error is an invalid argument error
func IsInvalidArgument(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Type == ErrInvalidArgument
}

// IsIOFailure checks if the error is an I/O failure error
func IsIOFailure(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Type == ErrIOFailure
}

// IsLockFailure checks if the error is a lock failure error
func IsLockFailure(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Type == ErrLockFailure
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Type == ErrNotFound
}

// IsInvalidValue checks if the error is an invalid value error
func IsInvalidValue(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Type == ErrInvalidValue
}

// IsBareRepository checks if the error is a bare repository error
func IsBareRepository(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Type == ErrBareRepository
}
