// Package apperror defines the error taxonomy shared by the service and
// handler layers.
//
// Services return *AppError values that wrap one of the sentinel errors
// below. Handlers never inspect messages; they match the sentinel with
// errors.Is and pick the HTTP status from it.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
	ErrDependency    = errors.New("dependency error")
	ErrTooLarge      = errors.New("payload too large")
)

type AppError struct {
	Err     error  // sentinel kind
	Message string // Human-readable error message
	Field   string // Optional: field causing the error
	Cause   error  // Optional: underlying store or media error
}

func (e *AppError) Error() string {
	return e.Message
}

// Unwrap exposes both the sentinel and the underlying cause, so
// errors.Is(err, ErrDependency) and errors.Is(err, context.DeadlineExceeded)
// both work on the same value.
func (e *AppError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// NotConfigured reports that a collaborator (the media service) is missing
// the settings it needs. HTTP handlers map this to 500.
func NotConfigured(message string) *AppError {
	return &AppError{
		Err:     ErrConfiguration,
		Message: message,
	}
}

// DependencyFailed wraps a failed store or media call. The underlying
// message is surfaced to the caller verbatim; fallback is used only when
// the cause carries no message of its own.
func DependencyFailed(fallback string, cause error) *AppError {
	msg := fallback
	if cause != nil && cause.Error() != "" {
		msg = cause.Error()
	}
	return &AppError{
		Err:     ErrDependency,
		Message: msg,
		Cause:   cause,
	}
}

// TooLarge reports a request body over the configured limit.
func TooLarge(limit int64) *AppError {
	return &AppError{
		Err:     ErrTooLarge,
		Message: fmt.Sprintf("request body exceeds %d bytes", limit),
	}
}
