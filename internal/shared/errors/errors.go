// Package errors provides application-level error types and utilities.
// The taxonomy distinguishes transient infrastructure failures (transport,
// repository, external channel) from per-message data problems (malformed
// message, validation) so callers can pick the right retry behavior.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation_error"
	ErrorTypeNotFound   ErrorType = "not_found"
	ErrorTypeConflict   ErrorType = "conflict"
	ErrorTypeInternal   ErrorType = "internal_error"

	// ErrorTypeTransport covers mailbox connection, auth and fetch failures.
	// Retried with backoff, never fatal to the process.
	ErrorTypeTransport ErrorType = "transport_error"

	// ErrorTypeRepository covers transaction failures on writes. The watermark
	// is not advanced for the affected message.
	ErrorTypeRepository ErrorType = "repository_error"

	// ErrorTypeExternalChannel covers webhook delivery failures. Logged,
	// never rolls back in-app notifications.
	ErrorTypeExternalChannel ErrorType = "external_channel_error"

	// ErrorTypeMalformedMessage covers unparseable sender or body. The message
	// is treated as filtered out so it cannot block the pipeline.
	ErrorTypeMalformedMessage ErrorType = "malformed_message"
)

// AppError represents an application error with additional context
type AppError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
	Err     error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func newError(t ErrorType, message string, details ...string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:    t,
		Message: message,
		Details: detail,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string, details ...string) *AppError {
	return newError(ErrorTypeValidation, message, details...)
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string, details ...string) *AppError {
	return newError(ErrorTypeNotFound, message, details...)
}

// NewConflictError creates a new conflict error
func NewConflictError(message string, details ...string) *AppError {
	return newError(ErrorTypeConflict, message, details...)
}

// NewInternalError creates a new internal error
func NewInternalError(message string, details ...string) *AppError {
	return newError(ErrorTypeInternal, message, details...)
}

// NewTransportError wraps a mailbox transport failure
func NewTransportError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeTransport, Message: message, Err: err}
}

// NewRepositoryError wraps a store write failure
func NewRepositoryError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeRepository, Message: message, Err: err}
}

// NewExternalChannelError wraps a webhook delivery failure
func NewExternalChannelError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeExternalChannel, Message: message, Err: err}
}

// NewMalformedMessageError marks an inbound message as unparseable
func NewMalformedMessageError(message string, details ...string) *AppError {
	return newError(ErrorTypeMalformedMessage, message, details...)
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts AppError from error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

func isType(err error, t ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == t
}

// IsConflictError checks if the error is a conflict error
func IsConflictError(err error) bool {
	return isType(err, ErrorTypeConflict)
}

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool {
	return isType(err, ErrorTypeNotFound)
}

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool {
	return isType(err, ErrorTypeValidation)
}

// IsTransportError checks if the error is a transport error
func IsTransportError(err error) bool {
	return isType(err, ErrorTypeTransport)
}

// IsRepositoryError checks if the error is a repository error
func IsRepositoryError(err error) bool {
	return isType(err, ErrorTypeRepository)
}

// IsMalformedMessageError checks if the error is a malformed message error
func IsMalformedMessageError(err error) bool {
	return isType(err, ErrorTypeMalformedMessage)
}

// IsDuplicateError checks if the error is a database duplicate key error
func IsDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	// MySQL duplicate entry error
	if strings.Contains(errStr, "Duplicate entry") || strings.Contains(errStr, "duplicate key") {
		return true
	}
	// PostgreSQL / SQLite unique violation
	if strings.Contains(errStr, "unique constraint") || strings.Contains(errStr, "UNIQUE constraint") {
		return true
	}
	return false
}
