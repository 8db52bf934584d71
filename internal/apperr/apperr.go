// internal/apperr/apperr.go
package apperr

import (
	"errors"
	"fmt"
)

// ErrorType classifies application errors.
type ErrorType string

const (
	ErrorTypeEncoding      ErrorType = "encoding_error"      // image payload unreadable
	ErrorTypeConfiguration ErrorType = "configuration_error" // missing credential
	ErrorTypeGeneration    ErrorType = "generation_error"    // generative service failure
	ErrorTypeNotFound      ErrorType = "not_found"
	ErrorTypeValidation    ErrorType = "validation_error"
	ErrorTypeConflict      ErrorType = "conflict"
)

// AppError carries a classified application error with a user-facing code.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
	Code    string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the wrapped cause.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an AppError of the given type.
func New(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Err:     cause,
		Code:    codeFor(errType),
	}
}

// NewEncodingError marks an unreadable image payload.
func NewEncodingError(message string, cause error) *AppError {
	return New(ErrorTypeEncoding, message, cause)
}

// NewConfigurationError marks a missing or unusable credential.
func NewConfigurationError(message string) *AppError {
	return New(ErrorTypeConfiguration, message, nil)
}

// NewGenerationError marks a failure during the generative service call.
func NewGenerationError(message string, cause error) *AppError {
	return New(ErrorTypeGeneration, message, cause)
}

// NewNotFoundError marks an operation referencing a missing id.
func NewNotFoundError(message string) *AppError {
	return New(ErrorTypeNotFound, message, nil)
}

// NewValidationError marks rejected input.
func NewValidationError(message string) *AppError {
	return New(ErrorTypeValidation, message, nil)
}

// NewConflictError marks an operation rejected by current state.
func NewConflictError(message string) *AppError {
	return New(ErrorTypeConflict, message, nil)
}

func isType(err error, t ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == t
	}
	return false
}

// IsEncoding reports whether err is an encoding error.
func IsEncoding(err error) bool { return isType(err, ErrorTypeEncoding) }

// IsConfiguration reports whether err is a configuration error.
func IsConfiguration(err error) bool { return isType(err, ErrorTypeConfiguration) }

// IsGeneration reports whether err is a generation error.
func IsGeneration(err error) bool { return isType(err, ErrorTypeGeneration) }

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool { return isType(err, ErrorTypeNotFound) }

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool { return isType(err, ErrorTypeValidation) }

// IsConflict reports whether err is a conflict error.
func IsConflict(err error) bool { return isType(err, ErrorTypeConflict) }

func codeFor(errType ErrorType) string {
	switch errType {
	case ErrorTypeEncoding:
		return "ENCODING_ERROR"
	case ErrorTypeConfiguration:
		return "NOT_CONFIGURED"
	case ErrorTypeGeneration:
		return "GENERATION_FAILED"
	case ErrorTypeNotFound:
		return "NOT_FOUND"
	case ErrorTypeValidation:
		return "VALIDATION_ERROR"
	case ErrorTypeConflict:
		return "CONFLICT"
	default:
		return "UNKNOWN_ERROR"
	}
}
