// Package errors provides structured error handling for the application
// Following enterprise patterns for error management and observability
package errors

import (
	"fmt"
	"net/http"
)

// ErrorCode represents an error code
type ErrorCode string

// Error codes for the pantry core operations
const (
	// Client errors (4xx)
	CodeBadRequest       ErrorCode = "BAD_REQUEST"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeNotFound         ErrorCode = "NOT_FOUND"

	// Server errors (5xx)
	CodeInternal    ErrorCode = "INTERNAL_ERROR"
	CodePersistence ErrorCode = "PERSISTENCE_ERROR"
	CodeAsset       ErrorCode = "ASSET_ERROR"
	CodeGeneration  ErrorCode = "GENERATION_ERROR"
)

// AppError represents an application error with structured information
type AppError struct {
	Code     ErrorCode              `json:"code"`
	Message  string                 `json:"message"`
	Details  string                 `json:"details,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
	Cause    error                  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// StatusCode returns the appropriate HTTP status code
func (e *AppError) StatusCode() int {
	switch e.Code {
	case CodeBadRequest, CodeValidationFailed:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodePersistence, CodeAsset, CodeGeneration:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// WithMetadata adds metadata to the error
func (e *AppError) WithMetadata(key string, value interface{}) *AppError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// WithCause adds a cause error
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// NewAppError creates a new application error
func NewAppError(code ErrorCode, message, details string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// NewValidationError creates a validation error for rejected input
func NewValidationError(details string) *AppError {
	return NewAppError(CodeValidationFailed, "Validation failed", details)
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *AppError {
	message := "Resource not found"
	if resource != "" {
		message = fmt.Sprintf("%s not found", resource)
	}
	return NewAppError(CodeNotFound, message, "")
}

// NewPersistenceError creates an error for a failed document-store operation
func NewPersistenceError(operation string, cause error) *AppError {
	return NewAppError(
		CodePersistence,
		"Inventory store operation failed",
		fmt.Sprintf("Failed to %s", operation),
	).WithCause(cause)
}

// NewAssetError creates an error for a failed blob-store operation
func NewAssetError(operation string, cause error) *AppError {
	return NewAppError(
		CodeAsset,
		"Image asset operation failed",
		fmt.Sprintf("Failed to %s", operation),
	).WithCause(cause)
}

// NewGenerationError creates an error for a failed recipe generation run
func NewGenerationError(details string, cause error) *AppError {
	return NewAppError(CodeGeneration, "Recipe generation failed", details).WithCause(cause)
}

// NewInternalError creates an internal error
func NewInternalError(message string) *AppError {
	if message == "" {
		message = "An unexpected error occurred"
	}
	return NewAppError(CodeInternal, message, "")
}

// Wrap wraps an error as an internal error if it's not already an AppError
func Wrap(err error, message string) *AppError {
	if err == nil {
		return nil
	}

	if appErr, ok := err.(*AppError); ok {
		return appErr
	}

	return NewInternalError(message).WithCause(err)
}

// Is checks if an error is of a specific error code
func Is(err error, code ErrorCode) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == code
	}
	return false
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return CodeInternal
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

// ErrorDetails represents the error details in API responses
type ErrorDetails struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

// ToErrorResponse converts an AppError to an API error response
func ToErrorResponse(err *AppError) ErrorResponse {
	return ErrorResponse{
		Error: ErrorDetails{
			Code:    err.Code,
			Message: err.Message,
			Details: err.Details,
		},
	}
}
