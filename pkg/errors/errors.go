// Package errors provides structured error handling for the application
package errors

import (
	"fmt"
	"net/http"
)

// ErrorCode represents an error code
type ErrorCode string

// Common error codes following RESTful API conventions
const (
	// Client errors (4xx)
	CodeBadRequest       ErrorCode = "BAD_REQUEST"
	CodeUnauthorized     ErrorCode = "UNAUTHORIZED"
	CodeForbidden        ErrorCode = "FORBIDDEN"
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeConflict         ErrorCode = "CONFLICT"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeTooManyRequests  ErrorCode = "TOO_MANY_REQUESTS"

	// Server errors (5xx)
	CodeInternal             ErrorCode = "INTERNAL_ERROR"
	CodeServiceUnavailable   ErrorCode = "SERVICE_UNAVAILABLE"
	CodeStorageError         ErrorCode = "STORAGE_ERROR"
	CodeExternalServiceError ErrorCode = "EXTERNAL_SERVICE_ERROR"

	// Business logic errors
	CodeProductNotFound    ErrorCode = "PRODUCT_NOT_FOUND"
	CodeRecipeNotFound     ErrorCode = "RECIPE_NOT_FOUND"
	CodeSlotNotFound       ErrorCode = "SLOT_NOT_FOUND"
	CodeTicketNotFound     ErrorCode = "TICKET_NOT_FOUND"
	CodeMemberNotFound     ErrorCode = "MEMBER_NOT_FOUND"
	CodePlanRequired       ErrorCode = "PLAN_REQUIRED"
	CodePermissionRequired ErrorCode = "PERMISSION_REQUIRED"
	CodeAccountSuspended   ErrorCode = "ACCOUNT_SUSPENDED"
	CodeAIUnavailable      ErrorCode = "AI_UNAVAILABLE"
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
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden, CodePlanRequired, CodePermissionRequired, CodeAccountSuspended:
		return http.StatusForbidden
	case CodeNotFound, CodeProductNotFound, CodeRecipeNotFound, CodeSlotNotFound,
		CodeTicketNotFound, CodeMemberNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeTooManyRequests:
		return http.StatusTooManyRequests
	case CodeServiceUnavailable, CodeAIUnavailable:
		return http.StatusServiceUnavailable
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

// NewBadRequestError creates a bad request error
func NewBadRequestError(message string) *AppError {
	return NewAppError(CodeBadRequest, message, "")
}

// NewValidationError creates a validation error
func NewValidationError(message, details string) *AppError {
	return NewAppError(CodeValidationFailed, message, details)
}

// NewNotFoundError creates a not found error
func NewNotFoundError(code ErrorCode, message string) *AppError {
	return NewAppError(code, message, "")
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError(message string) *AppError {
	return NewAppError(CodeUnauthorized, message, "")
}

// NewForbiddenError creates a forbidden error
func NewForbiddenError(code ErrorCode, message string) *AppError {
	return NewAppError(code, message, "")
}

// NewStorageError wraps a storage failure
func NewStorageError(cause error) *AppError {
	return NewAppError(CodeStorageError, "storage operation failed", "").WithCause(cause)
}

// NewAIUnavailableError reports an AI-backed operation that could not run
func NewAIUnavailableError(details string) *AppError {
	return NewAppError(CodeAIUnavailable, "AI service unavailable", details)
}

// IsCode reports whether err is an AppError with the given code
func IsCode(err error, code ErrorCode) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.Code == code
}
