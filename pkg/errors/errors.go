package errors

import (
	"errors"
	"fmt"
)

// Error codes
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeNotFound     = "NOT_FOUND"
	CodePrecondition = "PRECONDITION_FAILED"
	CodeUpstream     = "UPSTREAM_ERROR"
	CodeGeneration   = "GENERATION_ERROR"
	CodeService      = "SERVICE_ERROR"
)

type AppError struct {
	Message    string
	Code       string
	StatusCode int
	Context    map[string]any
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func NewAppError(message, code string, statusCode int, context map[string]any) *AppError {
	return &AppError{
		Message:    message,
		Code:       code,
		StatusCode: statusCode,
		Context:    context,
	}
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// APIError represents a failed call to an upstream HTTP API. StatusCode
// carries the upstream HTTP status so callers can branch on it (e.g. 403).
type APIError struct {
	*AppError
}

func NewAPIError(message string, statusCode int, context map[string]any) *APIError {
	return &APIError{
		AppError: &AppError{
			Message:    message,
			Code:       CodeUpstream,
			StatusCode: statusCode,
			Context:    context,
		},
	}
}

func NewValidationError(message, field string, value any) *AppError {
	return &AppError{
		Message:    message,
		Code:       CodeValidation,
		StatusCode: 400,
		Context: map[string]any{
			"field": field,
			"value": value,
		},
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{Message: message, Code: CodeUnauthorized, StatusCode: 401}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Message: message, Code: CodeNotFound, StatusCode: 404}
}

// NewPreconditionError marks a caller-correctable failure, e.g. requesting
// idea generation before any audience analysis has produced a taste profile.
func NewPreconditionError(message string) *AppError {
	return &AppError{Message: message, Code: CodePrecondition, StatusCode: 400}
}

func NewGenerationError(message string) *AppError {
	return &AppError{Message: message, Code: CodeGeneration, StatusCode: 503}
}

// AsAppError unwraps err into an *AppError when possible.
func AsAppError(err error) (*AppError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.AppError, true
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
