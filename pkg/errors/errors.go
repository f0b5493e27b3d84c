package errors

import (
	"fmt"
	"net/http"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeBusy       ErrorType = "busy"
	ErrorTypeDocument   ErrorType = "document"
	ErrorTypePage       ErrorType = "page"
	ErrorTypeEncode     ErrorType = "encode"
	ErrorTypeRemote     ErrorType = "remote"
	ErrorTypeInternal   ErrorType = "internal"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Details    string    `json:"details,omitempty"`
	StatusCode int       `json:"-"`
	Cause      error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a new validation error
func NewValidationError(message string, details ...string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		Details:    detail,
		StatusCode: http.StatusBadRequest,
	}
}

// NewBusyError creates the admission-rejected error returned when a run
// is already in flight.
func NewBusyError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeBusy,
		Message:    message,
		StatusCode: http.StatusTooManyRequests,
	}
}

// NewDocumentError creates the error returned when a PDF cannot be opened
func NewDocumentError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeDocument,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Cause:      cause,
	}
}

// NewPageError creates a per-page rasterization error
func NewPageError(page int, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypePage,
		Message:    fmt.Sprintf("failed to render page %d", page),
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// NewEncodeError creates a per-page image encoding error
func NewEncodeError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeEncode,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// NewRemoteCallError creates the error for a non-success HTTP response
// from the layout-parsing service. The remote status and body are kept
// as diagnostics.
func NewRemoteCallError(statusCode int, body string) *AppError {
	return &AppError{
		Type:       ErrorTypeRemote,
		Message:    fmt.Sprintf("layout parsing service returned status %d", statusCode),
		Details:    body,
		StatusCode: http.StatusBadGateway,
	}
}

// NewRemoteFormatError creates the error for a success response that does
// not carry the expected result envelope.
func NewRemoteFormatError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeRemote,
		Message:    message,
		StatusCode: http.StatusBadGateway,
		Cause:      cause,
	}
}

// NewInternalError creates a new internal server error
func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// IsType checks if the error is of a specific type
func IsType(err error, errorType ErrorType) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type == errorType
	}
	return false
}

// GetStatusCode returns the HTTP status code for an error
func GetStatusCode(err error) int {
	if appErr, ok := err.(*AppError); ok {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
