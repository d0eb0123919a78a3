package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorType represents the classification of a failed API call
type ErrorType string

const (
	// ErrorTypeNone is returned for a nil error
	ErrorTypeNone ErrorType = ""

	// ErrorTypeNetwork indicates the request never completed (timeout, abort, connectivity)
	ErrorTypeNetwork ErrorType = "NETWORK"

	// ErrorTypeAPI indicates the server answered with an error status or an unusable body
	ErrorTypeAPI ErrorType = "API"

	// ErrorTypeValidation indicates an HTTP 400 carrying field-level messages
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypeUnknown covers local failures that never reached the transport,
	// such as an unencodable body or a malformed request path
	ErrorTypeUnknown ErrorType = "UNKNOWN"
)

// CodeValidation is the machine code attached to every ValidationError
const CodeValidation = "VALIDATION_ERROR"

// APIError is returned when the backend answered with a non-success status,
// or a success status with a body that could not be used.
type APIError struct {
	Status  int
	Code    string
	Message string
	Details interface{}
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s (status %d, code %s)", ErrorTypeAPI, e.Message, e.Status, e.Code)
	}
	return fmt.Sprintf("%s: %s (status %d)", ErrorTypeAPI, e.Message, e.Status)
}

// Retryable reports whether the status is worth another attempt
func (e *APIError) Retryable() bool {
	return IsRetryableStatus(e.Status)
}

// ValidationError is an APIError for HTTP 400 responses carrying per-field messages.
// It unwraps to its APIError so errors.As(err, &*APIError) also matches.
type ValidationError struct {
	APIError
	Fields map[string][]string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (%d invalid fields)", ErrorTypeValidation, e.Message, len(e.Fields))
}

// Unwrap exposes the embedded APIError
func (e *ValidationError) Unwrap() error {
	return &e.APIError
}

// NetworkError is returned when no usable response arrived
type NetworkError struct {
	Message  string
	Timeout  bool
	Canceled bool
	Err      error
}

// Error implements the error interface
func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrorTypeNetwork, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrorTypeNetwork, e.Message)
}

// Unwrap implements the unwrap interface
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// NewAPIError creates a new API error
func NewAPIError(status int, code, message string, details interface{}) *APIError {
	if message == "" {
		message = fmt.Sprintf("HTTP %d: %s", status, http.StatusText(status))
	}
	return &APIError{
		Status:  status,
		Code:    code,
		Message: message,
		Details: details,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string, fields map[string][]string) *ValidationError {
	if message == "" {
		message = "validation failed"
	}
	return &ValidationError{
		APIError: APIError{
			Status:  http.StatusBadRequest,
			Code:    CodeValidation,
			Message: message,
			Details: fields,
		},
		Fields: fields,
	}
}

// NewNetworkError creates a new network error
func NewNetworkError(message string, err error) *NetworkError {
	return &NetworkError{
		Message: message,
		Err:     err,
	}
}

// NewTimeoutError creates a network error for an attempt that ran out of time
func NewTimeoutError(err error) *NetworkError {
	return &NetworkError{
		Message: "request timeout",
		Timeout: true,
		Err:     err,
	}
}

// NewCanceledError creates a network error for a caller-initiated abort
func NewCanceledError(err error) *NetworkError {
	return &NetworkError{
		Message:  "request canceled",
		Canceled: true,
		Err:      err,
	}
}

// KindOf classifies err. A ValidationError wins over the APIError it wraps,
// and the outermost NetworkError wins over anything it wraps. Errors outside
// the taxonomy are ErrorTypeUnknown.
func KindOf(err error) ErrorType {
	if err == nil {
		return ErrorTypeNone
	}

	var netErr *NetworkError
	if stderrors.As(err, &netErr) {
		return ErrorTypeNetwork
	}

	var valErr *ValidationError
	if stderrors.As(err, &valErr) {
		return ErrorTypeValidation
	}

	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return ErrorTypeAPI
	}

	return ErrorTypeUnknown
}

// IsRetryableStatus reports whether an HTTP status should be retried: 408, 429 and 5xx
func IsRetryableStatus(status int) bool {
	return status == http.StatusRequestTimeout ||
		status == http.StatusTooManyRequests ||
		status >= http.StatusInternalServerError
}

// IsRetryable reports whether another attempt could succeed. Only network
// failures other than caller aborts and API failures with a retryable status
// qualify; anything unclassified is final.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if stderrors.Is(err, context.Canceled) {
		return false
	}

	var netErr *NetworkError
	if stderrors.As(err, &netErr) {
		return !netErr.Canceled
	}

	var valErr *ValidationError
	if stderrors.As(err, &valErr) {
		return false
	}

	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr.Retryable()
	}

	return false
}

// IsTimeout reports whether err is a network failure caused by a timeout
func IsTimeout(err error) bool {
	var netErr *NetworkError
	for stderrors.As(err, &netErr) {
		if netErr.Timeout {
			return true
		}
		err = netErr.Err
		netErr = nil
	}
	return false
}

// IsValidation reports whether err is, or wraps, a ValidationError
func IsValidation(err error) bool {
	var valErr *ValidationError
	return stderrors.As(err, &valErr)
}

// StatusOf returns the HTTP status carried by err, or 0 when none
func StatusOf(err error) int {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// FieldErrors returns the per-field messages of a ValidationError, or nil
func FieldErrors(err error) map[string][]string {
	var valErr *ValidationError
	if stderrors.As(err, &valErr) {
		return valErr.Fields
	}
	return nil
}
