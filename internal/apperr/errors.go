// Package apperr defines the closed error taxonomy shared by every API
// route. Errors are the sole failure channel between validators, services
// and the handler wrapper; no sentinel return values cross that boundary.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Stable machine-readable error codes.
const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeTooManyRequests = "TOO_MANY_REQUESTS"
	CodeInternal        = "INTERNAL_ERROR"
)

// genericInternalMessage is what clients see for any error that is not part
// of the taxonomy. The underlying message is never leaked outside
// development mode.
const genericInternalMessage = "An unexpected error occurred. Please try again later."

// Error is a taxonomy error carrying a stable code, the HTTP status it maps
// to, a human-readable message and optional structured details for
// diagnostics.
type Error struct {
	Code    string
	Status  int
	Message string
	Details map[string]any

	// RetryAfter holds the Retry-After hint in seconds for rate-limit and
	// availability errors. Zero means no hint.
	RetryAfter int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Validation returns a 400 validation error.
func Validation(message string, details map[string]any) *Error {
	return &Error{Code: CodeValidation, Status: http.StatusBadRequest, Message: message, Details: details}
}

// Unauthorized returns a 401 error.
func Unauthorized(message string) *Error {
	if message == "" {
		message = "Authentication is required."
	}
	return &Error{Code: CodeUnauthorized, Status: http.StatusUnauthorized, Message: message}
}

// Forbidden returns a 403 error.
func Forbidden(message string, details map[string]any) *Error {
	return &Error{Code: CodeForbidden, Status: http.StatusForbidden, Message: message, Details: details}
}

// NotFound returns a 404 error for the named resource.
func NotFound(resource string, details map[string]any) *Error {
	return &Error{
		Code:    CodeNotFound,
		Status:  http.StatusNotFound,
		Message: fmt.Sprintf("%s not found.", resource),
		Details: details,
	}
}

// Conflict returns a 409 error.
func Conflict(message string, details map[string]any) *Error {
	return &Error{Code: CodeConflict, Status: http.StatusConflict, Message: message, Details: details}
}

// TooManyRequests returns a 429 error with a Retry-After hint in seconds.
func TooManyRequests(retryAfter int) *Error {
	if retryAfter <= 0 {
		retryAfter = 60
	}
	return &Error{
		Code:       CodeTooManyRequests,
		Status:     http.StatusTooManyRequests,
		Message:    "Too many requests. Please wait before trying again.",
		RetryAfter: retryAfter,
	}
}

// Internal returns a 500 error with the generic client-safe message.
func Internal(details map[string]any) *Error {
	return &Error{
		Code:    CodeInternal,
		Status:  http.StatusInternalServerError,
		Message: genericInternalMessage,
		Details: details,
	}
}

// Normalize maps any error onto the taxonomy. Taxonomy errors pass through
// unchanged. Everything else collapses to INTERNAL_ERROR; the underlying
// message is exposed in Details only when devMode is set, so unexpected
// errors never leak to clients in production builds.
func Normalize(err error, devMode bool) *Error {
	if err == nil {
		return Internal(nil)
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	if devMode {
		return Internal(map[string]any{"cause": err.Error()})
	}
	return Internal(nil)
}
