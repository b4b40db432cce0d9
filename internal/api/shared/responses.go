// Package shared provides the uniform request/response plumbing used by
// every API handler: the success/failure envelope, the error-normalizing
// handler wrapper and trace-ID helpers.
package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/commitlabs/commitment-api/internal/apperr"
)

// ErrorBody is the failure payload inside the envelope.
type ErrorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

type successEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type failureEnvelope struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}

// RespondWithJSON writes a JSON response with the given status code.
func RespondWithJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithData writes the uniform success envelope
// {"success": true, "data": payload} with the given status.
func RespondWithData(w http.ResponseWriter, status int, payload any) {
	RespondWithJSON(w, status, successEnvelope{Success: true, Data: payload})
}

// RespondWithAppError writes the uniform failure envelope for a taxonomy
// error, sets Retry-After for rate-limit errors and logs one structured
// line per handled error.
//
// Log level strategy: 5xx at ERROR, 429 at WARN, other 4xx at DEBUG.
func RespondWithAppError(w http.ResponseWriter, r *http.Request, appErr *apperr.Error) {
	traceID := GetTraceID(r.Context())

	logLevel := slog.LevelDebug
	if appErr.Status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	} else if appErr.Status == http.StatusTooManyRequests {
		logLevel = slog.LevelWarn
	}

	slog.LogAttrs(r.Context(), logLevel, "API error response",
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", appErr.Status),
		slog.String("error_code", appErr.Code),
		slog.String("message", appErr.Message))

	if appErr.RetryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(appErr.RetryAfter))
	}

	RespondWithJSON(w, appErr.Status, failureEnvelope{
		Success: false,
		Error: ErrorBody{
			Code:    appErr.Code,
			Message: appErr.Message,
			Details: appErr.Details,
		},
	})
}

// HandlerFunc is a fallible HTTP handler. Returning an error hands control
// to the wrapper, which always produces a well-formed response.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Handle adapts a fallible handler into an http.HandlerFunc that never
// lets an error escape: every error is normalized through the taxonomy and
// rendered as the uniform failure envelope. Unknown error messages are only
// exposed (inside details) when devMode is set.
func Handle(devMode bool, fn HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			RespondWithAppError(w, r, apperr.Normalize(err, devMode))
		}
	}
}
