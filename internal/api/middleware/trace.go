// Package middleware provides HTTP middleware for the API: request
// tracing and per-client rate limiting.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/commitlabs/commitment-api/internal/api/shared"
)

// Trace attaches a trace ID to the request context and logs the incoming
// request. Apply it early so every downstream handler and error response
// can correlate on the same ID.
func Trace(logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.SetTraceID(r.Context())

			logger.Debug("request started",
				slog.String("trace_id", shared.GetTraceID(ctx)),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
