// Package analytics emits structured product events. The business logic
// lives elsewhere; these hooks exist so downstream pipelines (and tests)
// can observe that the right lifecycle points fired.
package analytics

import (
	"log/slog"
	"time"
)

// Event names recorded by the API.
const (
	EventCommitmentCreated   = "CommitmentCreated"
	EventCommitmentSettled   = "CommitmentSettled"
	EventCommitmentEarlyExit = "CommitmentEarlyExit"
	EventAttestationReceived = "AttestationReceived"
)

// Recorder writes analytics events through the structured logger.
type Recorder struct {
	logger *slog.Logger
}

// NewRecorder creates a Recorder. A nil logger falls back to the slog
// default.
func NewRecorder(logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{logger: logger.With(slog.String("component", "analytics"))}
}

// Record emits one event with an RFC3339 timestamp and an arbitrary
// payload.
func (r *Recorder) Record(event string, payload map[string]any) {
	attrs := []any{
		slog.String("event", event),
		slog.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
	}
	for k, v := range payload {
		attrs = append(attrs, slog.Any(k, v))
	}
	r.logger.Info("analytics event", attrs...)
}
