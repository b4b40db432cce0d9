package api

import (
	"log/slog"
	"net/http"

	"github.com/commitlabs/commitment-api/internal/api/shared"
)

// AuthHandler serves the session endpoint. Credential verification is not
// implemented yet; the route exists so the rate-limit and envelope
// contracts are already in place when the wallet-signature flow lands.
type AuthHandler struct {
	logger *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(logger *slog.Logger) *AuthHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for AuthHandler")
	}
	return &AuthHandler{logger: logger.With(slog.String("component", "auth_handler"))}
}

// Authenticate handles POST /api/auth.
func (h *AuthHandler) Authenticate(w http.ResponseWriter, r *http.Request) error {
	// TODO: verify wallet signature and issue a session once the signing
	// flow is specified.
	shared.RespondWithData(w, http.StatusOK, map[string]any{
		"message": "Authentication successful.",
	})
	return nil
}
