package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/commitlabs/commitment-api/internal/api/shared"
	"github.com/commitlabs/commitment-api/internal/apperr"
	"github.com/commitlabs/commitment-api/internal/chain"
	"github.com/commitlabs/commitment-api/internal/store"
)

// SystemHandler serves the health, readiness and development-seed
// endpoints.
type SystemHandler struct {
	checker  *chain.HealthChecker
	mockData *store.MockFileStore
	devMode  bool
	logger   *slog.Logger
}

// NewSystemHandler creates a SystemHandler.
func NewSystemHandler(checker *chain.HealthChecker, mockData *store.MockFileStore, devMode bool, logger *slog.Logger) *SystemHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for SystemHandler")
	}
	return &SystemHandler{
		checker:  checker,
		mockData: mockData,
		devMode:  devMode,
		logger:   logger.With(slog.String("component", "system_handler")),
	}
}

// Health handles GET /api/health. Liveness only; it never touches
// downstream dependencies.
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) error {
	h.logger.Debug("healthcheck requested")
	shared.RespondWithJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
	return nil
}

// Ready handles GET /api/ready. It probes the Soroban RPC endpoint and
// reports 503 when the configured RPC is unreachable. An unconfigured RPC
// does not block readiness.
func (h *SystemHandler) Ready(w http.ResponseWriter, r *http.Request) error {
	var (
		ready bool
		check any
	)

	if !h.checker.Configured() {
		ready = true
		check = map[string]any{"reachable": nil, "note": "not configured"}
	} else {
		rpc := h.checker.Check(r.Context())
		ready = rpc.Reachable
		check = rpc
	}

	status := "ready"
	httpStatus := http.StatusOK
	if !ready {
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	}

	h.logger.Info("readiness check complete", slog.Bool("ready", ready))
	shared.RespondWithJSON(w, httpStatus, map[string]any{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"checks":    map[string]any{"sorobanRpc": check},
	})
	return nil
}

// Seed handles POST /api/seed. It regenerates the flat-file mock dataset
// and only exists in development mode.
func (h *SystemHandler) Seed(w http.ResponseWriter, r *http.Request) error {
	if !h.devMode {
		return apperr.NotFound("Resource", nil)
	}

	if err := h.mockData.Save(store.DefaultMockData()); err != nil {
		h.logger.Error("failed to seed mock data", slog.String("error", err.Error()))
		return err
	}

	shared.RespondWithData(w, http.StatusOK, map[string]any{
		"message": "Mock data seeded successfully.",
	})
	return nil
}
