package chain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// healthCheckTimeout bounds the readiness probe; the RPC either answers
// quickly or the service reports not ready.
const healthCheckTimeout = 5 * time.Second

// RPCStatus is the result of probing the Soroban RPC endpoint.
type RPCStatus struct {
	Reachable bool   `json:"reachable"`
	LatencyMs int64  `json:"latencyMs,omitempty"`
	Error     string `json:"error,omitempty"`
}

// HealthChecker probes the configured Soroban RPC with the canonical
// getHealth JSON-RPC call.
type HealthChecker struct {
	rpcURL string
	client *http.Client
	logger *slog.Logger
}

// NewHealthChecker creates a checker for the given RPC URL. An empty URL is
// allowed; Check then reports unreachable with a not-configured error.
func NewHealthChecker(rpcURL string, logger *slog.Logger) *HealthChecker {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthChecker{
		rpcURL: rpcURL,
		client: &http.Client{Timeout: healthCheckTimeout},
		logger: logger.With(slog.String("component", "rpc_health")),
	}
}

// Configured reports whether an RPC URL is set at all.
func (h *HealthChecker) Configured() bool {
	return h.rpcURL != ""
}

// Check probes the RPC endpoint once and reports reachability and latency.
func (h *HealthChecker) Check(ctx context.Context) RPCStatus {
	if h.rpcURL == "" {
		h.logger.WarnContext(ctx, "soroban rpc url not configured, skipping connectivity check")
		return RPCStatus{Reachable: false, Error: "SOROBAN_RPC_URL not configured"}
	}

	payload, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "getHealth",
		"params":  []any{},
	})
	if err != nil {
		return RPCStatus{Reachable: false, Error: err.Error()}
	}

	probeCtx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodPost, h.rpcURL, bytes.NewReader(payload))
	if err != nil {
		return RPCStatus{Reachable: false, Error: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := h.client.Do(req)
	if err != nil {
		h.logger.ErrorContext(ctx, "soroban rpc connectivity check failed",
			slog.String("url", h.rpcURL),
			slog.String("error", err.Error()))
		return RPCStatus{Reachable: false, Error: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	latency := time.Since(start).Milliseconds()
	if resp.StatusCode != http.StatusOK {
		h.logger.WarnContext(ctx, "soroban rpc check failed",
			slog.Int("status", resp.StatusCode),
			slog.Int64("latency_ms", latency))
		return RPCStatus{
			Reachable: false,
			LatencyMs: latency,
			Error:     fmt.Sprintf("RPC responded with HTTP %d", resp.StatusCode),
		}
	}

	h.logger.DebugContext(ctx, "soroban rpc reachable", slog.Int64("latency_ms", latency))
	return RPCStatus{Reachable: true, LatencyMs: latency}
}
