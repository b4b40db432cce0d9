package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commitlabs/commitment-api/internal/config"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimiterDeniesPastBurst(t *testing.T) {
	rl := NewRateLimiter(config.RateLimitConfig{RequestsPerSecond: 1, Burst: 2}, nil)
	handler := rl.Limit("api/commitments")(okHandler())

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/commitments", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, send().Code)
	assert.Equal(t, http.StatusOK, send().Code)

	rec := send()
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))

	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "TOO_MANY_REQUESTS", body.Error.Code)
}

func TestRateLimiterKeysByClientAndRoute(t *testing.T) {
	rl := NewRateLimiter(config.RateLimitConfig{RequestsPerSecond: 1, Burst: 1}, nil)

	assert.True(t, rl.Allow("10.0.0.1|api/commitments"))
	assert.False(t, rl.Allow("10.0.0.1|api/commitments"))

	// A different client or a different route draws from its own bucket.
	assert.True(t, rl.Allow("10.0.0.2|api/commitments"))
	assert.True(t, rl.Allow("10.0.0.1|api/auth"))
}

func TestClientIPFallbacks(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.1.5:5000"
	assert.Equal(t, "192.168.1.5", clientIP(req))

	req.RemoteAddr = "192.168.1.5"
	assert.Equal(t, "192.168.1.5", clientIP(req))

	req.RemoteAddr = ""
	assert.Equal(t, "anonymous", clientIP(req))
}
