package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/commitlabs/commitment-api/internal/api/shared"
)

func TestTraceAttachesTraceID(t *testing.T) {
	var seen string
	handler := Trace(nil)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = shared.GetTraceID(r.Context())
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.NotEmpty(t, seen)

	first := seen
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.NotEqual(t, first, seen, "each request gets its own trace ID")
}
