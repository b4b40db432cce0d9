package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"sync"

	"golang.org/x/time/rate"

	"github.com/commitlabs/commitment-api/internal/api/shared"
	"github.com/commitlabs/commitment-api/internal/apperr"
	"github.com/commitlabs/commitment-api/internal/config"
)

// retryAfterSeconds is the Retry-After hint sent with rate-limit denials.
const retryAfterSeconds = 60

// limiterTableCap bounds the per-key limiter table; past it the table is
// reset rather than tracked with per-entry expiry.
const limiterTableCap = 10000

// RateLimiter applies a token-bucket limit per client IP and route name.
// Denials short-circuit before any business logic runs.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
	logger   *slog.Logger
}

// NewRateLimiter creates a rate limiter from configuration.
func NewRateLimiter(cfg config.RateLimitConfig, logger *slog.Logger) *RateLimiter {
	if logger == nil {
		logger = slog.Default()
	}
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(cfg.RequestsPerSecond),
		burst:    cfg.Burst,
		logger:   logger.With(slog.String("component", "rate_limiter")),
	}
}

// Allow reports whether a request for the given key may proceed.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if len(rl.limiters) > limiterTableCap {
		rl.limiters = make(map[string]*rate.Limiter)
	}

	limiter, ok := rl.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(rl.rps, rl.burst)
		rl.limiters[key] = limiter
	}
	return limiter.Allow()
}

// Limit returns middleware that rate-limits requests keyed by client IP
// and the given route name. Denied requests get 429 with a Retry-After
// header and never reach the wrapped handler.
func (rl *RateLimiter) Limit(routeName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientIP(r) + "|" + routeName

			if !rl.Allow(key) {
				rl.logger.Warn("rate limit exceeded",
					slog.String("key", key),
					slog.String("path", r.URL.Path),
					slog.String("method", r.Method))
				shared.RespondWithAppError(w, r, apperr.TooManyRequests(retryAfterSeconds))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP derives the client address. chi's RealIP middleware has already
// folded X-Forwarded-For into RemoteAddr by the time this runs.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		if r.RemoteAddr != "" {
			return r.RemoteAddr
		}
		return "anonymous"
	}
	return host
}
