package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	apimw "github.com/commitlabs/commitment-api/internal/api/middleware"
	"github.com/commitlabs/commitment-api/internal/api/shared"
)

// setupRouter configures the application router with all routes and
// middleware. Rate limiting is applied per route so denials carry the
// route name and short-circuit before any business logic.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(apimw.Trace(app.logger))

	limit := app.rateLimiter.limiter.Limit
	h := func(fn shared.HandlerFunc) http.HandlerFunc {
		return shared.Handle(app.config.IsDevelopment(), fn)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h(app.handlers.system.Health))
		r.Get("/ready", h(app.handlers.system.Ready))
		r.Post("/seed", h(app.handlers.system.Seed))

		r.With(limit("api/auth")).Post("/auth", h(app.handlers.auth.Authenticate))

		r.Route("/commitments", func(r chi.Router) {
			r.Get("/", h(app.handlers.commitments.List))
			r.With(limit("api/commitments")).
				Post("/", h(app.handlers.commitments.Create))
			r.Get("/{id}", h(app.handlers.commitments.Get))
			r.With(limit("api/commitments/early-exit")).
				Post("/{id}/early-exit", h(app.handlers.commitments.EarlyExit))
			r.With(limit("api/commitments/settle")).
				Post("/{id}/settle", h(app.handlers.commitments.Settle))
		})

		r.Get("/attestations", h(app.handlers.attestation.List))
		r.Post("/attestations", h(app.handlers.attestation.Create))

		r.Route("/marketplace", func(r chi.Router) {
			r.Get("/", h(app.handlers.marketplace.Browse))
			r.Post("/listings", h(app.handlers.marketplace.CreateListing))
			r.Delete("/listings/{id}", h(app.handlers.marketplace.CancelListing))
		})
	})

	return r
}
