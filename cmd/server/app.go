package main

import (
	"log/slog"

	"github.com/commitlabs/commitment-api/internal/api"
	apimw "github.com/commitlabs/commitment-api/internal/api/middleware"
	"github.com/commitlabs/commitment-api/internal/chain"
	"github.com/commitlabs/commitment-api/internal/config"
	"github.com/commitlabs/commitment-api/internal/platform/analytics"
	"github.com/commitlabs/commitment-api/internal/service/marketplace"
	"github.com/commitlabs/commitment-api/internal/store"
)

// application holds the wired dependencies of the server. Everything is
// constructed once at startup and passed down explicitly.
type application struct {
	config *config.Config
	logger *slog.Logger

	rateLimiter *rateLimiterDeps
	handlers    *handlerDeps
}

type rateLimiterDeps struct {
	limiter *apimw.RateLimiter
}

type handlerDeps struct {
	system      *api.SystemHandler
	auth        *api.AuthHandler
	commitments *api.CommitmentHandler
	attestation *api.AttestationHandler
	marketplace *api.MarketplaceHandler
}

// newApplication wires the service graph from configuration.
func newApplication(cfg *config.Config, logger *slog.Logger) *application {
	chainClient := chain.NewClient(cfg.Soroban, logger)
	healthChecker := chain.NewHealthChecker(cfg.Soroban.RPCURL, logger)
	mockData := store.NewMockFileStore(cfg.MockData.Path)
	recorder := analytics.NewRecorder(logger)

	listingStore := store.NewMemoryListingStore()
	marketplaceService := marketplace.NewService(listingStore, logger)

	return &application{
		config: cfg,
		logger: logger,
		rateLimiter: &rateLimiterDeps{
			limiter: apimw.NewRateLimiter(cfg.RateLimit, logger),
		},
		handlers: &handlerDeps{
			system:      api.NewSystemHandler(healthChecker, mockData, cfg.IsDevelopment(), logger),
			auth:        api.NewAuthHandler(logger),
			commitments: api.NewCommitmentHandler(chainClient, mockData, recorder, cfg.Soroban.CommitmentNFTContract, logger),
			attestation: api.NewAttestationHandler(mockData, recorder, logger),
			marketplace: api.NewMarketplaceHandler(marketplaceService, mockData, logger),
		},
	}
}
