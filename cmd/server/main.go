// Command server runs the commitment API.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/commitlabs/commitment-api/internal/config"
	"github.com/commitlabs/commitment-api/internal/platform/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A local .env is a development convenience; absence is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.Setup(cfg.Server)
	log.Info("configuration loaded",
		"environment", cfg.Server.Environment,
		"chain_writes_enabled", cfg.Soroban.ChainWritesEnabled)

	app := newApplication(cfg, log)
	return app.startHTTPServer(context.Background(), app.setupRouter())
}
