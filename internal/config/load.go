package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// defaultSorobanRPCURL points at the public testnet RPC; deployments
// override it through SOROBAN_RPC_URL.
const (
	defaultSorobanRPCURL     = "https://soroban-testnet.stellar.org:443"
	defaultNetworkPassphrase = "Test SDF Network ; September 2015"
	defaultMockDataPath      = ".mock-db.json"
)

// envBindings maps config keys to the environment variables that populate
// them. The variable names are part of the deployment contract, so they are
// bound explicitly instead of derived from the key names.
var envBindings = map[string]string{
	"server.port":                         "PORT",
	"server.log_level":                    "LOG_LEVEL",
	"server.environment":                  "APP_ENV",
	"soroban.rpc_url":                     "SOROBAN_RPC_URL",
	"soroban.network_passphrase":          "SOROBAN_NETWORK_PASSPHRASE",
	"soroban.commitment_core_contract":    "COMMITMENT_CORE_CONTRACT",
	"soroban.commitment_nft_contract":     "COMMITMENT_NFT_CONTRACT",
	"soroban.attestation_engine_contract": "ATTESTATION_ENGINE_CONTRACT",
	"soroban.chain_writes_enabled":        "COMMITLABS_ENABLE_CHAIN_WRITES",
	"rate_limit.requests_per_second":      "RATE_LIMIT_RPS",
	"rate_limit.burst":                    "RATE_LIMIT_BURST",
	"mock_data.path":                      "MOCK_DB_PATH",
}

// Load reads configuration from environment variables, applies defaults and
// validates the result. Environment variables take precedence over
// defaults.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.environment", "development")
	v.SetDefault("soroban.rpc_url", defaultSorobanRPCURL)
	v.SetDefault("soroban.network_passphrase", defaultNetworkPassphrase)
	v.SetDefault("soroban.commitment_core_contract", "")
	v.SetDefault("soroban.commitment_nft_contract", "")
	v.SetDefault("soroban.attestation_engine_contract", "")
	v.SetDefault("soroban.chain_writes_enabled", false)
	v.SetDefault("rate_limit.requests_per_second", 10)
	v.SetDefault("rate_limit.burst", 20)
	v.SetDefault("mock_data.path", defaultMockDataPath)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
