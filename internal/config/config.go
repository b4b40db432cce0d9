package config

// Config holds all application configuration, grouped by concern. It is
// loaded once at startup and passed down explicitly; no package memoizes it
// at process scope.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"     validate:"required"`
	Soroban   SorobanConfig   `mapstructure:"soroban"    validate:"required"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit" validate:"required"`
	MockData  MockDataConfig  `mapstructure:"mock_data"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port        int    `mapstructure:"port"        validate:"required,gt=0,lt=65536"`
	LogLevel    string `mapstructure:"log_level"   validate:"required,oneof=debug info warn error"`
	Environment string `mapstructure:"environment" validate:"required,oneof=development staging production"`
}

// SorobanConfig contains the Stellar/Soroban chain settings. Contract
// addresses may be empty; the chain layer validates them only when chain
// writes are enabled.
type SorobanConfig struct {
	RPCURL                    string `mapstructure:"rpc_url"`
	NetworkPassphrase         string `mapstructure:"network_passphrase"`
	CommitmentCoreContract    string `mapstructure:"commitment_core_contract"`
	CommitmentNFTContract     string `mapstructure:"commitment_nft_contract"`
	AttestationEngineContract string `mapstructure:"attestation_engine_contract"`
	ChainWritesEnabled        bool   `mapstructure:"chain_writes_enabled"`
}

// RateLimitConfig contains the per-client rate limiter settings.
type RateLimitConfig struct {
	RequestsPerSecond int `mapstructure:"requests_per_second" validate:"required,gt=0"`
	Burst             int `mapstructure:"burst"               validate:"required,gt=0"`
}

// MockDataConfig locates the flat-file mock dataset used while the chain
// integration is stubbed.
type MockDataConfig struct {
	Path string `mapstructure:"path"`
}

// IsDevelopment reports whether the server runs in development mode, which
// gates the seed endpoint and error detail exposure.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}
