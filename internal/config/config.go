package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	JWTSecret   string `envconfig:"JWT_SECRET" required:"true"`

	// Chain verification settings. Leaving CHAIN_RPC_URL empty disables
	// on-chain verification: ledger rows then record the submitted hash as-is.
	ChainRPCURL         string `envconfig:"CHAIN_RPC_URL"`
	ChainTokenAddress   string `envconfig:"CHAIN_TOKEN_ADDRESS" default:"0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"`
	ChainConfirmations  uint64 `envconfig:"CHAIN_CONFIRMATIONS" default:"3"`
	ChainWaitTimeoutSec int    `envconfig:"CHAIN_WAIT_TIMEOUT_SEC" default:"90"`

	// Rate limiter settings (per client IP).
	RateLimitRPS   float64 `envconfig:"RATE_LIMIT_RPS" default:"5"`
	RateLimitBurst int     `envconfig:"RATE_LIMIT_BURST" default:"30"`

	// Session token lifetime in hours.
	SessionTTLHours int `envconfig:"SESSION_TTL_HOURS" default:"48"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
