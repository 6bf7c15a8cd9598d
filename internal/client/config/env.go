package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// envConfig lists the supported environment variables. Unset variables
// leave the corresponding Config field unchanged.
type envConfig struct {
	APIBaseURL           string        `env:"SAVINGS_API_URL"`
	DataDir              string        `env:"SAVINGS_DATA_DIR"`
	LogLevel             string        `env:"SAVINGS_LOG_LEVEL"`
	LogBackend           string        `env:"SAVINGS_LOG_BACKEND"`
	SessionCheckInterval time.Duration `env:"SAVINGS_SESSION_CHECK_INTERVAL"`
}

func parseEnv(ctx context.Context, cfg *Config, lookuper envconfig.Lookuper) error {
	var ec envConfig
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &ec,
		Lookuper: lookuper,
	}); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}

	setString(&cfg.APIBaseURL, ec.APIBaseURL)
	setString(&cfg.DataDir, ec.DataDir)
	setString(&cfg.LogLevel, ec.LogLevel)
	setString(&cfg.LogBackend, ec.LogBackend)
	if ec.SessionCheckInterval > 0 {
		cfg.SessionCheckInterval = ec.SessionCheckInterval
	}
	return nil
}
