package config

import (
	"context"
	"os"
	"time"

	"github.com/dmitrijs2005/savingsadmin/internal/logging"
	"github.com/sethvargo/go-envconfig"
)

// Config holds runtime settings for the savings admin CLI.
//
// Fields:
//   - APIBaseURL: scheme://host[:port] of the savings analyzer REST backend.
//   - DataDir: directory holding the local session database.
//   - LogLevel: debug, info, warn or error.
//   - LogBackend: "slog" (text) or "zap" (JSON).
//   - SessionCheckInterval: how often the client re-verifies the stored
//     session in the background; 0 disables the check.
type Config struct {
	APIBaseURL           string
	DataDir              string
	LogLevel             string
	LogBackend           string
	SessionCheckInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000"
	c.DataDir = ".savings"
	c.LogLevel = "info"
	c.LogBackend = logging.BackendSlog
	c.SessionCheckInterval = 0
}

// LoadConfig constructs a Config from defaults, then overlays the JSON file
// (if any), the environment and command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig(ctx context.Context) (*Config, error) {
	return load(ctx, os.Args[1:], envconfig.OsLookuper())
}

func load(ctx context.Context, args []string, lookuper envconfig.Lookuper) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(ctx, cfg, lookuper); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
