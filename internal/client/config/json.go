package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/savingsadmin/internal/flagx"
	"github.com/dmitrijs2005/savingsadmin/internal/timex"
)

// JSONConfig is a DTO used exclusively for JSON unmarshalling. Intervals
// use timex.Duration so they can be written as "30s" or as nanoseconds.
// Fields left out of the file keep their previous values.
type JSONConfig struct {
	APIBaseURL           string          `json:"api_base_url"`
	DataDir              string          `json:"data_dir"`
	LogLevel             string          `json:"log_level"`
	LogBackend           string          `json:"log_backend"`
	SessionCheckInterval *timex.Duration `json:"session_check_interval"`
}

// parseJSON overlays cfg with the file named by -c or -config, if any.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var jc JSONConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&cfg.APIBaseURL, jc.APIBaseURL)
	setString(&cfg.DataDir, jc.DataDir)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogBackend, jc.LogBackend)
	if jc.SessionCheckInterval != nil {
		cfg.SessionCheckInterval = jc.SessionCheckInterval.Duration
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
