package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/savingsadmin/internal/flagx"
)

// parseFlags overlays cfg with command-line flags.
//
//	-a string   API base URL
//	-d string   data directory
//	-l string   log level
//	-i duration background session check interval ("0" disables it)
//
// Only these flags are looked at, see flagx.FilterArgs.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-l", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "savings analyzer API base URL")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "directory for local data")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.DurationVar(&cfg.SessionCheckInterval, "i", cfg.SessionCheckInterval, "session check interval")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}
