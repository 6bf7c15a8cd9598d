// Package config loads runtime configuration for the savings admin CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Environment variables (SAVINGS_*).
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string     API base URL
//	-d string     data directory
//	-l string     log level
//	-i duration   background session check interval
//
// Environment
//
//	SAVINGS_API_URL, SAVINGS_DATA_DIR, SAVINGS_LOG_LEVEL,
//	SAVINGS_LOG_BACKEND, SAVINGS_SESSION_CHECK_INTERVAL
//
// # JSON schema
//
//	{
//	  "api_base_url": "https://api.example.com",
//	  "data_dir": "/var/lib/savings",
//	  "log_level": "debug",
//	  "log_backend": "zap",
//	  "session_check_interval": "1m"
//	}
package config
