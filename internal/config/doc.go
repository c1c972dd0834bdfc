// Package config loads runtime configuration for the NicheScope CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file given with -c / --config. Files ending in .yaml or
//     .yml are read as YAML, anything else as JSON.
//  3. Environment variables (see parseEnv).
//  4. Command-line flags, applied by the cmd package after LoadConfig.
//
// # File schema
//
// Durations use timex.Duration, so they may be strings like "1s" or integer
// nanoseconds:
//
//	{
//	  "store_driver": "sqlite",
//	  "store_dsn": "nichescope.db",
//	  "model": "gemini-2.5-flash",
//	  "max_attempts": 3,
//	  "retry_base_delay": "1s",
//	  "report_dir": "reports"
//	}
//
// The API key may live in the file (api_key) but is normally taken from the
// API_KEY or GEMINI_API_KEY environment variables.
package config
