package config

import "os"

// lookupEnv is a test seam for os.LookupEnv.
var lookupEnv = os.LookupEnv

// parseEnv overlays cfg with environment variables. API_KEY takes precedence
// over GEMINI_API_KEY; empty values are ignored.
func parseEnv(cfg *Config, lookup func(string) (string, bool)) {
	overlay := func(dst *string, names ...string) {
		for _, name := range names {
			if v, ok := lookup(name); ok && v != "" {
				*dst = v
				return
			}
		}
	}

	overlay(&cfg.APIKey, "API_KEY", "GEMINI_API_KEY")
	overlay(&cfg.StoreDriver, "NICHESCOPE_STORE_DRIVER")
	overlay(&cfg.StoreDSN, "NICHESCOPE_STORE_DSN")
	overlay(&cfg.Model, "NICHESCOPE_MODEL")
	overlay(&cfg.LogFormat, "NICHESCOPE_LOG_FORMAT")
}
