package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEnv(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantKey string
		wantDSN string
	}{
		{name: "nothing set", env: map[string]string{}, wantKey: "file-key", wantDSN: "file.db"},
		{name: "gemini key", env: map[string]string{"GEMINI_API_KEY": "g"}, wantKey: "g", wantDSN: "file.db"},
		{name: "api key wins", env: map[string]string{"API_KEY": "a", "GEMINI_API_KEY": "g"}, wantKey: "a", wantDSN: "file.db"},
		{name: "empty ignored", env: map[string]string{"API_KEY": "", "NICHESCOPE_STORE_DSN": "env.db"}, wantKey: "file-key", wantDSN: "env.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{APIKey: "file-key", StoreDSN: "file.db"}
			parseEnv(cfg, func(k string) (string, bool) {
				v, ok := tt.env[k]
				return v, ok
			})

			assert.Equal(t, tt.wantKey, cfg.APIKey)
			assert.Equal(t, tt.wantDSN, cfg.StoreDSN)
		})
	}
}
