package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "sqlite", c.StoreDriver)
	assert.Equal(t, "nichescope.db", c.StoreDSN)
	assert.Equal(t, "nichescope_", c.KeyPrefix)
	assert.Equal(t, "gemini-2.5-flash", c.Model)
	assert.Equal(t, 10, c.NicheCount)
	assert.Equal(t, 3, c.MaxAttempts)
	assert.Equal(t, time.Second, c.RetryBaseDelay)
	assert.Empty(t, c.APIKey)
}

func TestLoadConfig_NoFileUsesDefaultsAndEnv(t *testing.T) {
	t.Setenv("API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "from-env")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "sqlite", cfg.StoreDriver)
	assert.Equal(t, "from-env", cfg.APIKey)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig("/definitely/not/here.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}
