package config

import "time"

// Config holds runtime settings for NicheScope.
//
// Fields:
//   - StoreDriver / StoreDSN: key-value backend ("memory", "sqlite", "postgres") and its DSN.
//   - KeyPrefix: physical prefix added to every key in the store.
//   - APIKey / Model / Language / NicheCount: completion service settings.
//   - MaxAttempts / RetryBaseDelay / RequestTimeout: analysis retry policy.
//   - ReportDir and S3*: where exported reports go. When S3Bucket is set,
//     reports are uploaded instead of written to ReportDir.
//   - LogFormat: "text", "json" or "zap".
type Config struct {
	StoreDriver string
	StoreDSN    string
	KeyPrefix   string

	APIKey     string
	Model      string
	Language   string
	NicheCount int

	MaxAttempts    int
	RetryBaseDelay time.Duration
	RequestTimeout time.Duration

	ReportDir      string
	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string

	LogFormat string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.StoreDriver = "sqlite"
	c.StoreDSN = "nichescope.db"
	c.KeyPrefix = "nichescope_"
	c.Model = "gemini-2.5-flash"
	c.Language = "Brazilian Portuguese"
	c.NicheCount = 10
	c.MaxAttempts = 3
	c.RetryBaseDelay = time.Second
	c.RequestTimeout = 2 * time.Minute
	c.ReportDir = "."
	c.S3Region = "us-east-1"
	c.LogFormat = "text"
}

// LoadConfig builds a Config from defaults, then the optional file at path
// (empty path skips it), then the environment. Later sources win.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseFile(cfg, path); err != nil {
		return nil, err
	}
	parseEnv(cfg, lookupEnv)
	return cfg, nil
}
