package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/nichescope/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is a DTO used only for decoding config files. Pointer fields
// distinguish "absent" from zero so a partial file only overrides what it
// names.
type FileConfig struct {
	StoreDriver *string `json:"store_driver" yaml:"store_driver"`
	StoreDSN    *string `json:"store_dsn" yaml:"store_dsn"`
	KeyPrefix   *string `json:"key_prefix" yaml:"key_prefix"`

	APIKey     *string `json:"api_key" yaml:"api_key"`
	Model      *string `json:"model" yaml:"model"`
	Language   *string `json:"language" yaml:"language"`
	NicheCount *int    `json:"niche_count" yaml:"niche_count"`

	MaxAttempts    *int            `json:"max_attempts" yaml:"max_attempts"`
	RetryBaseDelay *timex.Duration `json:"retry_base_delay" yaml:"retry_base_delay"`
	RequestTimeout *timex.Duration `json:"request_timeout" yaml:"request_timeout"`

	ReportDir      *string `json:"report_dir" yaml:"report_dir"`
	S3Bucket       *string `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region       *string `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint *string `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
	S3AccessKey    *string `json:"s3_access_key" yaml:"s3_access_key"`
	S3SecretKey    *string `json:"s3_secret_key" yaml:"s3_secret_key"`

	LogFormat *string `json:"log_format" yaml:"log_format"`
}

// parseFile overlays cfg with the values found in the file at path.
func parseFile(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc *FileConfig) apply(cfg *Config) {
	setString(&cfg.StoreDriver, fc.StoreDriver)
	setString(&cfg.StoreDSN, fc.StoreDSN)
	setString(&cfg.KeyPrefix, fc.KeyPrefix)
	setString(&cfg.APIKey, fc.APIKey)
	setString(&cfg.Model, fc.Model)
	setString(&cfg.Language, fc.Language)
	setString(&cfg.ReportDir, fc.ReportDir)
	setString(&cfg.S3Bucket, fc.S3Bucket)
	setString(&cfg.S3Region, fc.S3Region)
	setString(&cfg.S3BaseEndpoint, fc.S3BaseEndpoint)
	setString(&cfg.S3AccessKey, fc.S3AccessKey)
	setString(&cfg.S3SecretKey, fc.S3SecretKey)
	setString(&cfg.LogFormat, fc.LogFormat)

	if fc.NicheCount != nil {
		cfg.NicheCount = *fc.NicheCount
	}
	if fc.MaxAttempts != nil {
		cfg.MaxAttempts = *fc.MaxAttempts
	}
	if fc.RetryBaseDelay != nil {
		cfg.RetryBaseDelay = fc.RetryBaseDelay.Duration
	}
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
