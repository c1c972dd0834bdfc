package report

import (
	"context"

	"github.com/dmitrijs2005/nichescope/internal/config"
	"github.com/dmitrijs2005/nichescope/internal/filex"
)

// Sink stores a rendered document and reports where it went.
type Sink interface {
	Put(ctx context.Context, name string, data []byte) (location string, err error)
}

// FileSink writes documents into Dir.
type FileSink struct {
	Dir string
}

func (s FileSink) Put(_ context.Context, name string, data []byte) (string, error) {
	return filex.WriteFile(s.Dir, name, data)
}

// SinkFromConfig picks the S3 sink when a bucket is configured and the
// local directory otherwise.
func SinkFromConfig(cfg *config.Config) Sink {
	if cfg.S3Bucket != "" {
		return NewS3Sink(S3Options{
			Bucket:       cfg.S3Bucket,
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
			AccessKey:    cfg.S3AccessKey,
			SecretKey:    cfg.S3SecretKey,
		})
	}
	return FileSink{Dir: cfg.ReportDir}
}
