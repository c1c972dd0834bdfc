// Package logging defines the structured-logging interface used across
// NicheScope, with log/slog and zap backed implementations.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key-value pairs, e.g.:
//
//	log.Info(ctx, "analysis finished", "topic", topic, "niches", n)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key-value pairs.
	With(args ...any) Logger
}

// Supported output formats for New.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatZap  = "zap"
)

// New builds a Logger for the given format. Text and JSON write through slog
// to w with credential-like attributes masked; zap uses its production
// encoder and writes to stderr.
func New(format string, w io.Writer) (Logger, error) {
	switch format {
	case "", FormatText:
		return NewSlogLogger(slog.New(newSlogHandler(false, w))), nil
	case FormatJSON:
		return NewSlogLogger(slog.New(newSlogHandler(true, w))), nil
	case FormatZap:
		return NewProductionZapLogger()
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

// NewNop returns a Logger that discards everything.
func NewNop() Logger {
	return NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}
