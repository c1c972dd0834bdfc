package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

var (
	_ Logger = (*SlogLogger)(nil)
	_ Logger = (*ZapLogger)(nil)
)

// redacted lists attribute keys whose values never reach the output.
var redacted = map[string]struct{}{
	"api_key":    {},
	"apikey":     {},
	"credential": {},
	"password":   {},
}

const redactedValue = "[REDACTED]"

// SlogLogger sends records to a slog.Logger through its *Context methods.
type SlogLogger struct {
	l *slog.Logger
}

func NewSlogLogger(l *slog.Logger) *SlogLogger {
	return &SlogLogger{l: l}
}

// newSlogHandler returns a text or JSON handler writing to w that masks
// the values of redacted keys, including inside groups.
func newSlogHandler(json bool, w io.Writer) slog.Handler {
	opts := &slog.HandlerOptions{
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if _, ok := redacted[strings.ToLower(a.Key)]; ok {
				return slog.String(a.Key, redactedValue)
			}
			return a
		},
	}
	if json {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

func (s *SlogLogger) Debug(ctx context.Context, msg string, args ...any) {
	s.l.DebugContext(ctx, msg, args...)
}

func (s *SlogLogger) Info(ctx context.Context, msg string, args ...any) {
	s.l.InfoContext(ctx, msg, args...)
}

func (s *SlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	s.l.WarnContext(ctx, msg, args...)
}

func (s *SlogLogger) Error(ctx context.Context, msg string, args ...any) {
	s.l.ErrorContext(ctx, msg, args...)
}

func (s *SlogLogger) With(args ...any) Logger {
	return &SlogLogger{l: s.l.With(args...)}
}
