// Package observability carries build identity through a context so every log
// line from one build can be correlated.
package observability

import (
	"context"
	"log/slog"
)

// LogContext holds the values attached to log lines.
type LogContext struct {
	BuildID string
	Stage   string
	Source  string
}

type logContextKeyType string

const logContextKey logContextKeyType = "log-context"

// WithBuildID adds a build ID to the context.
func WithBuildID(ctx context.Context, buildID string) context.Context {
	lc := extractLogContext(ctx)
	lc.BuildID = buildID
	return context.WithValue(ctx, logContextKey, lc)
}

// WithStage adds a stage name to the context.
func WithStage(ctx context.Context, stage string) context.Context {
	lc := extractLogContext(ctx)
	lc.Stage = stage
	return context.WithValue(ctx, logContextKey, lc)
}

// WithSource records the source directory being documented.
func WithSource(ctx context.Context, dir string) context.Context {
	lc := extractLogContext(ctx)
	lc.Source = dir
	return context.WithValue(ctx, logContextKey, lc)
}

// GetContext returns the log context stored in ctx.
func GetContext(ctx context.Context) LogContext {
	return extractLogContext(ctx)
}

func extractLogContext(ctx context.Context) LogContext {
	if lc, ok := ctx.Value(logContextKey).(LogContext); ok {
		return lc
	}
	return LogContext{}
}

func logAttrs(ctx context.Context, extra []slog.Attr) []slog.Attr {
	lc := extractLogContext(ctx)
	attrs := make([]slog.Attr, 0, 3+len(extra))
	if lc.BuildID != "" {
		attrs = append(attrs, slog.String("build.id", lc.BuildID))
	}
	if lc.Stage != "" {
		attrs = append(attrs, slog.String("stage", lc.Stage))
	}
	if lc.Source != "" {
		attrs = append(attrs, slog.String("source", lc.Source))
	}
	return append(attrs, extra...)
}

// InfoContext logs at info level with the context's values.
func InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	slog.LogAttrs(ctx, slog.LevelInfo, msg, logAttrs(ctx, attrs)...)
}

// WarnContext logs at warn level with the context's values.
func WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	slog.LogAttrs(ctx, slog.LevelWarn, msg, logAttrs(ctx, attrs)...)
}

// ErrorContext logs at error level with the context's values.
func ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	slog.LogAttrs(ctx, slog.LevelError, msg, logAttrs(ctx, attrs)...)
}

// DebugContext logs at debug level with the context's values.
func DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	slog.LogAttrs(ctx, slog.LevelDebug, msg, logAttrs(ctx, attrs)...)
}
