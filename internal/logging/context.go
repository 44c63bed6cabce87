package logging

import (
	"context"
)

type contextKey string

const (
	loggerKey   contextKey = "logger"
	seriesIDKey contextKey = "series_id"
	runIDKey    contextKey = "run_id"
)

// WithLogger adds a logger to the context
func WithLogger(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the logger from context, falls back to global
func FromContext(ctx context.Context) *Logger {
	if logger, ok := ctx.Value(loggerKey).(*Logger); ok {
		return logger
	}
	return global
}

// WithSeriesID adds the identifier of the series being forecast to the context
func WithSeriesID(ctx context.Context, seriesID string) context.Context {
	return context.WithValue(ctx, seriesIDKey, seriesID)
}

// WithRunID adds a caller-supplied run identifier to the context
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// extractContextFields extracts logging fields from context
func extractContextFields(ctx context.Context) []interface{} {
	var fields []interface{}

	if seriesID, ok := ctx.Value(seriesIDKey).(string); ok && seriesID != "" {
		k, v := String("series_id", seriesID)
		fields = append(fields, k, v)
	}

	if runID, ok := ctx.Value(runIDKey).(string); ok && runID != "" {
		k, v := String("run_id", runID)
		fields = append(fields, k, v)
	}

	return fields
}

// DebugCtx logs a debug message with context
func DebugCtx(ctx context.Context, msg string, fields ...interface{}) {
	FromContext(ctx).WithContext(ctx).Debug(msg, fields...)
}

// InfoCtx logs an info message with context
func InfoCtx(ctx context.Context, msg string, fields ...interface{}) {
	FromContext(ctx).WithContext(ctx).Info(msg, fields...)
}

// WarnCtx logs a warning message with context
func WarnCtx(ctx context.Context, msg string, fields ...interface{}) {
	FromContext(ctx).WithContext(ctx).Warn(msg, fields...)
}

// ErrorCtx logs an error message with context
func ErrorCtx(ctx context.Context, msg string, fields ...interface{}) {
	FromContext(ctx).WithContext(ctx).Error(msg, fields...)
}
