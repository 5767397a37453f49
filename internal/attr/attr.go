// Package attr provides slog attribute helpers shared across modules.
package attr

import (
	"context"
	"log/slog"
)

type contextKey string

const correlationIDKey contextKey = "correlation_id"

// String returns a string slog attribute.
func String(key, value string) slog.Attr {
	return slog.String(key, value)
}

// Int returns an int slog attribute.
func Int(key string, value int) slog.Attr {
	return slog.Int(key, value)
}

// Int64 returns an int64 slog attribute.
func Int64(key string, value int64) slog.Attr {
	return slog.Int64(key, value)
}

// Bool returns a bool slog attribute.
func Bool(key string, value bool) slog.Attr {
	return slog.Bool(key, value)
}

// Float64 returns a float64 slog attribute.
func Float64(key string, value float64) slog.Attr {
	return slog.Float64(key, value)
}

// Any returns a slog attribute for an arbitrary value.
func Any(key string, value any) slog.Attr {
	return slog.Any(key, value)
}

// Error returns a standardized error attribute. A nil error logs as "".
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}

// WithCorrelationID stores a correlation ID on the context for later extraction.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

// CorrelationIDFromContext returns the correlation ID stored on the context, if any.
func CorrelationIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(correlationIDKey).(string); ok {
		return id
	}
	return ""
}

// ExtractCorrelationID returns the context's correlation ID as a slog attribute.
func ExtractCorrelationID(ctx context.Context) slog.Attr {
	return slog.String("correlation_id", CorrelationIDFromContext(ctx))
}
