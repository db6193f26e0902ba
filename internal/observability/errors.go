package observability

import (
	"context"
	"encoding/json"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// RecordError centralises error handling for HTTP handlers: it counts the
// failure, logs it with trace context and writes {"error": msg} with status.
// The request id travels in the X-Request-ID header only.
//
// Client errors (4xx) are logged at warn level and leave the span status
// unset; server errors mark the span failed and log at error level.
func RecordError(ctx context.Context, span trace.Span, logger *zap.Logger, counter metric.Int64Counter, opName, msg string, err error, status int, w http.ResponseWriter) {
	span.RecordError(err)

	counter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", opName),
		attribute.Int("status", status),
	))

	fields := []zap.Field{
		zap.String("operation", opName),
		zap.Int("status", status),
		zap.Error(err),
		zap.String("request_id", RequestIDFromContext(ctx)),
	}
	if status >= http.StatusInternalServerError {
		span.SetStatus(codes.Error, msg)
		logger.Error(msg, fields...)
	} else {
		logger.Warn(msg, fields...)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error": msg,
	})
}
