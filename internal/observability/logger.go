package observability

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var Logger = zap.NewNop()

func InitLogger() error {
	var err error

	Logger, err = zap.NewProduction()
	if err != nil {
		return err
	}

	return nil
}

// InitFileLogger sends production JSON logs to path instead of stderr, for
// processes that own the terminal. An empty path keeps the no-op logger.
func InitFileLogger(path string) error {
	if path == "" {
		Logger = zap.NewNop()
		return nil
	}

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}

	logger, err := cfg.Build()
	if err != nil {
		return err
	}
	Logger = logger
	return nil
}

func SyncLogger() {
	_ = Logger.Sync()
}

// LoggerWithTrace returns a child logger enriched with trace_id and span_id
// fields from the active OTel span in ctx.
//
// ctx itself is attached as zap.Any("context", ctx): the otelzap bridge uses
// any context-valued field as the context for Emit, so exported OTLP log
// records carry the native TraceID/SpanID. The string fields keep stdout JSON
// greppable.
func LoggerWithTrace(ctx context.Context) *zap.Logger {
	span := trace.SpanContextFromContext(ctx)

	if !span.IsValid() {
		return Logger
	}

	return Logger.With(
		zap.Any("context", ctx),
		zap.String("trace_id", span.TraceID().String()),
		zap.String("span_id", span.SpanID().String()),
	)
}
