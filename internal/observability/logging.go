package observability

import (
	"context"

	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// InitLogging exports every Logger entry over OTLP as well. Call it after
// InitLogger; the returned func flushes pending records.
func InitLogging(ctx context.Context) (func(context.Context) error, error) {

	exporter, err := otlploghttp.New(ctx)
	if err != nil {
		return nil, err
	}

	res, err := newResource(ctx)
	if err != nil {
		return nil, err
	}

	provider := sdklog.NewLoggerProvider(
		sdklog.WithResource(res),
		sdklog.WithProcessor(
			sdklog.NewBatchProcessor(exporter),
		),
	)

	Logger = teeOTel(Logger, provider)

	return provider.Shutdown, nil
}

// teeOTel keeps base writing where it did and adds a core emitting to provider.
func teeOTel(base *zap.Logger, provider *sdklog.LoggerProvider) *zap.Logger {
	otelCore := otelzap.NewCore(ServiceName(), otelzap.WithLoggerProvider(provider))
	return zap.New(zapcore.NewTee(base.Core(), otelCore))
}
