package calculator

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Metric instruments, initialized once via InitMetrics().
var (
	keysCounter       metric.Int64Counter
	evaluationCounter metric.Int64Counter
	errorCounter      metric.Int64Counter
	dispatchHistogram metric.Float64Histogram
	sessionsGauge     metric.Int64UpDownCounter
)

// InitMetrics registers custom OTel metric instruments for the calculator domain.
// Call this once at startup (after observability.InitMetrics).
func InitMetrics() error {
	meter := otel.Meter("calculator")

	var err error

	keysCounter, err = meter.Int64Counter("calculator.keys.total",
		metric.WithDescription("Total number of keypad presses dispatched"),
		metric.WithUnit("{key}"),
	)
	if err != nil {
		return fmt.Errorf("creating keys counter: %w", err)
	}

	evaluationCounter, err = meter.Int64Counter("calculator.evaluations.total",
		metric.WithDescription("Total number of evaluations requested"),
		metric.WithUnit("{evaluation}"),
	)
	if err != nil {
		return fmt.Errorf("creating evaluation counter: %w", err)
	}

	errorCounter, err = meter.Int64Counter("calculator.errors.total",
		metric.WithDescription("Total number of calculator errors"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	dispatchHistogram, err = meter.Float64Histogram("calculator.dispatch.duration",
		metric.WithDescription("Duration of key dispatches in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.5, 1, 5, 10),
	)
	if err != nil {
		return fmt.Errorf("creating dispatch histogram: %w", err)
	}

	sessionsGauge, err = meter.Int64UpDownCounter("calculator.sessions.active",
		metric.WithDescription("Number of live calculator sessions"),
		metric.WithUnit("{session}"),
	)
	if err != nil {
		return fmt.Errorf("creating sessions gauge: %w", err)
	}

	return nil
}
