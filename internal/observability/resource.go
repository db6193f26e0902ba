package observability

import (
	"context"
	"os"

	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const defaultServiceName = "keypad-calculator"

// ServiceName is OTEL_SERVICE_NAME, or keypad-calculator when unset.
func ServiceName() string {
	if name := os.Getenv("OTEL_SERVICE_NAME"); name != "" {
		return name
	}
	return defaultServiceName
}

// newResource describes this process to every OTLP exporter. OTEL_RESOURCE_ATTRIBUTES
// are merged in.
func newResource(ctx context.Context) (*resource.Resource, error) {
	return resource.New(
		ctx,
		resource.WithFromEnv(),
		resource.WithAttributes(
			semconv.ServiceName(ServiceName()),
		),
	)
}
