// Package otel installs the OTLP trace pipeline used by the dashboard server.
package otel

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Settings selects where spans go. They come from config.Config.
type Settings struct {
	ServiceName string
	// Endpoint is a full OTLP/HTTP URL; empty turns tracing off.
	Endpoint string
	Enabled  bool
}

func (s Settings) active() bool {
	return s.Enabled && s.Endpoint != ""
}

// Shutdown drains buffered spans and stops the exporter.
type Shutdown func(context.Context) error

const defaultCloseTimeout = 5 * time.Second

func noop(context.Context) error { return nil }

// Setup installs a batching OTLP/HTTP tracer provider as the global one.
// When tracing is off the global no-op tracer stays in place and the
// returned Shutdown does nothing.
func Setup(ctx context.Context, s Settings) (Shutdown, error) {
	if !s.active() {
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(s.Endpoint))
	if err != nil {
		return noop, fmt.Errorf("otlp exporter: %w", err)
	}
	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(s.ServiceName)))
	if err != nil {
		return noop, fmt.Errorf("trace resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	return tp.Shutdown, nil
}

// Close runs shutdown on its own context bounded by timeout. The caller's
// context is usually the one a signal just cancelled, and a cancelled
// context makes the provider return before exporting anything.
func Close(shutdown Shutdown, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = defaultCloseTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown tracing: %w", err)
	}
	return nil
}
