// Package tracing exports scenario spans through OpenTelemetry. A disabled
// configuration yields a no-op tracer, so callers never branch on it.
package tracing

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/mesh-intelligence/atlas/internal/log"
	"github.com/mesh-intelligence/atlas/pkg/types"
)

// ServiceName identifies atlas in exported spans.
const ServiceName = "atlas"

// Provider owns the tracer provider for one CLI invocation.
type Provider struct {
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer
}

// NewProvider builds a provider for cfg. Stdout spans go to w, or to
// os.Stdout when w is nil.
func NewProvider(cfg types.TracingConfig, w io.Writer) (*Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !cfg.Enabled() {
		return &Provider{tracer: noop.NewTracerProvider().Tracer(ServiceName)}, nil
	}

	var (
		exporter sdktrace.SpanExporter
		err      error
	)
	switch cfg.Exporter {
	case types.TraceExporterFile:
		exporter, err = NewFileExporter(cfg.FilePath)
	case types.TraceExporterStdout:
		if w == nil {
			w = os.Stdout
		}
		exporter, err = stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
	}
	if err != nil {
		return nil, fmt.Errorf("create %s exporter: %w", cfg.Exporter, err)
	}

	rate := cfg.SampleRate
	if rate == 0 {
		rate = 1
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", ServiceName))),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(rate))),
		sdktrace.WithBatcher(exporter),
	)
	otel.SetTracerProvider(tp)
	log.Info(log.CatTracing, "tracing enabled", "exporter", cfg.Exporter, "sample_rate", rate)

	return &Provider{provider: tp, tracer: tp.Tracer(ServiceName)}, nil
}

// Tracer returns the tracer; it is a no-op tracer when tracing is off.
func (p *Provider) Tracer() trace.Tracer {
	return p.tracer
}

// Enabled reports whether spans are exported.
func (p *Provider) Enabled() bool {
	return p.provider != nil
}

// Shutdown flushes pending spans.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.provider == nil {
		return nil
	}
	return p.provider.Shutdown(ctx)
}
