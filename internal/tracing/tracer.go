// Package tracing wires OpenTelemetry for retrolex. Scanning work (session
// range requests, state replays, whole-document highlighting) is recorded as
// spans when tracing is enabled; otherwise every tracer is a no-op.
package tracing

import (
	"cmp"
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/retrolex/internal/log"
)

const (
	ExporterNone   = "none"
	ExporterFile   = "file"
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"

	DefaultServiceName  = "retrolex"
	DefaultOTLPEndpoint = "localhost:4317"
)

// Config configures the tracing subsystem.
type Config struct {
	Enabled bool `yaml:"enabled"`

	// Exporter is one of "none", "file", "stdout", "otlp".
	Exporter string `yaml:"exporter"`

	// FilePath is the JSONL output for the file exporter.
	FilePath string `yaml:"file_path"`

	OTLPEndpoint string `yaml:"otlp_endpoint"`

	// SampleRate is the fraction of root spans kept, 0.0 to 1.0.
	SampleRate float64 `yaml:"sample_rate"`

	ServiceName string `yaml:"service_name"`
}

// DefaultConfig returns tracing disabled, with the file exporter ready to use
// once enabled.
func DefaultConfig() Config {
	return Config{
		Enabled:      false,
		Exporter:     ExporterFile,
		OTLPEndpoint: DefaultOTLPEndpoint,
		SampleRate:   1.0,
		ServiceName:  DefaultServiceName,
	}
}

// Provider owns the tracer provider for the lifetime of a command.
type Provider struct {
	sdk    *sdktrace.TracerProvider
	tracer trace.Tracer
}

type exporterFactory func(Config) (sdktrace.SpanExporter, error)

// exporters maps Config.Exporter to a constructor. A nil exporter means spans
// are sampled and given valid contexts but not shipped anywhere.
var exporters = map[string]exporterFactory{
	"":           func(Config) (sdktrace.SpanExporter, error) { return nil, nil },
	ExporterNone: func(Config) (sdktrace.SpanExporter, error) { return nil, nil },
	ExporterFile: func(cfg Config) (sdktrace.SpanExporter, error) {
		if cfg.FilePath == "" {
			return nil, errors.New("file_path required for file exporter")
		}
		return NewFileExporter(cfg.FilePath)
	},
	ExporterStdout: func(Config) (sdktrace.SpanExporter, error) {
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	},
	ExporterOTLP: func(cfg Config) (sdktrace.SpanExporter, error) {
		endpoint := cmp.Or(cfg.OTLPEndpoint, DefaultOTLPEndpoint)
		return otlptracegrpc.New(context.Background(),
			otlptracegrpc.WithEndpoint(endpoint),
			otlptracegrpc.WithInsecure(),
		)
	},
}

// NewProvider builds the provider described by cfg and installs it as the
// global otel provider. A disabled config yields a no-op provider.
func NewProvider(cfg Config) (*Provider, error) {
	if !cfg.Enabled {
		return &Provider{tracer: noop.NewTracerProvider().Tracer("noop")}, nil
	}

	factory, ok := exporters[cfg.Exporter]
	if !ok {
		return nil, fmt.Errorf("unsupported exporter type: %s", cfg.Exporter)
	}
	exporter, err := factory(cfg)
	if err != nil {
		return nil, fmt.Errorf("create %s exporter: %w", cmp.Or(cfg.Exporter, ExporterNone), err)
	}

	name := cmp.Or(cfg.ServiceName, DefaultServiceName)
	rate := cfg.SampleRate
	if rate <= 0 || rate > 1 {
		rate = 1.0
	}

	opts := []sdktrace.TracerProviderOption{
		// Schemaless so it never conflicts with resource.Default's schema URL.
		sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", name))),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(rate))),
	}
	if exporter != nil {
		opts = append(opts, sdktrace.WithBatcher(exporter))
	}
	sdk := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(sdk)

	log.Info(log.CatTrace, "Tracing enabled", "exporter", cfg.Exporter, "sample_rate", rate)
	return &Provider{sdk: sdk, tracer: sdk.Tracer(name)}, nil
}

// Tracer returns the provider's tracer; never nil.
func (p *Provider) Tracer() trace.Tracer {
	return p.tracer
}

// Enabled reports whether spans are recorded.
func (p *Provider) Enabled() bool {
	return p.sdk != nil
}

// Shutdown flushes pending spans.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.sdk == nil {
		return nil
	}
	return p.sdk.Shutdown(ctx)
}

// Tracer returns the named tracer from the global provider. Packages call
// this lazily so a provider installed after init still takes effect.
func Tracer(name string) trace.Tracer {
	return otel.Tracer(name)
}
