// Package telemetry implements the telemetry.otlp module. It installs a
// global OpenTelemetry tracer provider exporting spans over OTLP/HTTP.
// When no endpoint is configured the module is a no-op and spans stay
// unrecorded.
package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/axtarget/axtarchat/internal/core"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"gopkg.in/yaml.v3"
)

func init() {
	core.RegisterModule(&Module{})
}

// Compile-time interface guards.
var (
	_ core.Module       = (*Module)(nil)
	_ core.Configurable = (*Module)(nil)
	_ core.Provisioner  = (*Module)(nil)
	_ core.Validator    = (*Module)(nil)
	_ core.Starter      = (*Module)(nil)
	_ core.Stopper      = (*Module)(nil)
)

// Config holds the configuration for the telemetry.otlp module.
type Config struct {
	// Endpoint is the OTLP/HTTP collector host:port. Empty disables export.
	Endpoint string `yaml:"endpoint"`

	// Insecure uses plain HTTP instead of TLS.
	Insecure bool `yaml:"insecure"`

	// SampleRatio is the head sampling ratio in [0, 1]. Defaults to 1.
	SampleRatio *float64 `yaml:"sample_ratio"`

	// ServiceName overrides the resource service.name attribute.
	ServiceName string `yaml:"service_name"`
}

func (c *Config) defaults() {
	if c.ServiceName == "" {
		c.ServiceName = "axtarchat"
	}
}

func (c *Config) sampleRatio() float64 {
	if c.SampleRatio == nil {
		return 1
	}
	return *c.SampleRatio
}

// Module owns the tracer provider lifecycle.
type Module struct {
	config   Config
	logger   *slog.Logger
	provider *sdktrace.TracerProvider
}

// ModuleInfo implements core.Module.
func (m *Module) ModuleInfo() core.ModuleInfo {
	return core.ModuleInfo{
		ID:  "telemetry.otlp",
		New: func() core.Module { return &Module{} },
	}
}

// Configure implements core.Configurable.
func (m *Module) Configure(node *yaml.Node) error {
	if err := node.Decode(&m.config); err != nil {
		return fmt.Errorf("telemetry: decode config: %w", err)
	}
	m.config.defaults()
	return nil
}

// Provision implements core.Provisioner.
func (m *Module) Provision(ctx *core.AppContext) error {
	m.config.defaults()
	m.logger = ctx.Logger
	return nil
}

// Validate implements core.Validator.
func (m *Module) Validate() error {
	ratio := m.config.sampleRatio()
	if ratio < 0 || ratio > 1 {
		return fmt.Errorf("telemetry: sample_ratio must be in [0, 1], got %g", ratio)
	}
	return nil
}

// Start implements core.Starter. It builds the exporter and installs the
// global tracer provider.
func (m *Module) Start() error {
	if m.config.Endpoint == "" {
		m.logger.Info("telemetry disabled, no endpoint configured")
		return nil
	}

	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpoint(m.config.Endpoint),
	}
	if m.config.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return fmt.Errorf("telemetry: create exporter: %w", err)
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(m.config.ServiceName),
		attribute.String("service.namespace", "axtarchat"),
	)

	m.provider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(m.config.sampleRatio()))),
	)
	otel.SetTracerProvider(m.provider)

	m.logger.Info("telemetry started",
		"endpoint", m.config.Endpoint,
		"sample_ratio", m.config.sampleRatio(),
	)
	return nil
}

// Stop implements core.Stopper. Flushes pending spans.
func (m *Module) Stop(ctx context.Context) error {
	if m.provider == nil {
		return nil
	}
	if err := m.provider.Shutdown(ctx); err != nil {
		return fmt.Errorf("telemetry: shutdown: %w", err)
	}
	return nil
}
