package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/micscribe/logger"
)

// Status values recorded on operation and transcription instruments.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	// Endpoint is the OTLP HTTP endpoint host:port.
	Endpoint string
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns defaults for local development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "dev",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter installs a global meter provider exporting over OTLP/HTTP.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))
	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the instruments recorded by the recorder, the transcription
// handler and the provider middleware. A nil *Metrics records nothing.
type Metrics struct {
	transcriptionTotal    metric.Int64Counter
	transcriptionDuration metric.Float64Histogram
	transcriptionActive   metric.Int64UpDownCounter
	audioBytes            metric.Int64Histogram
	permissionTotal       metric.Int64Counter
	operationTotal        metric.Int64Counter
	operationDuration     metric.Float64Histogram
	errorTotal            metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	var (
		m   Metrics
		err error
	)
	if m.transcriptionTotal, err = meter.Int64Counter("transcription.total",
		metric.WithDescription("Transcriptions by outcome code"),
	); err != nil {
		return nil, fmt.Errorf("creating transcription.total counter: %w", err)
	}
	if m.transcriptionDuration, err = meter.Float64Histogram("transcription.duration",
		metric.WithDescription("End-to-end transcription time"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("creating transcription.duration histogram: %w", err)
	}
	if m.transcriptionActive, err = meter.Int64UpDownCounter("transcription.active",
		metric.WithDescription("Transcriptions in flight"),
	); err != nil {
		return nil, fmt.Errorf("creating transcription.active counter: %w", err)
	}
	if m.audioBytes, err = meter.Int64Histogram("transcription.audio.size",
		metric.WithDescription("Size of submitted audio payloads"),
		metric.WithUnit("By"),
	); err != nil {
		return nil, fmt.Errorf("creating transcription.audio.size histogram: %w", err)
	}
	if m.permissionTotal, err = meter.Int64Counter("recorder.permission.total",
		metric.WithDescription("Microphone permission probes by result"),
	); err != nil {
		return nil, fmt.Errorf("creating recorder.permission.total counter: %w", err)
	}
	if m.operationTotal, err = meter.Int64Counter("operation.total",
		metric.WithDescription("Provider operations"),
	); err != nil {
		return nil, fmt.Errorf("creating operation.total counter: %w", err)
	}
	if m.operationDuration, err = meter.Float64Histogram("operation.duration",
		metric.WithDescription("Provider operation duration"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("creating operation.duration histogram: %w", err)
	}
	if m.errorTotal, err = meter.Int64Counter("error.total",
		metric.WithDescription("Errors by type and component"),
	); err != nil {
		return nil, fmt.Errorf("creating error.total counter: %w", err)
	}
	return &m, nil
}

// TranscriptionStarted increments the in-flight gauge.
func (m *Metrics) TranscriptionStarted(ctx context.Context) {
	if m == nil {
		return
	}
	m.transcriptionActive.Add(ctx, 1)
}

// TranscriptionFinished decrements the in-flight gauge and records the outcome.
// outcome is "ok" or an error code.
func (m *Metrics) TranscriptionFinished(ctx context.Context, outcome, mimeType string, audioBytes int64, duration time.Duration) {
	if m == nil {
		return
	}
	m.transcriptionActive.Add(ctx, -1)
	m.transcriptionTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
		attribute.String("mime_type", mimeType),
	))
	m.transcriptionDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
	if audioBytes > 0 {
		m.audioBytes.Record(ctx, audioBytes, metric.WithAttributes(attribute.String("mime_type", mimeType)))
	}
}

// RecordPermission records a microphone permission probe.
func (m *Metrics) RecordPermission(ctx context.Context, granted bool) {
	if m == nil {
		return
	}
	result := "denied"
	if granted {
		result = "granted"
	}
	m.permissionTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}

// RecordOperation records a provider operation.
func (m *Metrics) RecordOperation(ctx context.Context, provider, operation, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.operationTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("operation", operation),
		attribute.String("status", status),
	))
	m.operationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("operation", operation),
	))
}

// RecordError records an error by type and component.
func (m *Metrics) RecordError(ctx context.Context, errType, component string) {
	if m == nil {
		return
	}
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("type", errType),
		attribute.String("component", component),
	))
}
