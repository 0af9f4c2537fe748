// Package observability wires OpenTelemetry tracing and metrics.
//
// Exporters are only started when telemetry is enabled; otherwise the global
// no-op providers stay in place and spans and instruments cost nothing.
//
//	shutdown, err := observability.Setup(ctx, cfg.Telemetry, "micscribe", version.Version, cfg.Environment)
//	defer shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("micscribe"))
//	ctx, span := observability.StartSpan(ctx, observability.SpanTranscribe)
//	defer span.End()
package observability
