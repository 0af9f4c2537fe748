package transcription

import (
	"github.com/kbukum/micscribe/logger"
	"github.com/kbukum/micscribe/observability"
	"github.com/kbukum/micscribe/provider"
)

// Instrument wraps t with the provider logging, metrics and tracing
// middleware. metrics may be nil.
func Instrument(t Transcriber, log *logger.Logger, metrics *observability.Metrics, service string) Transcriber {
	chain := provider.Chain(
		provider.WithLogging[Request, *Response](log),
		provider.WithMetrics[Request, *Response](metrics),
		provider.WithTracing[Request, *Response](service),
	)
	return Endpoint(chain(requestResponse{t}))
}
