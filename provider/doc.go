// Package provider is a small generic framework for swappable backends.
//
// A Provider has a name and an availability check. RequestResponse[I, O]
// adds a single Execute call. Providers are created by name from a Registry
// of factories and chosen at runtime by a Manager through a Selector.
//
// Middleware wraps a RequestResponse with cross-cutting behavior:
//
//	wrapped := provider.Chain(
//	    provider.WithLogging[In, Out](log),
//	    provider.WithMetrics[In, Out](metrics),
//	    provider.WithTracing[In, Out]("micscribe"),
//	)(backend)
//
// Adapt bridges a backend with its own wire types to a domain interface.
package provider
