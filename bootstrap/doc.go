// Package bootstrap runs a micscribe entrypoint through a uniform
// lifecycle: load and validate config, start hooks, run the service or a
// finite task, then shut down within a grace period.
package bootstrap
