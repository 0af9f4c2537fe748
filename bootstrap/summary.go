package bootstrap

import (
	"time"

	"github.com/kbukum/micscribe/logger"
)

// SummaryEntry is one line of the startup summary.
type SummaryEntry struct {
	Kind   string // "backend", "engine", "route", "telemetry"
	Name   string
	Detail string
}

// Summary collects what an entrypoint wired and logs it once started.
type Summary struct {
	serviceName     string
	version         string
	startupDuration time.Duration
	entries         []SummaryEntry
}

// NewSummary creates an empty summary.
func NewSummary(serviceName, version string) *Summary {
	return &Summary{serviceName: serviceName, version: version}
}

// Add records an entry.
func (s *Summary) Add(kind, name, detail string) {
	s.entries = append(s.entries, SummaryEntry{Kind: kind, Name: name, Detail: detail})
}

// Entries returns the recorded entries in order.
func (s *Summary) Entries() []SummaryEntry {
	return append([]SummaryEntry(nil), s.entries...)
}

// SetStartupDuration records how long startup took.
func (s *Summary) SetStartupDuration(d time.Duration) {
	s.startupDuration = d
}

// Display logs the summary.
func (s *Summary) Display(log *logger.Logger) {
	log.Info("Startup complete", map[string]interface{}{
		"service":     s.serviceName,
		"version":     s.version,
		"duration_ms": s.startupDuration.Milliseconds(),
		"entries":     len(s.entries),
	})
	for _, e := range s.entries {
		log.Info(e.Kind, map[string]interface{}{
			"name":   e.Name,
			"detail": e.Detail,
		})
	}
}
