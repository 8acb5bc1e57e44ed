package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/pageperf/pageperf/internal/agentfeed"
	"github.com/pageperf/pageperf/internal/runtimex"
	"github.com/pageperf/pageperf/internal/version"
)

// statusDocument is the JSON document returned by the status endpoint.
type statusDocument struct {
	// Sessions summarizes the agent feed sessions.
	Sessions *agentfeed.StatsSnapshot `json:"sessions"`

	// UptimeSeconds is the number of seconds since the daemon started.
	UptimeSeconds float64 `json:"uptimeSeconds"`

	// Version is the daemon version.
	Version string `json:"version"`
}

// statusHandler serves the daemon status document.
type statusHandler struct {
	// startTime is the time when the daemon started.
	startTime time.Time

	// stats contains the feed handler's counters.
	stats *agentfeed.Stats
}

// newStatusHandler creates a statusHandler using the given stats.
func newStatusHandler(stats *agentfeed.Stats) *statusHandler {
	return &statusHandler{
		startTime: time.Now(),
		stats:     stats,
	}
}

// ServeHTTP implements http.Handler.
func (h *statusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	doc := &statusDocument{
		Sessions:      h.stats.Snapshot(),
		UptimeSeconds: time.Since(h.startTime).Seconds(),
		Version:       version.Version,
	}
	data, err := json.Marshal(doc)
	runtimex.PanicOnError(err, "json.Marshal failed")
	w.Header().Add("Content-Type", "application/json")
	w.Write(data)
}
