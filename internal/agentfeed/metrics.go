package agentfeed

//
// Metrics definitions
//

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// metricSessionsTotal counts the agent sessions opened so far.
	metricSessionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pageperfd_sessions_count",
		Help: "Total number of agent feed sessions opened",
	})

	// metricSessionsInflight gauges the currently connected sessions.
	metricSessionsInflight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pageperfd_sessions_inflight_gauge",
		Help: "The number of agent feed sessions currently connected",
	})

	// metricFramesCount counts the processed frames by key and outcome.
	metricFramesCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pageperfd_frames_count",
		Help: "Total number of processed agent frames",
	}, []string{"key", "outcome"})

	// metricEntriesCount counts the resource entries pushed by agents.
	metricEntriesCount = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pageperfd_entries_count",
		Help: "Total number of resource timing entries received",
	})
)
