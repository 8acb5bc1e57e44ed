package agentfeed

//
// Feed counters for the status endpoint
//

import "sync/atomic"

// Stats counts what the feed handler has seen since process start.
// All the fields are atomics, so Stats is usable concurrently.
type Stats struct {
	// EntriesReceived counts the resource entries pushed by agents.
	EntriesReceived atomic.Int64

	// ProtocolErrors counts the malformed or out-of-order frames.
	ProtocolErrors atomic.Int64

	// SessionsActive gauges the currently connected sessions.
	SessionsActive atomic.Int64

	// SessionsStarted counts the sessions opened so far.
	SessionsStarted atomic.Int64
}

// StatsSnapshot is the serializable view of [Stats].
type StatsSnapshot struct {
	EntriesReceived int64 `json:"entriesReceived"`
	ProtocolErrors  int64 `json:"protocolErrors"`
	SessionsActive  int64 `json:"sessionsActive"`
	SessionsStarted int64 `json:"sessionsStarted"`
}

// Snapshot returns a consistent-enough copy of the counters for
// rendering the status endpoint.
func (s *Stats) Snapshot() *StatsSnapshot {
	return &StatsSnapshot{
		EntriesReceived: s.EntriesReceived.Load(),
		ProtocolErrors:  s.ProtocolErrors.Load(),
		SessionsActive:  s.SessionsActive.Load(),
		SessionsStarted: s.SessionsStarted.Load(),
	}
}
