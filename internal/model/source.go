package model

//
// Performance source and event sink
//

// PerformanceSource is the read-only view of a page's performance
// timeline that the collection engine observes. Implementations
// bridge a real browser feed (see the agentfeed package) or replay a
// captured one; the engine itself never mutates the source.
//
// The entry lists are snapshots: the source owns the underlying
// storage and callers must not modify the returned slices. The
// resource list grows monotonically for the lifetime of the page.
type PerformanceSource interface {
	// SupportsResourceObserver returns whether the host can push
	// notifications of newly finished resource loads. When this is
	// false the engine performs no collection at all.
	SupportsResourceObserver() bool

	// LocationURL returns the page's current location URL.
	LocationURL() string

	// NavigationEntries returns the navigation-timing records for
	// the page. After the load signal there is exactly one.
	NavigationEntries() []*NavigationTiming

	// PaintEntries returns the paint-timing records for the page,
	// which may be empty.
	PaintEntries() []*PaintTiming

	// ResourceEntries returns all resource-timing records known to
	// the host so far, oldest first.
	ResourceEntries() []*ResourceTiming

	// OnLoad registers a callback invoked exactly once when the page
	// is fully loaded. A callback registered after the load signal
	// already fired is invoked immediately.
	OnLoad(callback func())

	// OnUnload registers a callback invoked when the page is about
	// to unload and returns a function that cancels the
	// registration. Cancelling twice is allowed.
	OnUnload(callback func()) (cancel func())

	// ObserveResources registers a callback invoked with each group
	// of newly finished resource loads and returns a function that
	// disconnects the observation. Disconnecting twice is allowed.
	// The registration fails when the host has no push facility, in
	// which case the returned cancel is nil and ok is false.
	ObserveResources(callback func(entries []*ResourceTiming)) (cancel func(), ok bool)
}

// EventSink receives the log events produced by the collection
// engine. Delivery is synchronous and best effort: the engine logs a
// failed submission and moves on, it never retries.
type EventSink interface {
	// Submit delivers a single event to the sink.
	Submit(ev *LogEvent) error
}
