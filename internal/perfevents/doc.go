// Package perfevents implements the resource-timing batching and dedup
// engine. The fundamental data type is the [*Collector], which observes a
// single page view through a [model.PerformanceSource] and emits discrete
// [model.LogEvent] values to a [model.EventSink].
//
// A [*Collector] stays fully inert unless the host supports push-based
// resource observation and the page view wins the sampling draw; both
// gates are evaluated by [*Collector.Start]. Once armed, the collector
// waits for the page-load signal and then, strictly in order: extracts
// the singleton page-load record, classifies and flushes the resources
// known at load time as one forced batch, and starts the live
// subscription feeding subsequently finished resources into the batcher.
//
// The batcher accumulates normalized resource facts in a pending queue
// and flushes the whole queue as one event when, after an append, the
// queue reaches [DefaultMaxQueueEvents] entries (or the configured
// threshold). Flushed facts move into a cumulative append-only ledger,
// which the unload recovery path compares against the host's own
// monotonically growing entry list to capture, as one final forced
// batch, whatever the push channel missed.
//
// The live subscription bounds its own lifetime: after the configured
// TTL it disconnects from the push source and removes its unload
// registration, releasing all held resources for page sessions that
// never navigate away.
//
// Classification, normalization and the load-speed computation are pure
// functions exposed at package level ([IsResourceCached], [LoadSpeed])
// so callers can use them independently of a [*Collector].
package perfevents
