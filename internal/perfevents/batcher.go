package perfevents

//
// Resource fact batching
//

import "github.com/pageperf/pageperf/internal/model"

// resourceBatcher accumulates normalized resource facts in a pending
// queue and moves them, batch by batch, into the cumulative ledger.
// The batcher performs no locking: the owning [*Collector] serializes
// access with its own mutex.
type resourceBatcher struct {
	// maxQueueEvents is the queue size at which ingest flushes.
	maxQueueEvents int

	// queue contains the facts pending the next flush.
	queue []*model.ResourceFact

	// ledger contains every fact ever flushed, oldest first. It
	// never shrinks and is never de-duplicated.
	ledger []*model.ResourceFact
}

// ingest appends facts to the pending queue and then flushes it:
// unconditionally when forced, otherwise only when the single
// post-append size check finds the queue at or above the threshold.
// The returned batch is nil when no flush occurred or the queue was
// empty, and the caller emits non-nil batches downstream.
func (b *resourceBatcher) ingest(facts []*model.ResourceFact, forced bool) model.ResourceBatch {
	b.queue = append(b.queue, facts...)
	if forced || len(b.queue) >= b.maxQueueEvents {
		return b.take()
	}
	return nil
}

// take atomically moves the whole pending queue into the ledger and
// returns it as a batch. An empty queue yields a nil batch, so an
// empty flush is suppressed without emitting anything. No fact is
// ever part of two batches: the queue restarts empty after each take.
func (b *resourceBatcher) take() model.ResourceBatch {
	if len(b.queue) <= 0 {
		return nil
	}
	batch := model.ResourceBatch(b.queue)
	b.ledger = append(b.ledger, b.queue...)
	b.queue = nil
	return batch
}
