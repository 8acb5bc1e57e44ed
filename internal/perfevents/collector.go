package perfevents

//
// Collector orchestration
//

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/pageperf/pageperf/internal/model"
	"github.com/pageperf/pageperf/internal/optional"
)

// Event titles.
const (
	// pageLoadEventTitle titles the page-load timing event.
	pageLoadEventTitle = "page load timing"

	// resourcesEventTitle titles resource batch events.
	resourcesEventTitle = "resources list timing"
)

// ErrNoPerformanceSource indicates the config contains a nil Source.
var ErrNoPerformanceSource = errors.New("perfevents: config Source is nil")

// ErrNoEventSink indicates the config contains a nil Sink.
var ErrNoEventSink = errors.New("perfevents: config Sink is nil")

// Collector coordinates the collection of page-performance telemetry
// for a single page view. The zero value of this struct is invalid;
// construct with [NewCollector] and arm with [*Collector.Start].
//
// A single mutex serializes all mutation of the pending queue, the
// cumulative ledger and the page-load record. The collector never
// invokes the sink or the source while holding the mutex.
type Collector struct {
	// afterFuncFn is OPTIONAL and overrides calls to time.AfterFunc
	// to produce deterministic timers when testing.
	afterFuncFn func(d time.Duration, fn func()) *time.Timer

	// batcher holds the pending queue and the cumulative ledger.
	// Accessing it requires holding mu.
	batcher resourceBatcher

	// config is the collector configuration. Read-only.
	config *Config

	// logger is the logger to use. Never nil.
	logger model.Logger

	// mu serializes access to batcher, pageTiming, started and sub.
	mu sync.Mutex

	// pageTiming is the singleton page-load record. It is nil until
	// the load signal has been processed and immutable thereafter.
	pageTiming *model.PageLoadTiming

	// randFn is OPTIONAL and overrides the random source used by the
	// sampling draw to make tests deterministic.
	randFn func() float64

	// sink receives the emitted events. Never nil.
	sink model.EventSink

	// source is the page's performance timeline. Never nil.
	source model.PerformanceSource

	// started records that Start already ran.
	started bool

	// sub is the live subscription, nil until started and nil
	// forever when the gates kept the collector inert.
	sub *liveSubscription
}

// NewCollector creates a new [*Collector] with the given config. The
// config must contain a Source and a Sink; every other field is
// optional and falls back to the documented default.
func NewCollector(config *Config) (*Collector, error) {
	if config.Source == nil {
		return nil, ErrNoPerformanceSource
	}
	if config.Sink == nil {
		return nil, ErrNoEventSink
	}
	c := &Collector{
		afterFuncFn: nil, // use time.AfterFunc
		batcher: resourceBatcher{
			maxQueueEvents: config.maxQueueEvents(),
			queue:          nil,
			ledger:         nil,
		},
		config:     config,
		logger:     model.ValidLoggerOrDefault(config.Logger),
		mu:         sync.Mutex{},
		pageTiming: nil,
		randFn:     nil, // use math/rand
		sink:       config.Sink,
		source:     config.Source,
		started:    false,
		sub:        nil,
	}
	return c, nil
}

// Start arms collection for this page view. Both gates live here:
// when the host has no resource observer the collector performs no
// collection at all and registers nothing, and likewise when the page
// view loses the sampling draw. The draw happens exactly once. Start
// is idempotent and only the first call arms.
func (c *Collector) Start() {
	c.mu.Lock()
	alreadyStarted := c.started
	c.started = true
	c.mu.Unlock()
	if alreadyStarted {
		return
	}
	if !c.source.SupportsResourceObserver() {
		c.logger.Debug("perfevents: host has no resource observer: staying inert")
		return
	}
	if !c.samplingDraw() {
		c.logger.Debug("perfevents: page view lost the sampling draw: staying inert")
		return
	}
	c.source.OnLoad(c.onPageLoad)
}

// samplingDraw draws whether this page view is collected.
func (c *Collector) samplingDraw() bool {
	return c.randFloat64() < c.config.samplingRate()
}

// randFloat64 calls either randFn or math/rand.Float64.
func (c *Collector) randFloat64() float64 {
	if c.randFn != nil {
		return c.randFn()
	}
	return rand.Float64()
}

// afterFunc calls either afterFuncFn or time.AfterFunc.
func (c *Collector) afterFunc(d time.Duration, fn func()) *time.Timer {
	if c.afterFuncFn != nil {
		return c.afterFuncFn(d, fn)
	}
	return time.AfterFunc(d, fn)
}

// onPageLoad runs once on the host's load signal and performs,
// strictly in order: page-timing extraction, the initial forced
// snapshot of the resources known so far, and the start of the live
// subscription.
func (c *Collector) onPageLoad() {
	c.extractAndEmitPageTiming()
	c.ingest(c.source.ResourceEntries(), true)
	sub := c.startLiveSubscription()
	c.mu.Lock()
	c.sub = sub
	c.mu.Unlock()
}

// extractAndEmitPageTiming derives the singleton page-load record.
// The record is always stored for later reading through
// [*Collector.PageTiming]; the corresponding event is only emitted
// when the measured load time is positive.
func (c *Collector) extractAndEmitPageTiming() {
	navs := c.source.NavigationEntries()
	if len(navs) < 1 {
		c.logger.Warn("perfevents: no navigation entry: skipping page timing")
		return
	}
	timing := extractPageTiming(navs[0], c.source.PaintEntries(), c.source.LocationURL())
	c.mu.Lock()
	c.pageTiming = timing
	c.mu.Unlock()
	if timing.Load <= 0 {
		c.logger.Debug("perfevents: nonpositive page load time: suppressing event")
		return
	}
	c.submit(&model.LogEvent{
		Title: pageLoadEventTitle,
		Tags:  c.eventTags(),
		Body:  timing,
	})
}

// startLiveSubscription registers the observer and unload callbacks
// and arms the duration timer last, so that every release path is in
// place before the timer can possibly fire.
func (c *Collector) startLiveSubscription() *liveSubscription {
	sub := &liveSubscription{}
	if cancel, good := c.source.ObserveResources(c.onLiveResources); good {
		sub.cancelObserver = cancel
	} else {
		c.logger.Warn("perfevents: resource observer registration failed")
	}
	sub.cancelUnload = c.source.OnUnload(func() {
		c.recoverAndStop(sub)
	})
	sub.arm(c.afterFunc, c.config.subscriptionTTL())
	return sub
}

// onLiveResources receives newly finished resource loads pushed by
// the host while the live subscription is connected.
func (c *Collector) onLiveResources(entries []*model.ResourceTiming) {
	c.ingest(entries, false)
}

// recoverAndStop performs the last-chance diff capture and then stops
// the live subscription. This is the unload path; after the duration
// timer already stopped the subscription, the unload registration is
// gone and no recovery runs.
func (c *Collector) recoverAndStop(sub *liveSubscription) {
	c.recoverMissedEntries()
	sub.stop()
}

// recoverMissedEntries compares the host's total entry count with the
// ledger and feeds the unaccounted tail through the same classify and
// flush path as the push channel, forced.
func (c *Collector) recoverMissedEntries() {
	entries := c.source.ResourceEntries()
	c.mu.Lock()
	accounted := len(c.batcher.ledger)
	c.mu.Unlock()
	c.ingest(diffResourceEntries(entries, accounted), true)
}

// ingest classifies raw entries and hands the resulting facts to the
// batcher, emitting the flushed batch, if any, outside the lock.
func (c *Collector) ingest(entries []*model.ResourceTiming, forced bool) {
	facts := classifyResources(entries, c.config.slowResourceThreshold())
	c.mu.Lock()
	batch := c.batcher.ingest(facts, forced)
	c.mu.Unlock()
	if len(batch) <= 0 {
		return
	}
	c.submit(&model.LogEvent{
		Title: resourcesEventTitle,
		Tags:  c.eventTags(),
		Body:  batch,
	})
}

// submit hands an event to the sink. A failed submission is logged
// and never retried: this is a best-effort telemetry side channel.
func (c *Collector) submit(ev *model.LogEvent) {
	if err := c.sink.Submit(ev); err != nil {
		c.logger.Warnf("perfevents: cannot submit event: %s", err.Error())
	}
}

// eventTags returns the tags attached to every emitted event.
func (c *Collector) eventTags() []string {
	tags := append([]string{}, c.config.Tags...)
	if c.config.SessionID != "" {
		tags = append(tags, "session="+c.config.SessionID)
	}
	return tags
}

// PageTiming returns the singleton page-load record, which is empty
// until the load signal has been processed.
func (c *Collector) PageTiming() optional.Value[*model.PageLoadTiming] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return optional.Some(c.pageTiming)
}

// ResourceLedger returns a copy of the cumulative list of resource
// facts emitted so far, oldest first. The ledger grows monotonically
// and is never de-duplicated.
func (c *Collector) ResourceLedger() []*model.ResourceFact {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*model.ResourceFact{}, c.batcher.ledger...)
}
