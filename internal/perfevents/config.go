package perfevents

//
// Collector configuration
//

import (
	"time"

	"github.com/pageperf/pageperf/internal/model"
)

// DefaultSlowResourceThreshold is the default duration in milliseconds
// above which a resource load is flagged as slow.
const DefaultSlowResourceThreshold = 1000

// DefaultMaxQueueEvents is the default number of queued resource facts
// at which the pending queue is flushed as one batch.
const DefaultMaxQueueEvents = 20

// DefaultSubscriptionTTL is the default lifetime of the live
// subscription bridging the host's push notifications.
const DefaultSubscriptionTTL = 300 * time.Second

// DefaultSamplingRate is the default probability with which a page
// view is collected.
const DefaultSamplingRate = 1.0

// Config contains the configuration for a [*Collector].
type Config struct {
	// Source is the MANDATORY performance timeline to observe.
	Source model.PerformanceSource

	// Sink is the MANDATORY receiver of emitted events.
	Sink model.EventSink

	// Logger is the OPTIONAL logger (default: model.DiscardLogger).
	Logger model.Logger

	// SlowResourceThreshold is the OPTIONAL duration in milliseconds
	// above which a resource load is flagged as slow. Zero or
	// negative means [DefaultSlowResourceThreshold].
	SlowResourceThreshold int64

	// MaxQueueEvents is the OPTIONAL size of the pending queue at
	// which we flush. Zero or negative means [DefaultMaxQueueEvents].
	MaxQueueEvents int

	// SubscriptionTTL is the OPTIONAL lifetime of the live
	// subscription. Zero or negative means [DefaultSubscriptionTTL].
	SubscriptionTTL time.Duration

	// SamplingRate is the OPTIONAL probability in (0, 1] with which
	// this page view is collected. The draw happens exactly once, in
	// [*Collector.Start]. Values outside (0, 1] mean
	// [DefaultSamplingRate], i.e., collect every page view.
	SamplingRate float64

	// SessionID is the OPTIONAL identifier of the page session,
	// attached to every emitted event as a "session=<ID>" tag.
	SessionID string

	// Tags OPTIONALLY contains extra tags for emitted events.
	Tags []string
}

func (c *Config) slowResourceThreshold() int64 {
	if c.SlowResourceThreshold > 0 {
		return c.SlowResourceThreshold
	}
	return DefaultSlowResourceThreshold
}

func (c *Config) maxQueueEvents() int {
	if c.MaxQueueEvents > 0 {
		return c.MaxQueueEvents
	}
	return DefaultMaxQueueEvents
}

func (c *Config) subscriptionTTL() time.Duration {
	if c.SubscriptionTTL > 0 {
		return c.SubscriptionTTL
	}
	return DefaultSubscriptionTTL
}

func (c *Config) samplingRate() float64 {
	if c.SamplingRate > 0 && c.SamplingRate <= 1 {
		return c.SamplingRate
	}
	return DefaultSamplingRate
}
