package model

import (
	"encoding/json"
	"errors"

	"github.com/pageperf/pageperf/internal/optional"
)

//
// Log events
//

// Log event types.
const (
	// LogEventTypePageLoad identifies an event whose body is the
	// singleton page-load timing record.
	LogEventTypePageLoad = "pageLoadTiming"

	// LogEventTypeResourcesList identifies an event whose body is a
	// batch of resource facts.
	LogEventTypeResourcesList = "resourcesListTiming"
)

// ResourceFact is the normalized record of one finished sub-resource
// load that was not served from cache. Every duration field is an
// integer number of milliseconds, truncated toward zero and never
// negative.
type ResourceFact struct {
	// Type is the initiator category of the resource.
	Type string `json:"type"`

	// URL is the resource URL.
	URL string `json:"url"`

	// Time is the total load duration.
	Time int64 `json:"time"`

	// DNS is the domain-lookup span.
	DNS int64 `json:"dns"`

	// Stalled is the time between the load start and the request
	// start, clamped to zero when negative.
	Stalled int64 `json:"stalled"`

	// TTFB is the time between the request start and the response
	// start.
	TTFB int64 `json:"ttfb"`

	// Download is the time spent receiving the response body.
	Download int64 `json:"download"`

	// Slow indicates whether Time exceeds the slow-resource threshold.
	Slow bool `json:"slow"`
}

// PageLoadTiming is the singleton page-load record of a page view,
// created exactly once on the load signal and immutable thereafter.
// Every duration field is an integer number of milliseconds,
// truncated toward zero.
type PageLoadTiming struct {
	// URL is the page URL.
	URL string `json:"url"`

	// TTFB is the time between the request start and the response
	// start for the main document.
	TTFB int64 `json:"ttfb"`

	// LoadSpeed is the document download speed in kB/ms. It is empty
	// when the transfer size is unknown and serializes to null.
	LoadSpeed optional.Value[int64] `json:"loadSpeed"`

	// Load is when the document finished downloading.
	Load int64 `json:"load"`

	// DomContent is when the DOMContentLoaded handler completed.
	DomContent int64 `json:"domContent"`

	// Render is when the first contentful paint occurred, or zero
	// when the host reported no such milestone.
	Render int64 `json:"render"`

	// Interactive is when the document became fully interactive.
	Interactive int64 `json:"interactive"`
}

// ResourceBatch is an ordered batch of resource facts emitted as the
// body of a single log event. Insertion order is preserved.
type ResourceBatch []*ResourceFact

// EventBody is the payload of a [LogEvent]. The interface is sealed:
// the only implementations are [*PageLoadTiming] and [ResourceBatch],
// and the payload kind determines the event type on the wire.
type EventBody interface {
	logEventType() string
}

func (*PageLoadTiming) logEventType() string {
	return LogEventTypePageLoad
}

func (ResourceBatch) logEventType() string {
	return LogEventTypeResourcesList
}

// LogEvent is a discrete event handed over to the event sink.
type LogEvent struct {
	// Title is the human readable event title.
	Title string

	// Tags contains event labels (e.g., the session ID).
	Tags []string

	// Body is the event payload. It must not be nil.
	Body EventBody
}

// Type returns the event type implied by the event body.
func (ev *LogEvent) Type() string {
	return ev.Body.logEventType()
}

// ErrNoEventBody indicates a log event has a nil body.
var ErrNoEventBody = errors.New("model: log event has no body")

// logEventWire is the wire representation of a [LogEvent].
type logEventWire struct {
	Type  string    `json:"type"`
	Title string    `json:"title"`
	Tags  []string  `json:"tags"`
	Body  EventBody `json:"body"`
}

var _ json.Marshaler = &LogEvent{}

// MarshalJSON implements json.Marshaler. The serialization is the
// {type, title, tags, body} envelope the sink expects, where the tags
// are never null.
func (ev *LogEvent) MarshalJSON() ([]byte, error) {
	if ev.Body == nil {
		return nil, ErrNoEventBody
	}
	tags := ev.Tags
	if tags == nil {
		tags = []string{}
	}
	return json.Marshal(logEventWire{
		Type:  ev.Type(),
		Title: ev.Title,
		Tags:  tags,
		Body:  ev.Body,
	})
}
