// Package sinks contains the event sinks.
//
// A sink receives the events emitted by the collection engine. The
// [WriterSink] appends each event to a stream as a single line of
// JSON, the [HTTPSink] POSTs each event to a collector service, and
// the [LoggerSink] logs events, which is useful for dry runs.
//
// All the sinks in this package are safe for concurrent use by
// multiple collectors.
package sinks

import (
	"encoding/json"
	"io"
	"sync"

	"github.com/pageperf/pageperf/internal/model"
)

// WriterSink is a [model.EventSink] writing each event to an
// [io.Writer] as a serialized JSON document followed by a newline
// character. The zero value is invalid; use [NewWriterSink].
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterSink creates a new [*WriterSink] writing to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{
		mu: sync.Mutex{},
		w:  w,
	}
}

var _ model.EventSink = &WriterSink{}

// Submit implements model.EventSink.
func (s *WriterSink) Submit(ev *model.LogEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	data = append(data, byte('\n'))
	defer s.mu.Unlock()
	s.mu.Lock()
	_, err = s.w.Write(data)
	return err
}
