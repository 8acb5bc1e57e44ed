package mocks

import "github.com/pageperf/pageperf/internal/model"

// EventSink allows mocking model.EventSink.
type EventSink struct {
	MockSubmit func(ev *model.LogEvent) error
}

var _ model.EventSink = &EventSink{}

// Submit calls MockSubmit.
func (s *EventSink) Submit(ev *model.LogEvent) error {
	return s.MockSubmit(ev)
}
