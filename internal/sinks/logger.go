package sinks

//
// Logger sink for dry runs
//

import (
	"encoding/json"

	"github.com/pageperf/pageperf/internal/model"
)

// LoggerSink is a [model.EventSink] logging each event at debug level
// instead of delivering it anywhere. The zero value of this struct is
// invalid; please, init the MANDATORY fields.
type LoggerSink struct {
	// Logger is the MANDATORY logger to use.
	Logger model.Logger
}

var _ model.EventSink = &LoggerSink{}

// Submit implements model.EventSink.
func (s *LoggerSink) Submit(ev *model.LogEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	s.Logger.Debugf("sinks: event: %s", string(data))
	return nil
}
