package logx

import (
	"fmt"
	"regexp"

	"github.com/pageperf/pageperf/internal/model"
)

// urlUserinfoPattern matches credentials embedded into URLs.
var urlUserinfoPattern = regexp.MustCompile(`://[^/@\s]+@`)

// Scrub returns a copy of the given message where credentials embedded
// into URLs have been replaced by `[scrubbed]`.
func Scrub(message string) string {
	return urlUserinfoPattern.ReplaceAllString(message, "://[scrubbed]@")
}

// ScrubberLogger is a [model.Logger] with scrubbing. All messages are
// scrubbed with [Scrub] before being emitted. The zero value of this
// struct is invalid; please, init the MANDATORY fields.
type ScrubberLogger struct {
	// Logger is the MANDATORY underlying logger to use.
	Logger model.Logger
}

var _ model.Logger = &ScrubberLogger{}

// Debug scrubs and emits a debug message.
func (sl *ScrubberLogger) Debug(message string) {
	sl.Logger.Debug(Scrub(message))
}

// Debugf scrubs, formats, and emits a debug message.
func (sl *ScrubberLogger) Debugf(format string, v ...interface{}) {
	sl.Debug(fmt.Sprintf(format, v...))
}

// Info scrubs and emits an informational message.
func (sl *ScrubberLogger) Info(message string) {
	sl.Logger.Info(Scrub(message))
}

// Infof scrubs, formats, and emits an informational message.
func (sl *ScrubberLogger) Infof(format string, v ...interface{}) {
	sl.Info(fmt.Sprintf(format, v...))
}

// Warn scrubs and emits a warning message.
func (sl *ScrubberLogger) Warn(message string) {
	sl.Logger.Warn(Scrub(message))
}

// Warnf scrubs, formats, and emits a warning message.
func (sl *ScrubberLogger) Warnf(format string, v ...interface{}) {
	sl.Warn(fmt.Sprintf(format, v...))
}
