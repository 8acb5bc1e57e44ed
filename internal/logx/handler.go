// Package logx contains logging extensions.
package logx

import (
	"fmt"
	"io"
	"time"

	"github.com/apex/log"
)

// Handler implements [log.Handler] by writing lines prefixed with the
// elapsed time since the handler was created.
//
// The zero value of this struct is invalid. Construct using the
// [NewHandlerWithDefaultSettings] factory.
type Handler struct {
	// Now OPTIONALLY returns the current time. We use [time.Now]
	// when this field is nil.
	Now func() time.Time

	// StartTime is the MANDATORY reference time for computing
	// the elapsed time.
	StartTime time.Time

	// Writer is the MANDATORY writer where we write log lines.
	Writer io.Writer
}

// NewHandlerWithDefaultSettings creates a [*Handler] writing to w with
// the start time set to the current time.
func NewHandlerWithDefaultSettings(w io.Writer) *Handler {
	return &Handler{
		Now:       time.Now,
		StartTime: time.Now(),
		Writer:    w,
	}
}

var _ log.Handler = &Handler{}

// HandleLog implements log.Handler.
func (h *Handler) HandleLog(e *log.Entry) (err error) {
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	elapsed := now().Sub(h.StartTime)
	s := fmt.Sprintf("[%14.6f] <%s> %s", elapsed.Seconds(), e.Level, e.Message)
	if len(e.Fields) > 0 {
		s += fmt.Sprintf(": %+v", e.Fields)
	}
	s += "\n"
	_, err = h.Writer.Write([]byte(s))
	return
}
