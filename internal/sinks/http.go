package sinks

//
// HTTP sink POSTing events to a collector
//

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/pageperf/pageperf/internal/model"
	"github.com/pageperf/pageperf/internal/version"
)

// ErrHTTPRequestFailed indicates the collector did not accept an event.
var ErrHTTPRequestFailed = errors.New("sinks: http request failed")

// DefaultHTTPTimeout bounds each submission to the collector.
const DefaultHTTPTimeout = 10 * time.Second

// HTTPSink is a [model.EventSink] delivering each event to a collector
// service with a POST request. There are no retries: a failed delivery
// is the caller's to log and forget. The zero value of this struct is
// invalid; please, init the MANDATORY fields.
type HTTPSink struct {
	// Client is the MANDATORY HTTP client to use.
	Client model.HTTPClient

	// Timeout OPTIONALLY bounds each submission. Zero or negative
	// means [DefaultHTTPTimeout].
	Timeout time.Duration

	// URL is the MANDATORY URL of the collector.
	URL string

	// UserAgent OPTIONALLY overrides the User-Agent header.
	UserAgent string
}

var _ model.EventSink = &HTTPSink{}

func (s *HTTPSink) timeout() time.Duration {
	if s.Timeout > 0 {
		return s.Timeout
	}
	return DefaultHTTPTimeout
}

func (s *HTTPSink) userAgent() string {
	if s.UserAgent != "" {
		return s.UserAgent
	}
	return "pageperf/" + version.Version
}

// Submit implements model.EventSink.
func (s *HTTPSink) Submit(ev *model.LogEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, "POST", s.URL, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", s.userAgent())
	resp, err := s.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return fmt.Errorf("%w: %d", ErrHTTPRequestFailed, resp.StatusCode)
	}
	return nil
}
