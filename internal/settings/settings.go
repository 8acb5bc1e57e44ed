// Package settings contains the probe configuration document.
//
// The configuration is a JSON document that MAY contain comments and
// trailing commas (see the [github.com/pageperf/pageperf/internal/hujsonx]
// package). We store it inside the probe's key-value store so the
// daemon and the command line interface read consistent content.
package settings

import (
	"errors"
	"fmt"
	"time"

	"github.com/pageperf/pageperf/internal/hujsonx"
	"github.com/pageperf/pageperf/internal/model"
	"github.com/pageperf/pageperf/internal/perfevents"
)

// ConfigKey is the key-value store key holding the configuration.
const ConfigKey = "config.conf"

// ConfigVersion is the configuration document version we expect.
const ConfigVersion = 1

// ErrWrongConfigVersion means the configuration document has the wrong
// version number.
var ErrWrongConfigVersion = errors.New("settings: wrong config version")

// Root is the root of the configuration document.
type Root struct {
	// CollectorURL is the collector to POST events to. An empty
	// string disables the HTTP sink.
	CollectorURL string `json:"collectorURL"`

	// MaxQueueEvents is the pending-queue size at which the engine
	// flushes resource facts. Zero or negative means the engine
	// default.
	MaxQueueEvents int `json:"maxQueueEvents"`

	// SamplingRate is the probability in (0, 1] with which a page
	// view is collected. Values outside (0, 1] mean the engine
	// default, i.e., collect every page view.
	SamplingRate float64 `json:"samplingRate"`

	// SinkFile is the path of the file where we append events, one
	// JSON document per line. An empty string disables the file sink.
	SinkFile string `json:"sinkFile"`

	// SlowResourceThresholdMs is the duration in milliseconds above
	// which a resource load is flagged as slow. Zero or negative
	// means the engine default.
	SlowResourceThresholdMs int64 `json:"slowResourceThresholdMs"`

	// SubscriptionTTLSeconds bounds how long we keep collecting
	// resources after the page has loaded. Zero or negative means
	// the engine default.
	SubscriptionTTLSeconds int `json:"subscriptionTTLSeconds"`

	// Tags contains extra annotations applied to each emitted event.
	Tags []string `json:"tags"`

	// Version is the document version and MUST equal [ConfigVersion].
	Version int `json:"version"`
}

// Load reads the configuration from the given key-value store. The
// typical error case is [kvstore.ErrNoSuchKey] when the probe has not
// been onboarded yet.
func Load(kvStore model.KeyValueStore) (*Root, error) {
	data, err := kvStore.Get(ConfigKey)
	if err != nil {
		return nil, err
	}

	var root Root
	if err := hujsonx.Unmarshal(data, &root); err != nil {
		return nil, err
	}

	if root.Version != ConfigVersion {
		err := fmt.Errorf(
			"%s: %w: expected=%d got=%d",
			ConfigKey,
			ErrWrongConfigVersion,
			ConfigVersion,
			root.Version,
		)
		return nil, err
	}

	return &root, nil
}

// WriteDefault writes the commented default configuration document
// into the given key-value store, overwriting any previous document.
func WriteDefault(kvStore model.KeyValueStore) error {
	return kvStore.Set(ConfigKey, []byte(defaultDocument))
}

// EngineConfig maps the document onto an engine configuration. The
// caller still needs to fill the Source, Sink, Logger, and SessionID
// fields before constructing a collector.
func (r *Root) EngineConfig() *perfevents.Config {
	return &perfevents.Config{
		MaxQueueEvents:        r.MaxQueueEvents,
		SamplingRate:          r.SamplingRate,
		SlowResourceThreshold: r.SlowResourceThresholdMs,
		SubscriptionTTL:       time.Duration(r.SubscriptionTTLSeconds) * time.Second,
		Tags:                  append([]string{}, r.Tags...),
	}
}

// defaultDocument is the configuration document written by
// [WriteDefault]. Comments are allowed because parsing goes through
// human-readable JSON.
var defaultDocument = fmt.Sprintf(`{
	// collectorURL is the collector to POST events to. Leave this
	// empty to disable the HTTP sink.
	"collectorURL": "",

	// samplingRate selects the fraction of page views to measure.
	"samplingRate": 1.0,

	// slowResourceThresholdMs flags resources slower than this.
	"slowResourceThresholdMs": %d,

	// maxQueueEvents is the pending-queue flush threshold.
	"maxQueueEvents": %d,

	// subscriptionTTLSeconds bounds live collection after page load.
	"subscriptionTTLSeconds": %d,

	// tags annotate every emitted event.
	"tags": [],

	// sinkFile appends events to this file when not empty.
	"sinkFile": "",

	// version is the document version. Do not change it.
	"version": %d,
}
`,
	perfevents.DefaultSlowResourceThreshold,
	perfevents.DefaultMaxQueueEvents,
	int(perfevents.DefaultSubscriptionTTL/time.Second),
	ConfigVersion,
)
