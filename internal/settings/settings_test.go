package settings

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/pageperf/pageperf/internal/kvstore"
	"github.com/pageperf/pageperf/internal/perfevents"
)

func TestLoad(t *testing.T) {
	t.Run("when the store has no config", func(t *testing.T) {
		store := &kvstore.Memory{}
		root, err := Load(store)
		if !errors.Is(err, kvstore.ErrNoSuchKey) {
			t.Fatal("not the error we expected", err)
		}
		if root != nil {
			t.Fatal("expected nil root here")
		}
	})

	t.Run("with the default document", func(t *testing.T) {
		store := &kvstore.Memory{}
		if err := WriteDefault(store); err != nil {
			t.Fatal(err)
		}
		root, err := Load(store)
		if err != nil {
			t.Fatal(err)
		}
		expect := &Root{
			CollectorURL:            "",
			MaxQueueEvents:          20,
			SamplingRate:            1.0,
			SinkFile:                "",
			SlowResourceThresholdMs: 1000,
			SubscriptionTTLSeconds:  300,
			Tags:                    []string{},
			Version:                 1,
		}
		if diff := cmp.Diff(expect, root); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("with a document containing comments", func(t *testing.T) {
		store := &kvstore.Memory{}
		document := []byte(`{
			// measure one page view out of four
			"samplingRate": 0.25,
			"tags": ["env=qa"],
			"version": 1,
		}`)
		if err := store.Set(ConfigKey, document); err != nil {
			t.Fatal(err)
		}
		root, err := Load(store)
		if err != nil {
			t.Fatal(err)
		}
		if root.SamplingRate != 0.25 {
			t.Fatal("unexpected sampling rate", root.SamplingRate)
		}
		if diff := cmp.Diff([]string{"env=qa"}, root.Tags); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("with the wrong version", func(t *testing.T) {
		store := &kvstore.Memory{}
		if err := store.Set(ConfigKey, []byte(`{"version": 0}`)); err != nil {
			t.Fatal(err)
		}
		root, err := Load(store)
		if !errors.Is(err, ErrWrongConfigVersion) {
			t.Fatal("not the error we expected", err)
		}
		if root != nil {
			t.Fatal("expected nil root here")
		}
	})

	t.Run("with an unparseable document", func(t *testing.T) {
		store := &kvstore.Memory{}
		if err := store.Set(ConfigKey, []byte(`{`)); err != nil {
			t.Fatal(err)
		}
		root, err := Load(store)
		if err == nil {
			t.Fatal("expected an error here")
		}
		if root != nil {
			t.Fatal("expected nil root here")
		}
	})
}

func TestEngineConfig(t *testing.T) {
	root := &Root{
		MaxQueueEvents:          11,
		SamplingRate:            0.25,
		SlowResourceThresholdMs: 1500,
		SubscriptionTTLSeconds:  60,
		Tags:                    []string{"env=qa"},
	}
	got := root.EngineConfig()
	expect := &perfevents.Config{
		MaxQueueEvents:        11,
		SamplingRate:          0.25,
		SlowResourceThreshold: 1500,
		SubscriptionTTL:       60 * time.Second,
		Tags:                  []string{"env=qa"},
	}
	if diff := cmp.Diff(expect, got); diff != "" {
		t.Fatal(diff)
	}
}

func TestConsent(t *testing.T) {
	store := &kvstore.Memory{}
	if HasConsent(store) {
		t.Fatal("expected no consent in an empty store")
	}
	if err := RecordConsent(store); err != nil {
		t.Fatal(err)
	}
	if !HasConsent(store) {
		t.Fatal("expected consent to be recorded")
	}
}
