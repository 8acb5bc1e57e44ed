package sinks

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/pageperf/pageperf/internal/model"
)

func newBatchEvent(urls ...string) *model.LogEvent {
	var batch model.ResourceBatch
	for _, URL := range urls {
		batch = append(batch, &model.ResourceFact{
			Type: "script",
			URL:  URL,
			Time: 120,
		})
	}
	return &model.LogEvent{
		Title: "resources list timing",
		Tags:  []string{"session=abc"},
		Body:  batch,
	}
}

func TestWriterSink(t *testing.T) {
	t.Run("writes one line per event", func(t *testing.T) {
		var sb strings.Builder
		sink := NewWriterSink(&sb)
		if err := sink.Submit(newBatchEvent("https://x/a.js")); err != nil {
			t.Fatal(err)
		}
		if err := sink.Submit(newBatchEvent("https://x/b.js")); err != nil {
			t.Fatal(err)
		}
		lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
		if len(lines) != 2 {
			t.Fatal("unexpected number of lines", len(lines))
		}
		for _, line := range lines {
			var envelope map[string]interface{}
			if err := json.Unmarshal([]byte(line), &envelope); err != nil {
				t.Fatal(err)
			}
			if envelope["type"] != "resourcesListTiming" {
				t.Fatal("unexpected event type", envelope["type"])
			}
		}
	})

	t.Run("propagates marshalling errors", func(t *testing.T) {
		var sb strings.Builder
		sink := NewWriterSink(&sb)
		err := sink.Submit(&model.LogEvent{Title: "antani"})
		if !errors.Is(err, model.ErrNoEventBody) {
			t.Fatal("not the error we expected", err)
		}
		if sb.Len() != 0 {
			t.Fatal("expected no output")
		}
	})

	t.Run("propagates write errors", func(t *testing.T) {
		expected := errors.New("mocked error")
		sink := NewWriterSink(&failingWriter{err: expected})
		err := sink.Submit(newBatchEvent("https://x/a.js"))
		if !errors.Is(err, expected) {
			t.Fatal("not the error we expected", err)
		}
	})
}

type failingWriter struct {
	err error
}

func (fw *failingWriter) Write(data []byte) (int, error) {
	return 0, fw.err
}
