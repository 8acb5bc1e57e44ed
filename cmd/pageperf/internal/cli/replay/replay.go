// Package replay implements the replay command, which pushes a
// captured agent feed file through the collection engine again.
package replay

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/apex/log"
	"github.com/pageperf/pageperf/cmd/pageperf/internal/cli/onboard"
	"github.com/pageperf/pageperf/cmd/pageperf/internal/cli/root"
	"github.com/pageperf/pageperf/cmd/pageperf/internal/replayer"
	"github.com/pageperf/pageperf/internal/agentfeed"
	"github.com/pageperf/pageperf/internal/kvstore"
	"github.com/pageperf/pageperf/internal/logx"
	"github.com/pageperf/pageperf/internal/model"
	"github.com/pageperf/pageperf/internal/perfevents"
	"github.com/pageperf/pageperf/internal/settings"
	"github.com/pageperf/pageperf/internal/sinks"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
)

func init() {
	cmd := root.Command("replay", "Replay a captured agent feed file")

	feedFile := cmd.Arg("file", "Captured agent feed file to replay").Required().String()
	collectorURL := cmd.Flag("collector", "Submit replayed events to this collector URL").String()
	outputFile := cmd.Flag("output", "Write replayed events to this file instead of stdout").Short('o').String()
	samplingRate := cmd.Flag("sampling", "Override the sampling rate in (0, 1]").Float64()

	cmd.Action(func(_ *kingpin.ParseContext) error {
		store, err := root.Init()
		if err != nil {
			return err
		}
		if err := onboard.MaybeOnboarding(store); err != nil {
			return err
		}

		doc, err := settings.Load(store)
		if err != nil {
			if !errors.Is(err, kvstore.ErrNoSuchKey) {
				return errors.Wrap(err, "loading the config document")
			}
			doc = &settings.Root{Version: settings.ConfigVersion}
		}
		if *samplingRate > 0 {
			doc.SamplingRate = *samplingRate
		}

		sink, cleanup, err := newSink(*collectorURL, *outputFile)
		if err != nil {
			return err
		}
		defer cleanup()

		filep, err := os.Open(*feedFile)
		if err != nil {
			return errors.Wrap(err, "opening the feed file")
		}
		defer filep.Close()
		frames, err := replayer.ReadFrames(filep)
		if err != nil {
			return err
		}

		logger := &logx.ScrubberLogger{Logger: log.Log}
		bar := newProgressBar(int64(len(frames)))
		repl := &replayer.Replayer{
			Logger: logger,
			NewConfig: func(sessionID string) *perfevents.Config {
				config := doc.EngineConfig()
				config.Logger = logger
				config.SessionID = sessionID
				config.Sink = sink
				return config
			},
			OnFrame: func(frame *agentfeed.Frame) {
				bar.Add(1)
			},
		}
		stats := repl.Replay(frames)

		log.WithFields(log.Fields{
			"type":     "table",
			"sessions": fmt.Sprintf("%d", stats.Sessions),
			"frames":   fmt.Sprintf("%d", stats.Frames),
			"entries":  fmt.Sprintf("%d", stats.Entries),
			"errors":   fmt.Sprintf("%d", stats.Errors),
		}).Info("replay done")
		return nil
	})
}

// newSink creates the replay event sink. The returned cleanup func
// must be called once the replay is done.
func newSink(collectorURL, outputFile string) (model.EventSink, func(), error) {
	if collectorURL != "" {
		sink := &sinks.HTTPSink{
			Client: http.DefaultClient,
			URL:    collectorURL,
		}
		return sink, func() {}, nil
	}
	if outputFile != "" {
		filep, err := os.OpenFile(outputFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if err != nil {
			return nil, nil, errors.Wrap(err, "opening the output file")
		}
		return sinks.NewWriterSink(filep), func() { filep.Close() }, nil
	}
	return sinks.NewWriterSink(os.Stdout), func() {}, nil
}

// newProgressBar creates the progress bar tracking replayed frames.
// The bar writes to stderr so it never mixes with events emitted to
// stdout.
func newProgressBar(total int64) *progressbar.ProgressBar {
	return progressbar.NewOptions64(
		total,
		progressbar.OptionShowDescriptionAtLineEnd(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
		progressbar.OptionSetWriter(os.Stderr),
	)
}
