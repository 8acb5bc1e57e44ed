// Package replayer replays captured agent feed files through the
// collection engine.
//
// A captured feed file contains one JSON frame per line, in the order
// the agent emitted them. Unlike the live feed, where each WebSocket
// connection carries exactly one session, a file may contain several
// sessions back to back: every session.hello starts the next one.
package replayer

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"

	"github.com/google/uuid"
	"github.com/pageperf/pageperf/internal/agentfeed"
	"github.com/pageperf/pageperf/internal/model"
	"github.com/pageperf/pageperf/internal/perfevents"
	"github.com/pkg/errors"
)

// maxFrameSize is the maximum length of a serialized frame line.
const maxFrameSize = 1 << 20

// ReadFrames parses a captured feed file, one JSON frame per line.
// Blank lines are skipped.
func ReadFrames(r io.Reader) ([]*agentfeed.Frame, error) {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, maxFrameSize)
	scanner.Buffer(buf, maxFrameSize)
	var frames []*agentfeed.Frame
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) <= 0 {
			continue
		}
		frame := &agentfeed.Frame{}
		if err := json.Unmarshal(line, frame); err != nil {
			return nil, errors.Wrap(err, "parsing feed frame")
		}
		frames = append(frames, frame)
	}
	return frames, scanner.Err()
}

// Replayer replays parsed frames through the collection engine.
type Replayer struct {
	// Logger is the MANDATORY logger.
	Logger model.Logger

	// NewConfig is the MANDATORY factory returning the engine
	// configuration for a replayed session. The replayer overrides
	// the returned config's Source with the replayed session.
	NewConfig func(sessionID string) *perfevents.Config

	// NewSessionID is the OPTIONAL session ID factory.
	NewSessionID func() string

	// OnFrame is the OPTIONAL hook invoked after each frame.
	OnFrame func(frame *agentfeed.Frame)
}

// Stats summarizes a replay run.
type Stats struct {
	// Entries is the number of resource entries replayed.
	Entries int64

	// Errors is the number of frames we could not apply.
	Errors int64

	// Frames is the number of frames applied.
	Frames int64

	// Sessions is the number of sessions replayed.
	Sessions int64
}

// Replay applies all the frames in order and returns the run summary.
// Reaching the end of the frames unloads the last session, mirroring
// the live feed treating a closed socket as the page going away.
func (r *Replayer) Replay(frames []*agentfeed.Frame) *Stats {
	stats := &Stats{}
	var sess *agentfeed.PageSession
	for _, frame := range frames {
		var err error
		sess, err = r.applyFrame(sess, frame, stats)
		if err != nil {
			r.Logger.Warnf("replayer: %s", err.Error())
			stats.Errors++
		} else {
			stats.Frames++
		}
		if r.OnFrame != nil {
			r.OnFrame(frame)
		}
	}
	if sess != nil {
		sess.DispatchUnload()
	}
	return stats
}

// applyFrame applies a single frame and returns the current session.
func (r *Replayer) applyFrame(sess *agentfeed.PageSession,
	frame *agentfeed.Frame, stats *Stats) (*agentfeed.PageSession, error) {
	switch frame.Key {
	case agentfeed.FrameKeySessionHello:
		var hello agentfeed.SessionHello
		if err := json.Unmarshal(frame.Value, &hello); err != nil {
			return sess, errors.Wrap(err, "cannot unmarshal session.hello")
		}
		// an hello with a session still open means the agent went away
		// without unloading, so the previous session ends here
		if sess != nil {
			sess.DispatchUnload()
		}
		next := agentfeed.NewPageSession(&hello)
		sessionID := r.newSessionID()
		config := r.NewConfig(sessionID)
		config.Source = next
		collector, err := perfevents.NewCollector(config)
		if err != nil {
			return nil, errors.Wrap(err, "cannot create a collector")
		}
		collector.Start()
		stats.Sessions++
		r.Logger.Infof("replayer: session %s: %s", sessionID, hello.Location)
		return next, nil

	case agentfeed.FrameKeyPageLoaded:
		if sess == nil {
			return nil, errors.New("page.loaded before session.hello")
		}
		var loaded agentfeed.PageLoaded
		if err := json.Unmarshal(frame.Value, &loaded); err != nil {
			return sess, errors.Wrap(err, "cannot unmarshal page.loaded")
		}
		sess.DispatchLoad(&loaded)
		return sess, nil

	case agentfeed.FrameKeyResourcesBatch:
		if sess == nil {
			return nil, errors.New("resources.batch before session.hello")
		}
		var batch agentfeed.ResourcesBatch
		if err := json.Unmarshal(frame.Value, &batch); err != nil {
			return sess, errors.Wrap(err, "cannot unmarshal resources.batch")
		}
		stats.Entries += int64(len(batch.Entries))
		sess.AddResources(batch.Entries)
		return sess, nil

	case agentfeed.FrameKeyPageUnload:
		if sess == nil {
			return nil, errors.New("page.unload before session.hello")
		}
		sess.DispatchUnload()
		return nil, nil

	default:
		return sess, errors.Errorf("unknown frame key: %s", frame.Key)
	}
}

func (r *Replayer) newSessionID() string {
	if r.NewSessionID != nil {
		return r.NewSessionID()
	}
	return uuid.Must(uuid.NewRandom()).String()
}
