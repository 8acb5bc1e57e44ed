package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pageperf/pageperf/internal/agentfeed"
	"github.com/pageperf/pageperf/internal/kvstore"
	"github.com/pageperf/pageperf/internal/model"
	"github.com/pageperf/pageperf/internal/settings"
	"github.com/pageperf/pageperf/internal/version"
)

// writeFrame sends a single protocol frame over the given conn.
func writeFrame(t *testing.T, conn *websocket.Conn, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		t.Fatal(err)
	}
	if err := conn.WriteJSON(&agentfeed.Frame{Key: key, Value: data}); err != nil {
		t.Fatal(err)
	}
}

// waitFor polls the given predicate until it returns true or too
// much time has passed.
func waitFor(t *testing.T, pred func() bool) {
	deadline := time.Now().Add(10 * time.Second)
	for !pred() {
		if time.Now().After(deadline) {
			t.Fatal("waitFor: timed out")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

// countLines returns the number of newline-terminated records
// inside the file at the given path.
func countLines(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0
	}
	return strings.Count(string(data), "\n")
}

// getStatus fetches and parses the status document.
func getStatus(t *testing.T, addr string) *statusDocument {
	resp, err := http.Get("http://" + addr + "/api/v1/status")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	doc := &statusDocument{}
	if err := json.NewDecoder(resp.Body).Decode(doc); err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestMainWorkingAsIntended(t *testing.T) {
	// create a state directory with consent and a default config
	dir := t.TempDir()
	kvStore, err := kvstore.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := settings.RecordConsent(kvStore); err != nil {
		t.Fatal(err)
	}
	if err := settings.WriteDefault(kvStore); err != nil {
		t.Fatal(err)
	}

	// override the command line defaults
	sinkPath := filepath.Join(dir, "events.jsonl")
	*apiEndpoint = "127.0.0.1:0"
	*prometheusEpnt = "127.0.0.1:0"
	*sinkFile = sinkPath
	*stateDir = dir

	// run the daemon in the background and wait for its address
	go main()
	addr := <-srvAddr

	// connect to the feed endpoint like the in-page agent would
	conn, _, err := websocket.DefaultDialer.Dial(
		"ws://"+addr+"/api/v1/feed", nil)
	if err != nil {
		t.Fatal(err)
	}

	// announce the session
	writeFrame(t, conn, agentfeed.FrameKeySessionHello, &agentfeed.SessionHello{
		Location:         "https://news.example/story",
		ResourceObserver: true,
		UserAgent:        "Mozilla/5.0 (X11; Linux x86_64)",
	})

	// signal that the page has loaded
	writeFrame(t, conn, agentfeed.FrameKeyPageLoaded, &agentfeed.PageLoaded{
		Navigation: []*model.NavigationTiming{{
			Name:                     "document",
			RequestStart:             100,
			ResponseStart:            150,
			ResponseEnd:              500,
			DomContentLoadedEventEnd: 300,
			DomComplete:              600,
			TransferSize:             2048,
		}},
		Paints: []*model.PaintTiming{
			{Name: "first-paint", StartTime: 100},
			{Name: "first-contentful-paint", StartTime: 120},
		},
	})

	// send enough resources to trigger a batch flush
	var entries []*model.ResourceTiming
	for idx := 0; idx < 20; idx++ {
		entries = append(entries, &model.ResourceTiming{
			Name:          fmt.Sprintf("https://static.example/asset-%d.js", idx),
			InitiatorType: "script",
			Duration:      100,
			TransferSize:  2048,
		})
	}
	writeFrame(t, conn, agentfeed.FrameKeyResourcesBatch, &agentfeed.ResourcesBatch{
		Entries: entries,
	})

	// end the session
	writeFrame(t, conn, agentfeed.FrameKeyPageUnload, struct{}{})
	conn.Close()

	// the sink file should eventually contain the page-load event
	// and the flushed resources batch
	waitFor(t, func() bool {
		return countLines(sinkPath) >= 2
	})

	// the status endpoint should reflect the completed session
	waitFor(t, func() bool {
		return getStatus(t, addr).Sessions.SessionsActive == 0
	})
	doc := getStatus(t, addr)
	if doc.Sessions.SessionsStarted != 1 {
		t.Fatal("unexpected sessions started count", doc.Sessions.SessionsStarted)
	}
	if doc.Sessions.EntriesReceived != 20 {
		t.Fatal("unexpected entries received count", doc.Sessions.EntriesReceived)
	}
	if doc.Sessions.ProtocolErrors != 0 {
		t.Fatal("unexpected protocol errors count", doc.Sessions.ProtocolErrors)
	}
	if doc.UptimeSeconds <= 0 {
		t.Fatal("unexpected uptime", doc.UptimeSeconds)
	}
	if doc.Version != version.Version {
		t.Fatal("unexpected version", doc.Version)
	}

	// check the emitted events order and types
	data, err := os.ReadFile(sinkPath)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatal("expected exactly two events, got", len(lines))
	}
	var envelope struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal([]byte(lines[0]), &envelope); err != nil {
		t.Fatal(err)
	}
	if envelope.Type != model.LogEventTypePageLoad {
		t.Fatal("unexpected first event type", envelope.Type)
	}
	if err := json.Unmarshal([]byte(lines[1]), &envelope); err != nil {
		t.Fatal(err)
	}
	if envelope.Type != model.LogEventTypeResourcesList {
		t.Fatal("unexpected second event type", envelope.Type)
	}

	// ask the daemon to shut down and wait for it
	sigs <- syscall.SIGTERM
	srvWg.Wait()
}
