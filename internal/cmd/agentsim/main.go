// Command agentsim simulates in-page telemetry agents talking to a
// running pageperfd daemon. It opens the feed endpoint like a real
// agent would and plays back whole page sessions with randomized but
// plausible timing figures. We use it to exercise a locally running
// daemon during development.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/url"
	"os"
	"time"

	"github.com/apex/log"
	"github.com/gorilla/websocket"
	"github.com/pageperf/pageperf/internal/agentfeed"
	"github.com/pageperf/pageperf/internal/logx"
	"github.com/pageperf/pageperf/internal/memoryless"
	"github.com/pageperf/pageperf/internal/model"
	"github.com/pageperf/pageperf/internal/runtimex"
	"github.com/pageperf/pageperf/internal/version"
	"github.com/pborman/getopt/v2"
)

// Options contains the options you can set from the CLI.
type Options struct {
	Endpoint  string
	MeanWait  int64
	Pages     int64
	Resources int64
	Verbose   bool
	Version   bool
}

var globalOptions = Options{
	Endpoint:  "127.0.0.1:8788",
	Pages:     1,
	Resources: 25,
}

func init() {
	getopt.FlagLong(
		&globalOptions.Endpoint, "endpoint", 'e',
		"Address where the pageperfd feed endpoint listens", "ADDR",
	)
	getopt.FlagLong(
		&globalOptions.MeanWait, "mean-wait", 0,
		"Mean think time in seconds between pages (zero means back to back)", "N",
	)
	getopt.FlagLong(
		&globalOptions.Pages, "pages", 'p',
		"Number of page sessions to simulate", "N",
	)
	getopt.FlagLong(
		&globalOptions.Resources, "resources", 'r',
		"Number of resource entries to stream per page", "N",
	)
	getopt.FlagLong(
		&globalOptions.Verbose, "verbose", 'v', "Increase verbosity",
	)
	getopt.FlagLong(
		&globalOptions.Version, "version", 0, "Print version and exit",
	)
}

func main() {
	getopt.Parse()
	if globalOptions.Version {
		fmt.Printf("%s\n", version.Version)
		os.Exit(0)
	}
	logger := &log.Logger{
		Level:   log.InfoLevel,
		Handler: logx.NewHandlerWithDefaultSettings(os.Stderr),
	}
	if globalOptions.Verbose {
		logger.Level = log.DebugLevel
	}
	log.Log = logger
	URL := &url.URL{
		Scheme: "ws",
		Host:   globalOptions.Endpoint,
		Path:   "/api/v1/feed",
	}
	mean := time.Duration(globalOptions.MeanWait) * time.Second
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var count int64
	err := memoryless.Run(ctx, func() {
		simulateSession(logger, URL.String(), count)
		count++
		if count >= globalOptions.Pages {
			cancel()
		}
	}, memoryless.Config{
		Expected: mean,
		Min:      mean / 10,
		Max:      mean * 10,
		Once:     globalOptions.Pages <= 1,
	})
	runtimex.PanicOnError(err, "memoryless.Run failed")
	logger.Infof("agentsim: simulated %d page sessions", count)
}

// maxBatchEntries is how many resource entries we put into a single
// resources.batch frame. Real agents flush their observer buffer in
// small increments rather than all at once.
const maxBatchEntries = 10

// simulateSession connects to the daemon and plays a whole page
// session: hello, page load, resource batches, then unload.
func simulateSession(logger model.Logger, URL string, idx int64) {
	conn, _, err := websocket.DefaultDialer.Dial(URL, nil)
	runtimex.PanicOnError(err, "cannot connect to the daemon feed endpoint")
	defer conn.Close()
	location := fmt.Sprintf("https://news.example/story-%d", idx)
	logger.Infof("agentsim: session %d: %s", idx, location)
	writeFrame(conn, agentfeed.FrameKeySessionHello, &agentfeed.SessionHello{
		Location:         location,
		ResourceObserver: true,
		UserAgent:        "Mozilla/5.0 (X11; Linux x86_64) agentsim/" + version.Version,
	})
	writeFrame(conn, agentfeed.FrameKeyPageLoaded, &agentfeed.PageLoaded{
		Location:   location,
		Navigation: []*model.NavigationTiming{newNavigationTiming()},
		Paints: []*model.PaintTiming{
			{Name: "first-paint", StartTime: 80 + rand.Float64()*60},
			{Name: "first-contentful-paint", StartTime: 120 + rand.Float64()*80},
		},
	})
	remaining := globalOptions.Resources
	for remaining > 0 {
		size := remaining
		if size > maxBatchEntries {
			size = maxBatchEntries
		}
		batch := &agentfeed.ResourcesBatch{}
		for i := int64(0); i < size; i++ {
			batch.Entries = append(batch.Entries, newResourceTiming(location))
		}
		logger.Debugf("agentsim: session %d: streaming %d resource entries", idx, size)
		writeFrame(conn, agentfeed.FrameKeyResourcesBatch, batch)
		remaining -= size
		time.Sleep(10 * time.Millisecond)
	}
	writeFrame(conn, agentfeed.FrameKeyPageUnload, struct{}{})
}

// writeFrame marshals the payload and sends it inside a feed frame.
func writeFrame(conn *websocket.Conn, key string, payload any) {
	data, err := json.Marshal(payload)
	runtimex.PanicOnError(err, "cannot marshal frame payload")
	err = conn.WriteJSON(&agentfeed.Frame{Key: key, Value: data})
	runtimex.PanicOnError(err, "cannot write frame")
}

// newNavigationTiming fabricates a plausible navigation entry. The
// name is the placeholder that agents emit for the document itself.
func newNavigationTiming() *model.NavigationTiming {
	responseStart := 60 + rand.Float64()*120
	responseEnd := responseStart + 20 + rand.Float64()*200
	return &model.NavigationTiming{
		Name:                     "document",
		RequestStart:             5 + rand.Float64()*20,
		ResponseStart:            responseStart,
		ResponseEnd:              responseEnd,
		DomContentLoadedEventEnd: responseEnd + 50 + rand.Float64()*300,
		DomComplete:              responseEnd + 200 + rand.Float64()*800,
		TransferSize:             int64(2000 + rand.Intn(30000)),
	}
}

// initiatorTypes are the initiator types we cycle through when
// fabricating resource entries.
var initiatorTypes = []string{"script", "img", "link", "css", "fetch"}

// resourceSeq counts the fabricated resource entries so that each one
// gets a distinct URL.
var resourceSeq int64

// newResourceTiming fabricates a single resource entry. Roughly one
// entry in four is a cache hit with a zero transfer size, and a few
// entries are slow enough to trip the default slowness threshold.
func newResourceTiming(location string) *model.ResourceTiming {
	resourceSeq++
	startTime := 100 + rand.Float64()*1500
	duration := 20 + rand.Float64()*400
	if rand.Intn(10) == 0 {
		duration = 1200 + rand.Float64()*2000
	}
	entry := &model.ResourceTiming{
		Name:          fmt.Sprintf("%s/assets/asset-%d.js", location, resourceSeq),
		InitiatorType: initiatorTypes[resourceSeq%int64(len(initiatorTypes))],
		StartTime:     startTime,
		Duration:      duration,
		FetchStart:    startTime,
		ResponseEnd:   startTime + duration,
	}
	if rand.Intn(4) == 0 {
		// Cache hit: no bytes moved on the wire yet the body was
		// decoded from the local cache.
		entry.DecodedBodySize = int64(500 + rand.Intn(100000))
		return entry
	}
	entry.DomainLookupStart = startTime + 1
	entry.DomainLookupEnd = startTime + 1 + rand.Float64()*30
	entry.RequestStart = entry.DomainLookupEnd + rand.Float64()*10
	entry.ResponseStart = entry.RequestStart + rand.Float64()*(duration/2)
	entry.TransferSize = int64(300 + rand.Intn(50000))
	entry.EncodedBodySize = entry.TransferSize - int64(rand.Intn(300))
	entry.DecodedBodySize = entry.EncodedBodySize * int64(1+rand.Intn(4))
	return entry
}
