// Command pageperfd is the local page-performance telemetry daemon.
//
// It serves the agent feed WebSocket endpoint, a JSON status endpoint,
// and Prometheus metrics. The daemon refuses to run until the operator
// has completed `pageperf onboard`.
package main

import (
	"context"
	"errors"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/apex/log"
	"github.com/pageperf/pageperf/internal/agentfeed"
	"github.com/pageperf/pageperf/internal/kvstore"
	"github.com/pageperf/pageperf/internal/logx"
	"github.com/pageperf/pageperf/internal/model"
	"github.com/pageperf/pageperf/internal/perfevents"
	"github.com/pageperf/pageperf/internal/runtimex"
	"github.com/pageperf/pageperf/internal/settings"
	"github.com/pageperf/pageperf/internal/sinks"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// apiEndpoint is the endpoint where we serve the agent feed
	apiEndpoint = flag.String("endpoint", "127.0.0.1:8788", "API endpoint")

	// collectorURL overrides the collector URL in the config
	collectorURL = flag.String("collector", "", "override the collector URL in the config")

	// debug controls whether to enable verbose logging
	debug = flag.Bool("debug", false, "Toggle debug mode")

	// prometheusEpnt is the endpoint where we serve prometheus metrics
	prometheusEpnt = flag.String("prometheus", "127.0.0.1:9091", "Prometheus endpoint")

	// samplingRate overrides the sampling rate in the config
	samplingRate = flag.Float64("sampling", 0, "override the sampling rate in (0, 1]")

	// sigs is the channel where we collect signals
	sigs = make(chan os.Signal, 1)

	// sinkFile overrides the events sink file in the config
	sinkFile = flag.String("sink", "", "override the events sink file path")

	// srvAddr is used to pass the server address to tests
	srvAddr = make(chan string, 1)

	// srvWg is used by tests to know when the server has shut down
	srvWg = new(sync.WaitGroup)

	// stateDir overrides the default state directory
	stateDir = flag.String("state-dir", "", "override the state directory")
)

// resolveStateDir returns the state directory to use.
func resolveStateDir() string {
	if *stateDir != "" {
		return *stateDir
	}
	dir, err := settings.DefaultStateDir()
	runtimex.PanicOnError(err, "cannot determine the default state directory")
	return dir
}

// loadSettings reads the configuration document, tolerating only its
// absence: a probe onboarded before the config document existed still
// runs with defaults, while a broken document needs the operator.
func loadSettings(kvStore model.KeyValueStore) *settings.Root {
	root, err := settings.Load(kvStore)
	if err != nil {
		if !errors.Is(err, kvstore.ErrNoSuchKey) {
			log.Fatalf("pageperfd: cannot load the config document: %s", err.Error())
		}
		log.Warn("pageperfd: no config document: using defaults")
		root = &settings.Root{Version: settings.ConfigVersion}
	}
	return root
}

// applyFlagOverrides merges command line overrides into the document.
func applyFlagOverrides(root *settings.Root) {
	if *collectorURL != "" {
		root.CollectorURL = *collectorURL
	}
	if *sinkFile != "" {
		root.SinkFile = *sinkFile
	}
	if *samplingRate > 0 {
		root.SamplingRate = *samplingRate
	}
}

// newSink creates the event sink implied by the configuration. A
// configured collector URL wins over a sink file; without either we
// log events for dry runs.
func newSink(root *settings.Root) model.EventSink {
	if root.CollectorURL != "" {
		return &sinks.HTTPSink{
			Client: http.DefaultClient,
			URL:    root.CollectorURL,
		}
	}
	if root.SinkFile != "" {
		filep, err := os.OpenFile(root.SinkFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		runtimex.PanicOnError(err, "cannot open the events sink file")
		return sinks.NewWriterSink(filep)
	}
	return &sinks.LoggerSink{Logger: log.Log}
}

// newStartCollection creates the feed handler hook starting one
// collection engine per agent session.
func newStartCollection(root *settings.Root, sink model.EventSink,
	logger model.Logger) func(sessionID string, sess *agentfeed.PageSession) {
	return func(sessionID string, sess *agentfeed.PageSession) {
		config := root.EngineConfig()
		config.Logger = logger
		config.SessionID = sessionID
		config.Sink = sink
		config.Source = sess
		collector, err := perfevents.NewCollector(config)
		if err != nil {
			logger.Warnf("pageperfd: cannot create a collector: %s", err.Error())
			return
		}
		collector.Start()
	}
}

// shutdown calls srv.Shutdown with a reasonably long timeout. The srv.Shutdown
// function will immediately close any open listener and then will wait until
// all pending connections are closed or the context has expired. By giving pending
// connections a long timeout to complete, we make sure we can serve many of them
// while still eventually shutting down the server. This function will decrement
// the given wait group counter when it is done running.
func shutdown(srv *http.Server, wg *sync.WaitGroup) {
	defer wg.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
	defer cancel()
	srv.Shutdown(ctx)
}

func main() {
	// parse command line options
	flag.Parse()

	// set up logging with the elapsed-time handler
	log.SetHandler(logx.NewHandlerWithDefaultSettings(os.Stderr))
	logmap := map[bool]log.Level{
		true:  log.DebugLevel,
		false: log.InfoLevel,
	}
	log.SetLevel(logmap[*debug])

	// open the state directory
	kvStore, err := kvstore.NewFS(resolveStateDir())
	runtimex.PanicOnError(err, "cannot open the state directory")

	// refuse to collect anything without informed consent
	if !settings.HasConsent(kvStore) {
		log.Fatal("pageperfd: no informed consent: please run `pageperf onboard` first")
	}

	// assemble configuration, sink, and the scrubbing logger
	root := loadSettings(kvStore)
	applyFlagOverrides(root)
	sink := newSink(root)
	logger := &logx.ScrubberLogger{Logger: log.Log}

	// create the feed handler starting one collector per session
	feed := agentfeed.NewHandler(logger, newStartCollection(root, sink, logger))

	// create the HTTP server mux
	mux := http.NewServeMux()
	mux.Handle("/api/v1/feed", feed)
	mux.Handle("/api/v1/status", newStatusHandler(feed.Stats))

	// create a listening server for serving agent requests
	srv := &http.Server{Addr: *apiEndpoint, Handler: mux}
	listener, err := net.Listen("tcp", *apiEndpoint)
	runtimex.PanicOnError(err, "net.Listen failed")

	// await for the server's address to become available
	srvAddr <- listener.Addr().String()
	srvWg.Add(1)

	log.Infof("serving the agent feed at ws://%s/api/v1/feed", listener.Addr().String())

	// start listening in the background
	go srv.Serve(listener)

	// create another server for serving prometheus metrics
	promMux := http.NewServeMux()
	promMux.Handle("/metrics", promhttp.Handler())
	promSrv := &http.Server{Addr: *prometheusEpnt, Handler: promMux}
	go promSrv.ListenAndServe()

	log.Infof("serving prometheus metrics at http://%s/", *prometheusEpnt)

	// await for the main context to be canceled or for a signal
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigs
	log.Infof("interrupted by signal: %v", sig)

	// shutdown the servers awaiting for connections being
	// served to terminate before exiting gracefully.
	log.Infof("waiting for pending requests to complete")
	shutdownWg := &sync.WaitGroup{}
	shutdownWg.Add(1)
	go shutdown(srv, shutdownWg)
	shutdownWg.Add(1)
	go shutdown(promSrv, shutdownWg)
	shutdownWg.Wait()

	// notify tests that we are now done
	srvWg.Done()
}
