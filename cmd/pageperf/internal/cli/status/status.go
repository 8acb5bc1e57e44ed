// Package status implements the status command, which renders the
// daemon status document as a table.
package status

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/alecthomas/kingpin/v2"
	"github.com/apex/log"
	"github.com/pageperf/pageperf/cmd/pageperf/internal/cli/root"
	"github.com/pageperf/pageperf/cmd/pageperf/internal/output"
	"github.com/pageperf/pageperf/internal/agentfeed"
	"github.com/pageperf/pageperf/internal/model"
	"github.com/pkg/errors"
)

func init() {
	cmd := root.Command("status", "Show the daemon status")
	cmd.Action(func(_ *kingpin.ParseContext) error {
		return dostatus(dostatusconfig{
			Client:       http.DefaultClient,
			Endpoint:     *root.Endpoint,
			Logger:       log.Log,
			SectionTitle: output.SectionTitle,
		})
	})
}

type dostatusconfig struct {
	Client       model.HTTPClient
	Endpoint     string
	Logger       log.Interface
	SectionTitle func(string)
}

// statusDocument mirrors the daemon's status response body.
type statusDocument struct {
	Sessions      *agentfeed.StatsSnapshot `json:"sessions"`
	UptimeSeconds float64                  `json:"uptimeSeconds"`
	Version       string                   `json:"version"`
}

func dostatus(config dostatusconfig) error {
	config.SectionTitle("Daemon status")

	URL := &url.URL{Scheme: "http", Host: config.Endpoint, Path: "/api/v1/status"}
	req, err := http.NewRequest("GET", URL.String(), nil)
	if err != nil {
		return err
	}
	resp, err := config.Client.Do(req)
	if err != nil {
		return errors.Wrap(err, "cannot contact the daemon, is pageperfd running?")
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return errors.Errorf("unexpected status response: %d", resp.StatusCode)
	}
	doc := &statusDocument{}
	if err := json.NewDecoder(resp.Body).Decode(doc); err != nil {
		return errors.Wrap(err, "parsing the status document")
	}
	if doc.Sessions == nil {
		return errors.New("status document has no sessions summary")
	}

	config.Logger.WithFields(log.Fields{
		"type":             "table",
		"daemon version":   doc.Version,
		"uptime":           fmt.Sprintf("%ds", int64(doc.UptimeSeconds)),
		"sessions active":  fmt.Sprintf("%d", doc.Sessions.SessionsActive),
		"sessions started": fmt.Sprintf("%d", doc.Sessions.SessionsStarted),
		"entries received": fmt.Sprintf("%d", doc.Sessions.EntriesReceived),
		"protocol errors":  fmt.Sprintf("%d", doc.Sessions.ProtocolErrors),
	}).Info("the daemon is running")

	return nil
}
