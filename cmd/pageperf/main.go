// Command pageperf is the command line client for the pageperf
// page load telemetry daemon.
package main

import (
	"os"

	"github.com/apex/log"
	"github.com/pageperf/pageperf/cmd/pageperf/internal/cli/app"
	_ "github.com/pageperf/pageperf/cmd/pageperf/internal/cli/onboard"
	_ "github.com/pageperf/pageperf/cmd/pageperf/internal/cli/replay"
	_ "github.com/pageperf/pageperf/cmd/pageperf/internal/cli/status"
	_ "github.com/pageperf/pageperf/cmd/pageperf/internal/cli/version"
)

func main() {
	if err := app.Run(); err != nil {
		log.WithError(err).Error("pageperf exited with an error")
		os.Exit(1)
	}
}
