// Package root contains the root command and the state shared by all
// the subcommands.
package root

import (
	"github.com/alecthomas/kingpin/v2"
	"github.com/apex/log"
	"github.com/pageperf/pageperf/cmd/pageperf/internal/log/handlers/cli"
	"github.com/pageperf/pageperf/internal/kvstore"
	"github.com/pageperf/pageperf/internal/model"
	"github.com/pageperf/pageperf/internal/settings"
	"github.com/pageperf/pageperf/internal/version"
	"github.com/pkg/errors"
)

// Cmd is the root command
var Cmd = kingpin.New("pageperf", "Client for the pageperf page load telemetry daemon")

// Command is syntax sugar for defining sub-commands
var Command = Cmd.Command

// Endpoint is the address of the daemon API endpoint
var Endpoint *string

// Init should be called by all subcommands that care to have a state store
var Init func() (model.KeyValueStore, error)

func init() {
	stateDir := Cmd.Flag("state-dir", "Set a custom state directory path").String()
	verbose := Cmd.Flag("verbose", "Enable verbose log output.").Short('v').Bool()
	Endpoint = Cmd.Flag("endpoint", "Address of the daemon API endpoint").
		Default("127.0.0.1:8788").String()

	Cmd.PreAction(func(ctx *kingpin.ParseContext) error {
		log.SetHandler(cli.Default)
		if *verbose {
			log.SetLevel(log.DebugLevel)
			log.Debugf("pageperf version %s", version.Version)
		}

		Init = func() (model.KeyValueStore, error) {
			dir := *stateDir
			if dir == "" {
				var err error
				dir, err = settings.DefaultStateDir()
				if err != nil {
					return nil, errors.Wrap(err, "resolving the state directory")
				}
			}
			store, err := kvstore.NewFS(dir)
			if err != nil {
				return nil, errors.Wrap(err, "opening the state directory")
			}
			return store, nil
		}

		return nil
	})
}
