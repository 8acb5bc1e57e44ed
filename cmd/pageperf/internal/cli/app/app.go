// Package app contains the CLI entry point.
package app

import (
	"os"

	"github.com/pageperf/pageperf/cmd/pageperf/internal/cli/root"
	"github.com/pageperf/pageperf/internal/version"
)

// Run the app. This is the main app entry point
func Run() error {
	root.Cmd.Version(version.Version)
	_, err := root.Cmd.Parse(os.Args[1:])
	return err
}
