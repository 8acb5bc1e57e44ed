// Package version implements the version command.
package version

import (
	"fmt"

	"github.com/alecthomas/kingpin/v2"
	"github.com/pageperf/pageperf/cmd/pageperf/internal/cli/root"
	"github.com/pageperf/pageperf/internal/version"
)

func init() {
	cmd := root.Command("version", "Show version.")
	cmd.Action(func(_ *kingpin.ParseContext) error {
		fmt.Println(version.Version)
		return nil
	})
}
