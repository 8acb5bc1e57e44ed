package settings

//
// State directory resolution
//

import (
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
)

// DefaultStateDir returns the default directory holding the probe
// state, which is `.pageperf` inside the user's home directory.
func DefaultStateDir() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".pageperf"), nil
}
