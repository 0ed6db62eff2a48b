package config

import (
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/sidkik/overlaysync/pkg/errors"
)

// ErrProjectRootNotFound is returned by FindProjectRoot when no ancestor
// contains a manifest.
var ErrProjectRootNotFound = errors.New("project root not found")

// FindProjectRoot returns the closest directory at or above `startDir` that
// contains a manifest. If `startDir` is empty, the search starts at the
// working directory.
func FindProjectRoot(startDir string) (string, error) {
	if startDir == "" {
		wd, err := getwd()
		if err != nil {
			return "", errors.WithContext(err, "get working directory")
		}
		startDir = wd
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", errors.WithContext(err, "get absolute path")
	}

	for {
		exists, err := afero.Exists(fs, filepath.Join(dir, ManifestName))
		if err != nil {
			return "", errors.WithContext(err, "check for manifest")
		}

		if exists {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrProjectRootNotFound
		}
		dir = parent
	}
}
