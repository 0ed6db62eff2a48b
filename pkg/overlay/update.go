package overlay

import (
	"github.com/spf13/afero"

	"github.com/sidkik/overlaysync/pkg/errors"
)

// UpdatePath makes `targetPath` match `sourcePath`, looking up the metadata
// of both paths first. An empty sourcePath is treated as a source that
// doesn't exist, so the target is removed.
func UpdatePath(fs afero.Fs, sourcePath, targetPath string, opts Options, logger Logger) (bool, error) {
	var sourceStats *FileMetadata
	if sourcePath != "" {
		var err error
		sourceStats, err = Stat(fs, opts.resolve(sourcePath))
		if err != nil {
			return false, errors.WithContext(err, "source")
		}
	}

	targetStats, err := Stat(fs, opts.resolve(targetPath))
	if err != nil {
		return false, errors.WithContext(err, "target")
	}

	return UpdatePathWithStats(fs, sourcePath, sourceStats, targetPath, targetStats, opts, logger)
}
