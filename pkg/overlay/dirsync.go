package overlay

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/sidkik/overlaysync/pkg/errors"
)

// MergeAndUpdateDir overlays `sourceDirs` onto `targetDir`. Later source
// directories take precedence over earlier ones. Paths in the target that no
// source has are removed. It returns whether anything in the target changed.
//
// The target directory doesn't need to exist. Each source directory must.
func MergeAndUpdateDir(fs afero.Fs, sourceDirs []string, targetDir string, opts Options, logger Logger) (bool, error) {
	filter, err := NewFilter(opts.IncludeGlobs, opts.ExcludeGlobs)
	if err != nil {
		return false, errors.WithContext(err, "parse filter")
	}

	var sourceMaps []PathMap
	for _, dir := range sourceDirs {
		sourceMap, err := MapDirectory(fs, opts.RootDir, dir, filter)
		if err != nil {
			return false, errors.WithContext(err, fmt.Sprintf("map source %q", dir))
		}
		sourceMaps = append(sourceMaps, sourceMap)
	}

	// A target that doesn't exist yet maps to nothing. Any other failure to
	// map it, including paths vanishing mid-walk, is fatal.
	targetStats, err := Stat(fs, opts.resolve(targetDir))
	if err != nil {
		return false, errors.WithContext(err, fmt.Sprintf("stat target %q", targetDir))
	}

	targetMap := PathMap{}
	if targetStats != nil {
		targetMap, err = MapDirectory(fs, opts.RootDir, targetDir, filter)
		if err != nil {
			return false, errors.WithContext(err, fmt.Sprintf("map target %q", targetDir))
		}
	}

	merged := MergePathMaps(sourceMaps, targetMap, targetDir)

	var changed, removed int
	var removedKeys []string
	for _, key := range merged.Keys() {
		entry := merged[key]

		// The target metadata was collected before anything was removed, so
		// it's stale for paths below a removed directory.
		if underAny(key, removedKeys) {
			entry.TargetStats = nil
		}

		if decideAction(entry.SourceStats, entry.TargetStats, opts.All).removesTarget() {
			removedKeys = append(removedKeys, key)
			removed++
		}

		updated, err := UpdatePathWithStats(fs, entry.SourcePath, entry.SourceStats,
			entry.TargetPath, entry.TargetStats, opts, logger)
		if err != nil {
			return false, err
		}

		if updated {
			changed++
		}
	}

	log.WithFields(log.Fields{
		"target":  targetDir,
		"sources": sourceDirs,
		"paths":   len(merged),
		"changed": changed,
		"removed": removed,
	}).Debug("Finished overlay sync")
	return changed > 0, nil
}

// underAny returns whether `key` is strictly below any of the given keys.
func underAny(key string, parents []string) bool {
	for _, parent := range parents {
		if parent == rootKey || strings.HasPrefix(key, parent+"/") {
			return true
		}
	}
	return false
}
