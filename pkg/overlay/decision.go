package overlay

import (
	"fmt"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/sidkik/overlaysync/pkg/errors"
)

// Logger is called once for each filesystem action with a human readable
// description of the action. A nil Logger discards the messages.
type Logger func(msg string)

func (logger Logger) log(format string, args ...interface{}) {
	if logger != nil {
		logger(fmt.Sprintf(format, args...))
	}
}

// Options controls how paths are updated.
type Options struct {
	// RootDir is joined onto every source and target path before it's
	// accessed. It's never included in log messages.
	RootDir string

	// All forces files to be copied even if the target is newer than the
	// source.
	All bool

	// IncludeGlobs and ExcludeGlobs filter the paths that are mapped by
	// MergeAndUpdateDir. See NewFilter.
	IncludeGlobs []string
	ExcludeGlobs []string
}

func (opts Options) resolve(path string) string {
	resolved := filepath.Join(opts.RootDir, path)
	if resolved == "" {
		return "."
	}
	return resolved
}

type action int

const (
	actionNone action = iota
	actionCreateDir
	actionCopy
	actionRemove
	actionReplaceWithDir
	actionReplaceWithFile
)

// decideAction picks the action that makes the target match the source.
// Anything that isn't a directory is treated as a file.
func decideAction(sourceStats, targetStats *FileMetadata, all bool) action {
	switch {
	case sourceStats == nil && targetStats == nil:
		return actionNone
	case targetStats == nil:
		if sourceStats.IsDir {
			return actionCreateDir
		}
		return actionCopy
	case sourceStats == nil:
		return actionRemove
	case sourceStats.IsDir && targetStats.IsDir:
		return actionNone
	case sourceStats.IsDir:
		return actionReplaceWithDir
	case targetStats.IsDir:
		return actionReplaceWithFile
	case all || !sourceStats.ModTime.Before(targetStats.ModTime):
		return actionCopy
	default:
		return actionNone
	}
}

// removesTarget returns whether the action deletes whatever is at the
// target, including everything below it.
func (a action) removesTarget() bool {
	return a == actionRemove || a == actionReplaceWithDir || a == actionReplaceWithFile
}

// UpdatePathWithStats makes `targetPath` match `sourcePath` based on the
// already known metadata of both paths. A nil sourceStats means the path
// should not exist in the target. It returns whether the filesystem was
// modified.
func UpdatePathWithStats(fs afero.Fs, sourcePath string, sourceStats *FileMetadata,
	targetPath string, targetStats *FileMetadata, opts Options, logger Logger) (bool, error) {

	act := decideAction(sourceStats, targetStats, opts.All)
	if act == actionNone {
		if sourceStats != nil && sourceStats.IsFile && targetStats != nil && targetStats.IsFile {
			log.WithFields(log.Fields{
				"source": sourcePath,
				"target": targetPath,
			}).Debug("Target is newer than source. Skipping copy.")
		}
		return false, nil
	}

	src := opts.resolve(sourcePath)
	dst := opts.resolve(targetPath)

	if act.removesTarget() {
		if err := removePath(fs, dst); err != nil {
			return false, errors.WithContext(err, fmt.Sprintf("remove %q", targetPath))
		}
		logger.log("remove %s", targetPath)
	}

	switch act {
	case actionCreateDir, actionReplaceWithDir:
		if err := createDirectory(fs, dst); err != nil {
			return false, errors.WithContext(err, fmt.Sprintf("create %q", targetPath))
		}
		logger.log("create %s", targetPath)
	case actionCopy, actionReplaceWithFile:
		if err := copyPath(fs, src, dst); err != nil {
			return false, errors.WithContext(err, fmt.Sprintf("copy %q", sourcePath))
		}
		logger.log("copy %s -> %s", sourcePath, targetPath)
	}
	return true, nil
}
