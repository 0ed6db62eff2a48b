package fswatch

import (
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/sidkik/overlaysync/pkg/errors"
)

var fs = afero.NewOsFs()

// Watch watches for changes within the given directory trees. It sends an
// event on the returned channel whenever something below one of the
// directories is created, modified or removed. Bursts of changes are
// combined into a single event.
func Watch(dirs []string) (chan struct{}, error) {
	pathsToWatch, err := getPathsToWatch(dirs)
	if err != nil {
		return nil, errors.WithContext(err, "get paths")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.WithContext(err, "create watcher")
	}

	for _, path := range pathsToWatch {
		if err := watcher.Add(path); err != nil {
			// Close the watcher so that we release the file handlers for the
			// previously added paths.
			if err := watcher.Close(); err != nil {
				log.WithError(err).Warn("Failed to close file watcher")
			}

			return nil, errors.WithContext(err, fmt.Sprintf("watch %q", path))
		}
	}

	go logErrors(watcher.Errors)
	return combineUpdates(watcher.Events), nil
}

func combineUpdates(updates <-chan fsnotify.Event) chan struct{} {
	combined := make(chan struct{}, 1)
	go func() {
		for range updates {
			select {
			case combined <- struct{}{}:
			default:
			}
		}
	}()
	return combined
}

func logErrors(errs <-chan error) {
	for err := range errs {
		log.WithError(err).Debug("File watcher error")
	}
}

// getPathsToWatch returns every directory within `dirs`. Watching a directory
// reports changes to its direct children, so files don't need to be watched
// individually.
func getPathsToWatch(dirs []string) (paths []string, err error) {
	for _, dir := range dirs {
		fi, err := fs.Stat(dir)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.FileNotFound{Path: dir}
			}
			return nil, errors.WithContext(err, "stat")
		}

		if !fi.IsDir() {
			return nil, errors.NotDirectory{Path: dir}
		}

		err = afero.Walk(fs, dir, func(path string, fi os.FileInfo, err error) error {
			if err != nil {
				return errors.WithContext(err, "walk error")
			}

			if fi.IsDir() {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return paths, nil
}
