package overlay

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"

	"github.com/sidkik/overlaysync/pkg/errors"
)

type walkFunc func(path string, fi os.FileInfo) error

// walk calls fn for `path` and everything below it, parents before children
// and siblings in lexical order. Unlike afero.Walk, each path is stat'd
// rather than lstat'd, so symlinks report what they point to, and linked
// directories are descended into. Paths that disappear during the walk are
// reported as errors.FileNotFound.
func walk(fs afero.Fs, path string, fi os.FileInfo, fn walkFunc) error {
	if err := fn(path, fi); err != nil {
		return err
	}

	if !fi.IsDir() {
		return nil
	}

	names, err := readDirNames(fs, path)
	if err != nil {
		return err
	}

	for _, name := range names {
		child := filepath.Join(path, name)
		childInfo, err := fs.Stat(child)
		if err != nil {
			if os.IsNotExist(err) {
				return errors.FileNotFound{Path: child}
			}
			return errors.WithContext(err, "stat")
		}

		if err := walk(fs, child, childInfo, fn); err != nil {
			return err
		}
	}
	return nil
}

func readDirNames(fs afero.Fs, dir string) ([]string, error) {
	f, err := fs.Open(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.FileNotFound{Path: dir}
		}
		return nil, errors.WithContext(err, "open directory")
	}
	defer f.Close()

	names, err := f.Readdirnames(-1)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.FileNotFound{Path: dir}
		}
		return nil, errors.WithContext(err, "read directory")
	}
	sort.Strings(names)
	return names, nil
}
