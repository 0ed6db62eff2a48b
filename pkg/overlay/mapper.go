package overlay

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/sidkik/overlaysync/pkg/errors"
)

// rootKey is the PathMap key of the walked directory itself.
const rootKey = ""

// A DirectoryEntry is a path that was found while walking a directory.
type DirectoryEntry struct {
	// OwnerDir is the directory that was walked to find the entry, relative
	// to the root directory passed to MapDirectory. Joining it with the
	// entry's key gives the entry's location.
	OwnerDir string

	Metadata *FileMetadata
}

// A PathMap contains the entries found under a directory, keyed by their
// `/`-separated path relative to that directory.
type PathMap map[string]DirectoryEntry

// MapDirectory walks `subDir` (resolved relative to `rootDir`) and returns
// every path under it that matches `filter`. The walk recurses into all
// subdirectories, even ones that the filter rejects, so that nested matches
// are still found. Symlinks are followed. The directory itself is always
// included under the empty key.
func MapDirectory(fs afero.Fs, rootDir, subDir string, filter Filter) (PathMap, error) {
	walkDir := filepath.Join(rootDir, subDir)
	fi, err := fs.Stat(walkDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.FileNotFound{Path: walkDir}
		}
		return nil, errors.WithContext(err, "stat")
	}

	if !fi.IsDir() {
		return nil, errors.FileNotFound{Path: walkDir}
	}

	paths := PathMap{}
	err = walk(fs, walkDir, fi, func(path string, fi os.FileInfo) error {
		key, err := relativeKey(walkDir, path)
		if err != nil {
			return err
		}

		if key != rootKey && !filter.Match(key) {
			return nil
		}

		paths[key] = DirectoryEntry{
			OwnerDir: subDir,
			Metadata: newFileMetadata(fi),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

func relativeKey(dir, path string) (string, error) {
	relativePath, err := filepath.Rel(dir, path)
	if err != nil || strings.HasPrefix(relativePath, "..") {
		// This shouldn't happen because `path` is always a child of `dir`.
		return "", errors.WithContext(err, "normalize path")
	}

	if relativePath == "." {
		return rootKey, nil
	}
	return filepath.ToSlash(relativePath), nil
}
