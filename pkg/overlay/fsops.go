package overlay

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/sidkik/overlaysync/pkg/errors"
)

const dirPerm = 0755

func createDirectory(fs afero.Fs, path string) error {
	if err := fs.MkdirAll(path, dirPerm); err != nil {
		return errors.WithContext(err, "mkdir")
	}
	return nil
}

// removePath removes path and everything below it. It's not an error if the
// path is already gone.
func removePath(fs afero.Fs, path string) error {
	if err := fs.RemoveAll(path); err != nil && !os.IsNotExist(err) {
		return errors.WithContext(err, "remove")
	}
	return nil
}

// copyPath copies the file or directory tree at src to dst. Copied files keep
// the source's mode, but their modification time is the time of the copy.
func copyPath(fs afero.Fs, src, dst string) error {
	fi, err := fs.Stat(src)
	if err != nil {
		return errors.WithContext(err, "stat source")
	}

	if !fi.IsDir() {
		return copyFile(fs, src, dst, fi.Mode())
	}

	return walk(fs, src, fi, func(path string, fi os.FileInfo) error {
		relativePath, err := filepath.Rel(src, path)
		if err != nil {
			return errors.WithContext(err, "normalize path")
		}

		dstPath := filepath.Join(dst, relativePath)
		if fi.IsDir() {
			return createDirectory(fs, dstPath)
		}
		return copyFile(fs, path, dstPath, fi.Mode())
	})
}

func copyFile(fs afero.Fs, src, dst string, mode os.FileMode) error {
	dstParent := filepath.Dir(dst)
	dstParentExists, err := afero.DirExists(fs, dstParent)
	if err != nil {
		return errors.WithContext(err, "check if parent exists")
	}

	if !dstParentExists {
		if err := createDirectory(fs, dstParent); err != nil {
			return errors.WithContext(err, "make parent")
		}
	}

	srcFile, err := fs.Open(src)
	if err != nil {
		return errors.WithContext(err, "open source")
	}
	defer srcFile.Close()

	dstFile, err := fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode.Perm())
	if err != nil {
		return errors.WithContext(err, "open destination")
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		dstFile.Close()
		return errors.WithContext(err, "copy")
	}

	if err := dstFile.Close(); err != nil {
		return errors.WithContext(err, "close destination")
	}

	// OpenFile doesn't change the mode of a file that already exists.
	if err := fs.Chmod(dst, mode.Perm()); err != nil {
		return errors.WithContext(err, "set file mode")
	}

	// The copy is stamped with the time of the copy, not the source's
	// modtime. This is done last so that it isn't reset by other operations.
	now := time.Now()
	if err := fs.Chtimes(dst, now, now); err != nil {
		return errors.WithContext(err, "set file modtime")
	}
	return nil
}
