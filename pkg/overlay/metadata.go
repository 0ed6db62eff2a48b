package overlay

import (
	"os"
	"time"

	"github.com/spf13/afero"

	"github.com/sidkik/overlaysync/pkg/errors"
)

// FileMetadata is the subset of a stat result that the sync decisions depend
// on. A nil *FileMetadata means that the path does not exist.
type FileMetadata struct {
	IsDir   bool
	IsFile  bool
	ModTime time.Time
}

func newFileMetadata(fi os.FileInfo) *FileMetadata {
	return &FileMetadata{
		IsDir:   fi.IsDir(),
		IsFile:  fi.Mode().IsRegular(),
		ModTime: fi.ModTime(),
	}
}

// Stat returns the metadata for path, or nil if the path doesn't exist. Any
// other failure, such as a permission error, is returned.
func Stat(fs afero.Fs, path string) (*FileMetadata, error) {
	fi, err := fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.WithContext(err, "stat")
	}
	return newFileMetadata(fi), nil
}
