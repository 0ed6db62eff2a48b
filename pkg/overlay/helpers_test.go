package overlay

import (
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/afero"
)

var (
	oldTime = time.Date(2019, 11, 10, 8, 0, 0, 0, time.UTC)
	newTime = oldTime.Add(time.Hour)
)

type mockFile struct {
	path     string
	contents string
	mode     os.FileMode
	modTime  time.Time
}

func (f mockFile) writeToFs(fs afero.Fs) error {
	if f.mode == 0 {
		f.mode = 0644
	}
	if f.modTime.IsZero() {
		f.modTime = oldTime
	}

	if err := fs.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return err
	}
	if err := afero.WriteFile(fs, f.path, []byte(f.contents), f.mode); err != nil {
		return err
	}
	return fs.Chtimes(f.path, f.modTime, f.modTime)
}

// newMockFs creates a filesystem containing the given directories and files.
func newMockFs(dirs []string, files []mockFile) (afero.Fs, error) {
	fs := afero.NewMemMapFs()
	for _, dir := range dirs {
		if err := fs.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	for _, f := range files {
		if err := f.writeToFs(fs); err != nil {
			return nil, err
		}
	}
	return fs, nil
}

type logRecorder struct {
	msgs []string
}

func (r *logRecorder) logger() Logger {
	return func(msg string) {
		r.msgs = append(r.msgs, msg)
	}
}

func sortedKeys(paths PathMap) []string {
	var keys []string
	for key := range paths {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func fileStats(modTime time.Time) *FileMetadata {
	return &FileMetadata{IsFile: true, ModTime: modTime}
}

func dirStats() *FileMetadata {
	return &FileMetadata{IsDir: true, ModTime: oldTime}
}

// statErrFs fails Stat calls for `path`, or every Stat call if `path` is
// empty.
type statErrFs struct {
	afero.Fs
	path string
	err  error
}

func (fs statErrFs) Stat(name string) (os.FileInfo, error) {
	if fs.path == "" || fs.path == name {
		return nil, fs.err
	}
	return fs.Fs.Stat(name)
}

// openErrFs fails Open calls for `path`, which makes listing that directory
// fail while Stat still succeeds.
type openErrFs struct {
	afero.Fs
	path string
	err  error
}

func (fs openErrFs) Open(name string) (afero.File, error) {
	if fs.path == name {
		return nil, fs.err
	}
	return fs.Fs.Open(name)
}
