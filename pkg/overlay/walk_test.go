package overlay

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newLinkedProject creates a source directory on disk that contains a link
// to a directory and a link to a file, both pointing outside the source.
func newLinkedProject(t *testing.T) string {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "real", "sub"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0755))
	require.NoError(t, ioutil.WriteFile(filepath.Join(root, "real", "sub", "file.txt"), []byte("deep"), 0644))
	require.NoError(t, ioutil.WriteFile(filepath.Join(root, "real", "file"), []byte("v1"), 0644))
	require.NoError(t, os.Symlink(filepath.Join(root, "real", "sub"), filepath.Join(root, "src", "linkdir")))
	require.NoError(t, os.Symlink(filepath.Join(root, "real", "file"), filepath.Join(root, "src", "linkfile")))
	return root
}

func TestMapDirectoryFollowsSymlinks(t *testing.T) {
	root := newLinkedProject(t)

	paths, err := MapDirectory(afero.NewOsFs(), root, "src", Filter{})
	assert.NoError(t, err)
	assert.Equal(t, []string{"", "linkdir", "linkdir/file.txt", "linkfile"}, sortedKeys(paths))
	assert.True(t, paths["linkdir"].Metadata.IsDir)
	assert.True(t, paths["linkdir/file.txt"].Metadata.IsFile)
	assert.True(t, paths["linkfile"].Metadata.IsFile)

	realInfo, err := os.Stat(filepath.Join(root, "real", "file"))
	require.NoError(t, err)
	assert.True(t, realInfo.ModTime().Equal(paths["linkfile"].Metadata.ModTime))
}

func TestMergeAndUpdateDirFollowsSymlinks(t *testing.T) {
	root := newLinkedProject(t)
	fs := afero.NewOsFs()
	opts := Options{RootDir: root}

	var logs logRecorder
	updated, err := MergeAndUpdateDir(fs, []string{"src"}, "out", opts, logs.logger())
	assert.NoError(t, err)
	assert.True(t, updated)
	assert.Equal(t, []string{
		"create out",
		"create out/linkdir",
		"copy src/linkdir/file.txt -> out/linkdir/file.txt",
		"copy src/linkfile -> out/linkfile",
	}, logs.msgs)

	// The links are replaced by copies of what they point to.
	fi, err := os.Lstat(filepath.Join(root, "out", "linkdir"))
	require.NoError(t, err)
	assert.True(t, fi.IsDir())
	assertFileContents(t, filepath.Join(root, "out", "linkdir", "file.txt"), "deep")
	assertFileContents(t, filepath.Join(root, "out", "linkfile"), "v1")

	updated, err = MergeAndUpdateDir(fs, []string{"src"}, "out", opts, nil)
	assert.NoError(t, err)
	assert.False(t, updated)

	// Changing the file behind the link is picked up by the next sync.
	realFile := filepath.Join(root, "real", "file")
	require.NoError(t, ioutil.WriteFile(realFile, []byte("v2"), 0644))
	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(realFile, future, future))

	logs = logRecorder{}
	updated, err = MergeAndUpdateDir(fs, []string{"src"}, "out", opts, logs.logger())
	assert.NoError(t, err)
	assert.True(t, updated)
	assert.Equal(t, []string{"copy src/linkfile -> out/linkfile"}, logs.msgs)
	assertFileContents(t, filepath.Join(root, "out", "linkfile"), "v2")
}

func TestCopyPathFollowsSymlinks(t *testing.T) {
	root := newLinkedProject(t)
	fs := afero.NewOsFs()

	assert.NoError(t, copyPath(fs, filepath.Join(root, "src"), filepath.Join(root, "copy")))

	fi, err := os.Lstat(filepath.Join(root, "copy", "linkdir"))
	require.NoError(t, err)
	assert.True(t, fi.IsDir())
	assertFileContents(t, filepath.Join(root, "copy", "linkdir", "file.txt"), "deep")
	assertFileContents(t, filepath.Join(root, "copy", "linkfile"), "v1")
}

func TestWalkOrder(t *testing.T) {
	fs, err := newMockFs([]string{"/root/b", "/root/a/c"}, []mockFile{{path: "/root/a/file"}})
	require.NoError(t, err)

	fi, err := fs.Stat("/root")
	require.NoError(t, err)

	var visited []string
	err = walk(fs, "/root", fi, func(path string, _ os.FileInfo) error {
		visited = append(visited, path)
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, []string{"/root", "/root/a", "/root/a/c", "/root/a/file", "/root/b"}, visited)
}

func assertFileContents(t *testing.T, path, exp string) {
	contents, err := ioutil.ReadFile(path)
	if assert.NoError(t, err) {
		assert.Equal(t, exp, string(contents))
	}
}
