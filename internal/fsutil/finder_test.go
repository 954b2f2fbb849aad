package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, dir, rel string) {
	t.Helper()
	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestFindSourceFiles(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "src/a.py")
	write(t, dir, "src/deep/b.js")
	write(t, dir, "src/readme.md")
	write(t, dir, "src/node_modules/dep.js")
	write(t, dir, "other/c.py")

	files, err := FindSourceFiles(dir, []string{"src"}, []string{".py", ".js"}, DefaultIgnoreDirs)
	require.NoError(t, err)
	assert.Equal(t, []string{"src/a.py", "src/deep/b.js"}, files)
}

func TestFindSourceFilesMultipleRootsSortedAndDeduped(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "b/z.py")
	write(t, dir, "a/a.py")

	files, err := FindSourceFiles(dir, []string{"b", "a", "b"}, []string{".py"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a/a.py", "b/z.py"}, files)
}

func TestFindSourceFilesMissingRootIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	files, err := FindSourceFiles(dir, []string{"does-not-exist"}, []string{".py"}, nil)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestFindSourceFilesNoExtensions(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "a.py")
	files, err := FindSourceFiles(dir, []string{"."}, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, files)
}
