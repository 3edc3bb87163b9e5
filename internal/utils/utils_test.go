package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "nested", "file.toml")

	require.NoError(t, WriteFileAtomic(target, []byte("one"), 0644))
	require.NoError(t, WriteFileAtomic(target, []byte("two"), 0644))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))

	entries, err := os.ReadDir(filepath.Dir(target))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestIsRegularFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f")
	require.NoError(t, os.WriteFile(file, nil, 0600))

	assert.True(t, IsRegularFile(file))
	assert.False(t, IsRegularFile(dir))
	assert.False(t, IsRegularFile(filepath.Join(dir, "missing")))
}

func TestRemoveDirIfExists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0700))

	require.NoError(t, RemoveDirIfExists(dir))
	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, RemoveDirIfExists(dir))
}

func TestAppendUnique(t *testing.T) {
	got := AppendUnique([]string{"a", "b"}, "b", "c", "a", "d", "d")
	assert.Equal(t, []string{"a", "b", "c", "d"}, got)

	assert.Equal(t, []string{"x"}, AppendUnique(nil, "x", "x"))
}

func TestWithout(t *testing.T) {
	assert.Equal(t, []string{"a", "c"}, Without([]string{"a", "b", "c", "b"}, []string{"b"}))
	assert.Empty(t, Without([]string{"a"}, []string{"a"}))
	assert.Equal(t, []string{"a"}, Without([]string{"a"}, nil))
}
