package xpath

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetExtractionPath(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"plain file", "archive.zip", "archive.zip-extract"},
		{"trailing slash", "dir/", "dir-extract"},
		{"trailing backslash", `dir\`, "dir-extract"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, GetExtractionPath(tc.in))
		})
	}
}

func TestIsExtractionPath(t *testing.T) {
	assert.True(t, IsExtractionPath("archive.zip-extract"))
	assert.True(t, IsExtractionPath("archive.zip-extract/"))
	assert.False(t, IsExtractionPath("archive.zip"))
	assert.True(t, IsExtractionPath(GetExtractionPath("p")))
}

func TestNewName(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), nil, 0o666))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "A_1.txt"), nil, 0o666))

	got, err := NewName(filepath.Join(dir, "a.txt"), false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "a_2.txt"), got)

	// no collision: unchanged.
	got, err = NewName(filepath.Join(dir, "b.txt"), false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "b.txt"), got)

	// dot and dotdot map to underscore.
	got, err = NewName(dir+string(filepath.Separator)+".", true)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "_"), got)

	got, err = NewName(dir+string(filepath.Separator)+"..", true)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "_"), got)
}

func TestNewNameTarGz(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "archive.tar.gz"), nil, 0o666))

	got, err := NewName(filepath.Join(dir, "archive.tar.gz"), false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "archive_1.tar.gz"), got)
}

func TestNewNameIdempotent(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), nil, 0o666))

	first, err := NewName(filepath.Join(dir, "a.txt"), false)
	require.NoError(t, err)

	require.NoFileExists(t, first)

	second, err := NewName(first, false)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSafePath(t *testing.T) {
	assert.Equal(t, "a/b/c", SafePath("/a/../b/./c", true))
	assert.Equal(t, "a/b_c", SafePath("a/b c", false))
	assert.Equal(t, "a/b c", SafePath("a/b c", true))
	assert.Equal(t, "_", SafePath("../..", true))
}
