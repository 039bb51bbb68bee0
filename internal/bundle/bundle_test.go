package bundle

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/nguyengg/extractcode/internal/archive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestZip(t *testing.T, path string, files map[string]string) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
}

func TestExtractZip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "archive.zip")
	writeTestZip(t, src, map[string]string{
		"a.txt":     "hello",
		"sub/b.txt": "world",
	})

	targetDir := t.TempDir()
	warnings, err := Extract(archive.Zip{}, src, targetDir)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	got, err := os.ReadFile(filepath.Join(targetDir, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))

	got, err = os.ReadFile(filepath.Join(targetDir, "sub", "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "world", string(got))
}

func TestExtractZipNameCollision(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "archive.zip")
	writeTestZip(t, src, map[string]string{
		"a.txt": "lower",
		"A.txt": "upper",
	})

	targetDir := t.TempDir()
	warnings, err := Extract(archive.Zip{}, src, targetDir)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	entries, err := os.ReadDir(targetDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
