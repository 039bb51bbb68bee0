package extractcode

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestZip(t *testing.T, path string, files map[string]string) {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range files {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestExtractArchive(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "a.zip")
	writeTestZip(t, archivePath, map[string]string{"a.txt": "hello"})

	var done bool
	for ev, err := range ExtractArchive(context.Background(), archivePath, "", false) {
		require.NoError(t, err)
		if ev.Done {
			done = true
			assert.Empty(t, ev.Errors)
		}
	}

	assert.True(t, done)
	assert.FileExists(t, filepath.Join(archivePath+"-extract", "a.txt"))
}

func TestExtractArchivesDefaultKinds(t *testing.T) {
	dir := t.TempDir()
	writeTestZip(t, filepath.Join(dir, "a.zip"), map[string]string{"a.txt": "hello"})

	var count int
	for ev, err := range ExtractArchives(context.Background(), dir, Options{Kinds: DefaultKinds, Recurse: true}) {
		require.NoError(t, err)
		if ev.Done {
			count++
		}
	}

	assert.Equal(t, 1, count)
}
