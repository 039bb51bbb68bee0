package archive

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZipOpenFromReader(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("hello.txt")
	require.NoError(t, err)
	_, err = f.Write([]byte("hello world"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	entries, err := Zip{}.Open(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	var names []string
	for entry, err := range entries {
		require.NoError(t, err)
		names = append(names, entry.Name())

		rc, err := entry.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, "hello world", string(content))
		rc.Close()
	}

	assert.Equal(t, []string{"hello.txt"}, names)
	assert.Equal(t, ".zip", Zip{}.ArchiveExt())
}

func TestTarOpenUncompressed(t *testing.T) {
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	content := []byte("line one\n")
	require.NoError(t, tw.WriteHeader(&tar.Header{Name: "a.txt", Size: int64(len(content)), Mode: 0o644}))
	_, err := tw.Write(content)
	require.NoError(t, err)
	require.NoError(t, tw.Close())

	tarArchive := &Tar{}
	entries, err := tarArchive.Open(&buf)
	require.NoError(t, err)

	var count int
	for entry, err := range entries {
		require.NoError(t, err)
		count++
		assert.Equal(t, "a.txt", entry.Name())
	}
	assert.Equal(t, 1, count)
	assert.Equal(t, ".tar", tarArchive.ArchiveExt())
}
