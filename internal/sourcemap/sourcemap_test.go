package sourcemap

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractMatchedLengths(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "app.js.map")
	require.NoError(t, os.WriteFile(src, []byte(`{
		"sources": ["a.js", "sub/b.js"],
		"sourcesContent": ["content a", "content b"]
	}`), 0o666))

	targetDir := t.TempDir()
	warnings, err := Extract(src, targetDir)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	got, err := os.ReadFile(filepath.Join(targetDir, "a.js"))
	require.NoError(t, err)
	assert.Equal(t, "content a", string(got))

	got, err = os.ReadFile(filepath.Join(targetDir, "sub", "b.js"))
	require.NoError(t, err)
	assert.Equal(t, "content b", string(got))
}

func TestExtractLengthMismatchUsesPlaceholders(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "app.js.map")
	require.NoError(t, os.WriteFile(src, []byte(`{
		"sources": ["a.js"],
		"sourcesContent": ["content a", "content b", "content c"]
	}`), 0o666))

	targetDir := t.TempDir()
	_, err := Extract(src, targetDir)
	require.NoError(t, err)

	for i, want := range []string{"content a", "content b", "content c"} {
		got, err := os.ReadFile(filepath.Join(targetDir, fmt.Sprintf("source_content%d.txt", i+1)))
		require.NoError(t, err)
		assert.Equal(t, want, string(got))
	}
}

func TestExtractNoSourcesContent(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "app.js.map")
	require.NoError(t, os.WriteFile(src, []byte(`{"sources": ["a.js"]}`), 0o666))

	targetDir := t.TempDir()
	warnings, err := Extract(src, targetDir)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	entries, err := os.ReadDir(targetDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
