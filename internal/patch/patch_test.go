package patch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDiff = `diff --git a/foo.txt b/foo.txt
index abc123..def456 100644
--- a/foo.txt
+++ b/foo.txt
@@ -1,2 +1,3 @@ func main
 line one
+line two
 line three
`

func TestParse(t *testing.T) {
	items, err := Parse(strings.NewReader(sampleDiff))
	require.NoError(t, err)
	require.Len(t, items, 1)

	it := items[0]
	assert.Equal(t, "a/foo.txt", it.Source)
	assert.Equal(t, "b/foo.txt", it.Target)
	require.Len(t, it.Hunks, 1)
	assert.Equal(t, 1, it.Hunks[0].StartSrc)
	assert.Equal(t, 3, it.Hunks[0].LinesTgt)
	assert.Equal(t, "func main", it.Hunks[0].Desc)
}

func TestExtractDevNullTarget(t *testing.T) {
	diff := `--- a/deleted.txt
+++ /dev/null
@@ -1,1 +0,0 @@
-gone
`
	dir := t.TempDir()
	src := filepath.Join(dir, "deletion.patch")
	require.NoError(t, os.WriteFile(src, []byte(diff), 0o666))

	targetDir := t.TempDir()
	warnings, err := Extract(src, targetDir)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	entries, err := os.ReadDir(filepath.Join(targetDir, "a"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Name(), "deleted.txt")
}

func TestExtractWritesSuffixedFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "change.patch")
	require.NoError(t, os.WriteFile(src, []byte(sampleDiff), 0o666))

	targetDir := t.TempDir()
	_, err := Extract(src, targetDir)
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(targetDir, "b/foo.txt-extract"))
	require.NoError(t, err)
	assert.Contains(t, string(got), "line two")
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse(strings.NewReader("not a patch file at all\n"))
	assert.Error(t, err)
}
