package sniff

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nguyengg/extractcode/internal/kind"
	"github.com/stretchr/testify/assert"
)

func TestClassifyByExtension(t *testing.T) {
	tests := map[string]Result{
		"archive.zip":     {kind.Regular, "zip"},
		"library.jar":     {kind.Package, "zip"},
		"bundle.aab":      {kind.SpecialPackage, "zip"},
		"backup.tar.gz":   {kind.RegularNested, "tar.gz"},
		"backup.tgz":      {kind.RegularNested, "tar.gz"},
		"backup.tar":      {kind.RegularNested, "tar"},
		"archive.7z":      {kind.Regular, "7z"},
		"archive.rar":     {kind.Regular, "rar"},
		"file.gz":         {kind.Regular, "gz"},
		"file.xz":         {kind.Regular, "xz"},
		"some.diff":       {kind.Patches, "patch"},
		"some.patch":      {kind.Patches, "patch"},
		"bundle.js.map":   {kind.Docs, "sourcemap"},
		"disk.qcow2":      {kind.FileSystem, "vmimage"},
		"disk.vmdk":       {kind.FileSystem, "vmimage"},
	}

	for name, want := range tests {
		got, ok := Classify(name)
		assert.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}
}

func TestClassifyPatchSubstring(t *testing.T) {
	got, ok := Classify("fix.patch.txt")
	assert.True(t, ok)
	assert.Equal(t, kind.Patches, got.Kind)
}

func TestClassifyUnrecognized(t *testing.T) {
	_, ok := Classify("readme.md")
	assert.False(t, ok)
}

func TestClassifyContentFallback(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "noext")
	// PK\x03\x04 is the zip local file header signature.
	assert.NoError(t, os.WriteFile(p, []byte("PK\x03\x04"+"\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00"), 0o644))

	got, ok := Classify(p)
	assert.True(t, ok)
	assert.Equal(t, "zip", got.Signature)
}
