package vmimage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupportedFormats(t *testing.T) {
	for ext, format := range map[string]string{
		".qcow2": "qcow2",
		".vmdk":  "vmdk",
		".vdi":   "vdi",
		".img":   "qcow2",
	} {
		got, ok := supportedFormats[ext]
		assert.True(t, ok, ext)
		assert.Equal(t, format, got, ext)
	}
}

func TestResolveCommandEnvOverride(t *testing.T) {
	dir := t.TempDir()
	fake := filepath.Join(dir, "fake-guestfish")
	require.NoError(t, os.WriteFile(fake, []byte("#!/bin/sh\n"), 0o755))

	t.Setenv(GuestfishPathEnvVar, fake)

	cmd, err := resolveCommand()
	require.NoError(t, err)
	assert.Equal(t, fake, cmd)
}

func TestResolveCommandEnvOverrideMissingFile(t *testing.T) {
	t.Setenv(GuestfishPathEnvVar, filepath.Join(t.TempDir(), "nope"))

	// Falls through to PATH lookup, which may or may not find a real
	// guestfish; either outcome is acceptable here, we just verify no panic.
	_, _ = resolveCommand()
}
