package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupKnownSignatures(t *testing.T) {
	for _, signature := range []string{"zip", "7z", "rar", "tar", "tar.gz", "tar.bz2", "tar.xz", "tar.zst", "gz", "bz2", "xz", "zst", "patch", "sourcemap", "vmimage"} {
		_, ok := Lookup(signature)
		assert.True(t, ok, signature)
	}
}

func TestLookupUnknownSignature(t *testing.T) {
	_, ok := Lookup("does-not-exist")
	assert.False(t, ok)
}

func TestRegisterDuplicatePanics(t *testing.T) {
	assert.Panics(t, func() {
		Register("zip", func(string, string) ([]string, error) { return nil, nil })
	})
}
