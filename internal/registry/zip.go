package registry

import (
	"github.com/nguyengg/extractcode/internal/archive"
	"github.com/nguyengg/extractcode/internal/bundle"
)

func init() {
	Register("zip", func(location, targetDir string) ([]string, error) {
		return bundle.Extract(archive.Zip{}, location, targetDir)
	})
	Register("7z", func(location, targetDir string) ([]string, error) {
		return bundle.Extract(archive.SevenZip{}, location, targetDir)
	})
	Register("rar", func(location, targetDir string) ([]string, error) {
		return bundle.Extract(archive.Rar{}, location, targetDir)
	})
}
