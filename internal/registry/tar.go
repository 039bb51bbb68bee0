package registry

import (
	"compress/bzip2"
	"compress/gzip"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/nguyengg/extractcode/internal/archive"
	"github.com/nguyengg/extractcode/internal/bundle"
	"github.com/ulikunitz/xz"
)

func init() {
	Register("tar", func(location, targetDir string) ([]string, error) {
		return bundle.Extract(&archive.Tar{}, location, targetDir)
	})
	Register("tar.gz", func(location, targetDir string) ([]string, error) {
		return bundle.Extract(&archive.Tar{
			Decode: func(src io.Reader) (io.Reader, error) { return gzip.NewReader(src) },
			Ext:    ".tar.gz",
			MIME:   "application/gzip",
		}, location, targetDir)
	})
	Register("tar.bz2", func(location, targetDir string) ([]string, error) {
		return bundle.Extract(&archive.Tar{
			Decode: func(src io.Reader) (io.Reader, error) { return bzip2.NewReader(src), nil },
			Ext:    ".tar.bz2",
			MIME:   "application/x-bzip2",
		}, location, targetDir)
	})
	Register("tar.xz", func(location, targetDir string) ([]string, error) {
		return bundle.Extract(&archive.Tar{
			Decode: func(src io.Reader) (io.Reader, error) { return xz.NewReader(src) },
			Ext:    ".tar.xz",
			MIME:   "application/x-xz",
		}, location, targetDir)
	})
	Register("tar.zst", func(location, targetDir string) ([]string, error) {
		return bundle.Extract(&archive.Tar{
			Decode: func(src io.Reader) (io.Reader, error) { return zstd.NewReader(src) },
			Ext:    ".tar.zst",
			MIME:   "application/zstd",
		}, location, targetDir)
	})
}
