package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"iter"
	"os"

	"github.com/krolaw/zipstream"
)

// Zip implements Archiver for ZIP-family containers, including the
// application-bundle variants that are plain zip files in disguise (jar,
// apk, aab, whl, egg, nupkg).
type Zip struct{}

var _ Archiver = Zip{}

func (z Zip) Open(src io.Reader) (iter.Seq2[File, error], error) {
	if f, ok := src.(*os.File); ok {
		return fromZipFile(f)
	}

	return fromZipReader(src)
}

// fromZipReader handles archives that cannot be seeked, streaming entries
// one at a time via zipstream. Central-directory-only features (e.g. data
// descriptors written after the event) are handled transparently by
// zipstream; this path is the fallback used when the source is not an
// *os.File.
func fromZipReader(src io.Reader) (iter.Seq2[File, error], error) {
	zr := zipstream.NewReader(src)

	return func(yield func(File, error) bool) {
		for {
			fh, err := zr.Next()
			if err == io.EOF {
				return
			}

			if !yield(&zipFile{
				FileHeader: fh,
				open: func() (io.ReadCloser, error) {
					return io.NopCloser(zr), nil
				},
			}, err) || err != nil {
				return
			}
		}
	}, nil
}

func fromZipFile(src *os.File) (iter.Seq2[File, error], error) {
	fi, err := src.Stat()
	if err != nil {
		return nil, fmt.Errorf(`stat file "%s" error: %w`, src.Name(), err)
	}

	zr, err := zip.NewReader(src, fi.Size())
	if err != nil {
		return nil, fmt.Errorf(`open zip file "%s" error: %w`, src.Name(), err)
	}

	return func(yield func(File, error) bool) {
		for _, zf := range zr.File {
			if !yield(&zipFile{
				FileHeader: &zf.FileHeader,
				open:       zf.Open,
			}, nil) {
				return
			}
		}
	}, nil
}

func (z Zip) ArchiveExt() string {
	return ".zip"
}

func (z Zip) ContentType() string {
	return "application/zip"
}

type zipFile struct {
	*zip.FileHeader
	open func() (io.ReadCloser, error)
}

var _ File = &zipFile{}

func (f *zipFile) Name() string {
	return f.FileHeader.Name
}

func (f *zipFile) FileInfo() os.FileInfo {
	return f.FileHeader.FileInfo()
}

func (f *zipFile) Mode() os.FileMode {
	return f.FileHeader.Mode()
}

func (f *zipFile) Open() (io.ReadCloser, error) {
	return f.open()
}
