package archive

import (
	"io"
	"iter"
	"os"
	"time"

	"github.com/nwaples/rardecode/v2"
)

// Rar implements Archiver for RAR files (read-only; RAR has no open-source
// writer).
type Rar struct{}

var _ Archiver = Rar{}

func (r Rar) Open(src io.Reader) (iter.Seq2[File, error], error) {
	if f, ok := src.(*os.File); ok {
		if rr, err := rardecode.OpenReader(f.Name(), ""); err == nil {
			return fromRarReader(rr), nil
		}
	}

	rr, err := rardecode.NewReader(src, "")
	if err != nil {
		return nil, err
	}

	return fromRarReader(rr), nil
}

// rarReader is the subset of *rardecode.Reader and *rardecode.ReadCloser
// shared by the streaming and file-backed code paths.
type rarReader interface {
	Next() (*rardecode.FileHeader, error)
	Read(p []byte) (int, error)
}

func fromRarReader(r rarReader) iter.Seq2[File, error] {
	closer, _ := r.(io.Closer)

	return func(yield func(File, error) bool) {
		for {
			fh, err := r.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				yield(nil, err)
				closeQuietly(closer)
				return
			}

			if !yield(&rarFile{
				rarFileInfo: rarFileInfo{fh},
				Reader:      r,
			}, nil) {
				closeQuietly(closer)
				return
			}
		}

		if closer != nil {
			if err := closer.Close(); err != nil {
				yield(nil, err)
			}
		}
	}
}

func closeQuietly(c io.Closer) {
	if c != nil {
		_ = c.Close()
	}
}

func (r Rar) ArchiveExt() string {
	return ".rar"
}

func (r Rar) ContentType() string {
	return "application/vnd.rar"
}

type rarFile struct {
	rarFileInfo
	rarReader
}

var _ File = &rarFile{}

func (f *rarFile) FileInfo() os.FileInfo {
	return f
}

func (f *rarFile) Mode() os.FileMode {
	return f.rarFileInfo.FileHeader.Mode()
}

func (f *rarFile) Open() (io.ReadCloser, error) {
	return io.NopCloser(f.rarReader), nil
}

type rarFileInfo struct {
	*rardecode.FileHeader
}

var _ os.FileInfo = &rarFileInfo{}

func (fi *rarFileInfo) Name() string {
	return fi.FileHeader.Name
}

func (fi *rarFileInfo) Size() int64 {
	return fi.FileHeader.UnPackedSize
}

func (fi *rarFileInfo) ModTime() time.Time {
	return fi.FileHeader.ModificationTime
}

func (fi *rarFileInfo) IsDir() bool {
	return fi.FileHeader.IsDir
}

func (fi *rarFileInfo) Sys() any {
	return nil
}
