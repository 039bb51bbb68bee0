package archive

import (
	"archive/tar"
	"io"
	"iter"
	"os"
)

// Decoder wraps a compressed src stream with a decompressing io.Reader, used
// to layer gzip/bzip2/xz/zstd under the tar format.
type Decoder func(src io.Reader) (io.Reader, error)

// Tar implements Archiver for tar archives, optionally layered under a
// single-stream compression Decoder (tar.gz, tar.bz2, tar.xz, tar.zst).
type Tar struct {
	// Decode, if set, wraps the raw input stream before it reaches the tar
	// reader. Leave nil for plain (uncompressed) tar.
	Decode Decoder

	// Ext is the canonical extension reported by ArchiveExt, e.g. ".tar.gz".
	Ext string

	// MIME is the content type reported by ContentType.
	MIME string
}

var _ Archiver = &Tar{}

func (t *Tar) Open(src io.Reader) (_ iter.Seq2[File, error], err error) {
	r := src
	if t.Decode != nil {
		if r, err = t.Decode(src); err != nil {
			return nil, err
		}
	}

	tr := tar.NewReader(r)

	return func(yield func(File, error) bool) {
		for {
			hdr, err := tr.Next()
			if err == io.EOF {
				return
			}

			if !yield(&tarFile{
				Reader: tr,
				Header: hdr,
			}, err) || err != nil {
				return
			}
		}
	}, nil
}

func (t *Tar) ArchiveExt() string {
	if t.Ext != "" {
		return t.Ext
	}
	return ".tar"
}

func (t *Tar) ContentType() string {
	if t.MIME != "" {
		return t.MIME
	}
	return "application/x-tar"
}

type tarFile struct {
	*tar.Reader
	*tar.Header
}

var _ File = &tarFile{}

func (f *tarFile) Name() string {
	return f.Header.Name
}

func (f *tarFile) FileInfo() os.FileInfo {
	return f.Header.FileInfo()
}

func (f *tarFile) Mode() os.FileMode {
	return os.FileMode(f.Header.Mode)
}

func (f *tarFile) Open() (io.ReadCloser, error) {
	return io.NopCloser(f), nil
}
