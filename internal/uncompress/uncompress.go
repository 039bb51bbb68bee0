// Package uncompress implements the single-stream uncompressor handler
// (spec §4.2): gzip, bzip2, xz, and zstd backends that each decode one
// logical stream into one output file.
package uncompress

import (
	"bufio"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
	"github.com/nguyengg/extractcode/internal/xpath"
	"github.com/ulikunitz/xz"
)

// bufferSize matches the 32 MiB read buffer size mandated by spec §4.2.
const bufferSize = 32 * 1024 * 1024

// Decoder opens a decompressing io.Reader over src.
type Decoder func(src io.Reader) (io.Reader, error)

// Decoders maps a file extension (including the leading dot) to its Decoder.
var Decoders = map[string]Decoder{
	".gz": func(src io.Reader) (io.Reader, error) {
		r, err := gzip.NewReader(src)
		if r != nil {
			// disable multistream so Read stops at the end of the first
			// member instead of eagerly probing for a second one, which
			// would otherwise consume the trailing-garbage bytes we need
			// to detect below.
			r.Multistream(false)
		}
		return r, err
	},
	".bz2":  func(src io.Reader) (io.Reader, error) { return bzip2.NewReader(src), nil },
	".xz":   func(src io.Reader) (io.Reader, error) { return xz.NewReader(src) },
	".zst":  func(src io.Reader) (io.Reader, error) { return zstd.NewReader(src) },
	".zstd": func(src io.Reader) (io.Reader, error) { return zstd.NewReader(src) },
}

// Extract decompresses the single-stream file at location into
// targetDir/<basename(location)> + xpath.Suffix, replacing any
// pre-existing entry at that path.
//
// Returns warnings (e.g. trailing-garbage notices); raises on decoder errors.
func Extract(location, targetDir string, decode Decoder) ([]string, error) {
	src, err := os.Open(location)
	if err != nil {
		return nil, fmt.Errorf("open file error: %w", err)
	}
	defer src.Close()

	// gzip.NewReader (and friends) wrap any source that isn't an
	// io.ByteReader in their own internal bufio.Reader, which on a small
	// input slurps the whole file including any trailing garbage on the
	// first read, leaving src's own cursor at EOF. Buffer src ourselves so
	// the trailing-garbage check below peeks the same buffer the decoder
	// actually read from.
	buffered := bufio.NewReader(src)

	dec, err := decode(buffered)
	if err != nil {
		return nil, fmt.Errorf("create decoder error: %w", err)
	}
	if closer, ok := dec.(io.Closer); ok {
		defer closer.Close()
	}

	tmpDir, err := os.MkdirTemp("", "extractcode-uncompress-")
	if err != nil {
		return nil, fmt.Errorf("create temp directory error: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	base := stripCompressionExt(filepath.Base(location))
	tmpFile := filepath.Join(tmpDir, base)

	out, err := os.OpenFile(tmpFile, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o666)
	if err != nil {
		return nil, fmt.Errorf("create temp file error: %w", err)
	}

	buf := make([]byte, bufferSize)
	if _, err = io.CopyBuffer(out, dec, buf); err != nil {
		_ = out.Close()
		return nil, fmt.Errorf("decompress error: %w", err)
	}

	var warnings []string
	if b, werr := buffered.Peek(1); werr == nil && len(b) > 0 {
		warnings = append(warnings, fmt.Sprintf("%s: Trailing garbage found and ignored.", location))
	}

	if err = out.Close(); err != nil {
		return warnings, fmt.Errorf("close temp file error: %w", err)
	}

	target := filepath.Join(targetDir, filepath.Base(location)+xpath.Suffix)
	_ = os.RemoveAll(target)

	if err = os.Rename(tmpFile, target); err != nil {
		return warnings, fmt.Errorf("move decompressed file error: %w", err)
	}

	return warnings, nil
}

// DecoderFor returns the Decoder registered for ext (the dotted extension),
// or nil, false if none is registered.
func DecoderFor(ext string) (Decoder, bool) {
	d, ok := Decoders[ext]
	return d, ok
}

func stripCompressionExt(name string) string {
	ext := filepath.Ext(name)
	if _, ok := Decoders[ext]; ok {
		return name[:len(name)-len(ext)]
	}
	return name
}
