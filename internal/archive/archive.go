// Package archive is the archive-library collaborator named (but left
// unspecified) by spec §1: a small set of Archiver implementations, one per
// zip/tar/rar/7z family, each exposing entries as an iter.Seq2[File, error].
//
// Writing archives is out of scope for this module (spec §1's non-goals);
// only Open is implemented.
package archive

import (
	"io"
	"iter"
	"os"
)

// Archiver can read the files contained in an archive.
//
// Implementations are not safe for concurrent use.
type Archiver interface {
	// Open produces an iterator returning the files from the archive opened
	// by the given io.Reader. The src io.Reader is consumed by the end of
	// the iterator.
	Open(src io.Reader) (iter.Seq2[File, error], error)

	// ArchiveExt returns the canonical file name extension for this format.
	ArchiveExt() string

	// ContentType returns the MIME content type for this format.
	ContentType() string
}

// File represents one entry in an archive.
//
// The interface intentionally matches that of zip.File for simplicity.
type File interface {
	// Name returns the full name of the file in the archive.
	Name() string
	// FileInfo returns description about the file.
	FileInfo() os.FileInfo
	// Mode returns the file's mode.
	Mode() os.FileMode
	// Open opens the file for reading.
	Open() (io.ReadCloser, error)
}
