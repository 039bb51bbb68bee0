// Package extractcode recursively extracts archives (zip- and tar-family,
// single-stream compressed files, patches, source maps, VM disk images, and
// application bundles) found in a directory tree, one sibling directory
// `<name>-extract` per archive.
package extractcode

import (
	"context"
	"iter"
	"log"
	"path/filepath"

	"github.com/nguyengg/extractcode/internal/driver"
	"github.com/nguyengg/extractcode/internal/event"
)

// ExtractEvent is emitted twice per archive the engine decides to extract: a
// start event (Done=false) followed by a finish event (Done=true) carrying
// any warnings and errors observed.
type ExtractEvent = event.ExtractEvent

// Options configures ExtractArchives.
type Options struct {
	// Kinds restricts extraction to archives classified into one of these
	// kinds. Zero value means DefaultKinds.
	Kinds KindSet
	// Recurse extracts nested archives found inside extraction results.
	// The zero value (false) does not recurse; ExtractArchivesDefault and
	// the CLI set it to true unless "--shallow" is given.
	Recurse bool
	// ReplaceOriginals, once the walk is done, deletes each archive whose
	// own extraction was clean (warning- and error-free) and moves its
	// extraction directory into the archive's former path. Archives with
	// warnings or errors are left in place.
	ReplaceOriginals bool
	// IgnorePatterns are doublestar glob patterns matched against both
	// the file's base name and its full path; matches are never
	// extracted.
	IgnorePatterns []string
	// Verbose logs a line as an archive's extraction starts, at most one
	// line per second.
	Verbose bool
	// Logger receives the Verbose progress lines. A default logger writing
	// to os.Stderr is used when nil.
	Logger *log.Logger
}

func (o Options) toDriverOptions() driver.Options {
	kinds := o.Kinds
	if kinds == nil {
		kinds = DefaultKinds
	}

	return driver.Options{
		Kinds:            kinds,
		Recurse:          o.Recurse,
		ReplaceOriginals: o.ReplaceOriginals,
		IgnorePatterns:   o.IgnorePatterns,
		Verbose:          o.Verbose,
		Logger:           o.Logger,
	}
}

// ExtractArchives walks location and extracts every eligible archive found,
// recursively by default. This is the `extract_archives` operation of spec
// §6.
func ExtractArchives(ctx context.Context, location string, opts Options) iter.Seq2[ExtractEvent, error] {
	return driver.Walk(ctx, location, opts.toDriverOptions())
}

// ExtractArchivesDefault calls ExtractArchives with recurse=true,
// replace_originals=false, no ignore patterns, and DefaultKinds unless
// allFormats is set, matching the CLI's un-flagged default.
func ExtractArchivesDefault(ctx context.Context, location string, allFormats bool) iter.Seq2[ExtractEvent, error] {
	kinds := DefaultKinds
	if allFormats {
		kinds = AllKinds
	}
	return ExtractArchives(ctx, location, Options{Kinds: kinds, Recurse: true})
}

// ExtractArchive extracts the single archive at location into target, with
// no recursion, using AllKinds. An empty target defaults to location's
// extraction path (location + "-extract"). This is the `extract_archive`
// operation of spec §6.
func ExtractArchive(ctx context.Context, location, target string, verbose bool) iter.Seq2[ExtractEvent, error] {
	var logger *log.Logger
	if verbose {
		logger = log.Default()
	}
	if abs, err := filepath.Abs(location); err == nil {
		location = abs
	}
	if target != "" {
		if abs, err := filepath.Abs(target); err == nil {
			target = abs
		}
	}
	return driver.ExtractFile(ctx, location, target, logger)
}
