// Package xpath implements the path utilities shared by every extraction
// handler: extraction-path bookkeeping, case-insensitive name disambiguation,
// and safe relative-path normalization.
package xpath

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Suffix is the literal string appended to an archive's own path to produce
// its extraction directory.
const Suffix = "-extract"

// GetExtractionPath strips trailing path separators from p then appends Suffix.
func GetExtractionPath(p string) string {
	return strings.TrimRight(p, `/\`) + Suffix
}

// IsExtractionPath reports whether p (after stripping trailing separators) ends with Suffix.
func IsExtractionPath(p string) bool {
	return strings.HasSuffix(strings.TrimRight(p, `/\`), Suffix)
}

// IsExtracted reports whether a filesystem entry already exists at GetExtractionPath(p).
func IsExtracted(p string) bool {
	_, err := os.Stat(GetExtractionPath(p))
	return err == nil
}

// NewName returns a fresh path in the parent directory of location that does
// not collide, case-insensitively, with any existing sibling.
//
// location must be non-empty after trailing-separator strip; callers are
// expected to have validated this already.
func NewName(location string, isDir bool) (string, error) {
	location = strings.TrimRight(location, `/\`)

	dir := filepath.Dir(location)
	name := filepath.Base(location)

	if name == "." || name == ".." {
		name = "_"
	}

	siblings, err := siblingSet(dir)
	if err != nil {
		return "", err
	}

	if _, collides := siblings[strings.ToLower(name)]; !collides {
		return filepath.Join(dir, name), nil
	}

	var base, ext string
	if isDir {
		base = name
	} else {
		base, ext = splitFirstDot(name)
	}

	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s_%d%s", base, n, ext)
		if _, collides := siblings[strings.ToLower(candidate)]; !collides {
			return filepath.Join(dir, candidate), nil
		}
	}
}

// splitFirstDot splits name into a base and extension on the FIRST '.', so
// that "archive.tar.gz" becomes ("archive", ".tar.gz") rather than stdlib's
// last-dot behaviour.
func splitFirstDot(name string) (base, ext string) {
	if i := strings.IndexByte(name, '.'); i > 0 {
		return name[:i], name[i:]
	}
	return name, ""
}

func siblingSet(dir string) (map[string]struct{}, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]struct{}{}, nil
		}
		return nil, fmt.Errorf("list directory %q error: %w", dir, err)
	}

	set := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		set[strings.ToLower(e.Name())] = struct{}{}
	}
	return set, nil
}

// SafePath normalizes a user-supplied path fragment (usually taken from an
// archive entry or a patch/source-map path) to a relative, POSIX-style path
// with no leading slash and no ".." segments. When preserveSpaces is false,
// runs of whitespace are collapsed to a single underscore.
func SafePath(p string, preserveSpaces bool) string {
	p = filepath.ToSlash(p)
	p = strings.ReplaceAll(p, `\`, "/")

	segs := strings.Split(p, "/")
	cleaned := make([]string, 0, len(segs))
	for _, seg := range segs {
		switch seg {
		case "", ".":
			continue
		case "..":
			// drop traversal components entirely rather than erroring: the
			// resulting path is still anchored under target_dir.
			continue
		default:
			if !preserveSpaces {
				seg = strings.Join(strings.Fields(seg), "_")
			}
			cleaned = append(cleaned, seg)
		}
	}

	if len(cleaned) == 0 {
		return "_"
	}

	return path.Join(cleaned...)
}

// RemoveBackslashesAndDotDots walks dir and, for any entry whose name
// contains '\' or "..", rewrites the name by treating backslashes as path
// separators and dropping ".." segments (see SafePath), creating
// intermediate directories and moving the file to the corrected location.
//
// Per-file errors are collected, not raised; the walk continues.
func RemoveBackslashesAndDotDots(dir string) error {
	var result *multierror.Error

	err := filepath.WalkDir(dir, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			result = multierror.Append(result, err)
			return nil
		}
		if d.IsDir() {
			return nil
		}

		name := d.Name()
		if !strings.ContainsAny(name, `\`) && !strings.Contains(name, "..") {
			return nil
		}

		rel := SafePath(name, true)
		newPath := filepath.Join(filepath.Dir(p), filepath.FromSlash(rel))
		if newPath == p {
			return nil
		}

		if err := os.MkdirAll(filepath.Dir(newPath), 0o777); err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", p, err))
			return nil
		}
		if err := os.Rename(p, newPath); err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", p, err))
		}

		return nil
	})
	if err != nil {
		result = multierror.Append(result, err)
	}

	return result.ErrorOrNil()
}
