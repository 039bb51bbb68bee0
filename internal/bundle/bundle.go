// Package bundle is the thin wrapper over the archive-library collaborator
// (spec §4.5): given an internal/archive.Archiver and a source file, it
// writes every entry into a target directory, sanitizing entry paths and
// resolving case-insensitive name collisions as it goes.
//
// It serves every zip-family container named in spec §1 (zip, jar, apk,
// whl, egg, nupkg) as well as the tar, rar, and 7z families, since all of
// them reduce to "iterate archive.File entries, write each one."
package bundle

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nguyengg/extractcode/internal/archive"
	"github.com/nguyengg/extractcode/internal/xpath"
)

// Extract opens location with archiver and writes every entry into
// targetDir. Directory entries create directories; file entries create
// parent directories as needed. Entries whose sanitized path collides,
// case-insensitively, with an already-written sibling are disambiguated via
// xpath.NewName.
//
// Returns a warning per entry that could not be read or written (spec's
// WarningIncorrectEntry); raises only when the file or the archive itself
// cannot be opened.
func Extract(a archive.Archiver, location, targetDir string) ([]string, error) {
	f, err := os.Open(location)
	if err != nil {
		return nil, fmt.Errorf("open file error: %w", err)
	}
	defer f.Close()

	entries, err := a.Open(f)
	if err != nil {
		return nil, fmt.Errorf("open archive error: %w", err)
	}

	var warnings []string

	for entry, err := range entries {
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: incorrect entry: %s", location, err))
			continue
		}

		if writeErr := writeEntry(entry, targetDir); writeErr != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %s", entry.Name(), writeErr))
		}
	}

	return warnings, nil
}

func writeEntry(entry archive.File, targetDir string) error {
	rel := xpath.SafePath(entry.Name(), true)
	dest := filepath.Join(targetDir, filepath.FromSlash(rel))

	fi := entry.FileInfo()
	isDir := fi != nil && fi.IsDir()

	unique, nameErr := xpath.NewName(dest, isDir)
	if nameErr != nil {
		return nameErr
	}
	dest = unique

	if isDir {
		return os.MkdirAll(dest, 0o777)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o777); err != nil {
		return fmt.Errorf("create parent directory error: %w", err)
	}

	rc, err := entry.Open()
	if err != nil {
		return fmt.Errorf("open entry error: %w", err)
	}
	defer rc.Close()

	mode := entry.Mode()
	if mode == 0 {
		mode = 0o666
	}

	out, err := os.OpenFile(dest, os.O_RDWR|os.O_CREATE|os.O_TRUNC, mode.Perm()|0o200)
	if err != nil {
		return fmt.Errorf("create file error: %w", err)
	}
	defer out.Close()

	if _, err = io.Copy(out, rc); err != nil {
		return fmt.Errorf("write file error: %w", err)
	}

	return nil
}
