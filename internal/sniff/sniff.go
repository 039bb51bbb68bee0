// Package sniff stands in for the "typing" collaborator that spec §1 leaves
// external: it classifies a file into a Kind and a dispatch signature by
// extension, falling back to content sniffing via gabriel-vasile/mimetype
// when the extension alone is ambiguous.
package sniff

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/nguyengg/extractcode/internal/kind"
)

// Result is the classification of one file.
type Result struct {
	Kind      kind.Kind
	Signature string
}

// byExtension maps a (possibly multi-part) lowercase extension to its Result.
// Longer extensions are checked first so "tar.gz" wins over "gz".
var byExtension = map[string]Result{
	".tar.gz":   {kind.RegularNested, "tar.gz"},
	".tgz":      {kind.RegularNested, "tar.gz"},
	".tar.bz2":  {kind.RegularNested, "tar.bz2"},
	".tbz2":     {kind.RegularNested, "tar.bz2"},
	".tar.xz":   {kind.RegularNested, "tar.xz"},
	".txz":      {kind.RegularNested, "tar.xz"},
	".tar.zst":  {kind.RegularNested, "tar.zst"},
	".tzst":     {kind.RegularNested, "tar.zst"},
	".tar":      {kind.RegularNested, "tar"},
	".zip":      {kind.Regular, "zip"},
	".jar":      {kind.Package, "zip"},
	".war":      {kind.Package, "zip"},
	".whl":      {kind.Package, "zip"},
	".egg":      {kind.Package, "zip"},
	".nupkg":    {kind.Package, "zip"},
	".apk":      {kind.Package, "zip"},
	".aab":      {kind.SpecialPackage, "zip"},
	".7z":       {kind.Regular, "7z"},
	".rar":      {kind.Regular, "rar"},
	".gz":       {kind.Regular, "gz"},
	".bz2":      {kind.Regular, "bz2"},
	".xz":       {kind.Regular, "xz"},
	".zst":      {kind.Regular, "zst"},
	".diff":     {kind.Patches, "patch"},
	".patch":    {kind.Patches, "patch"},
	".map":      {kind.Docs, "sourcemap"},
	".qcow2":    {kind.FileSystem, "vmimage"},
	".qcow2c":   {kind.FileSystem, "vmimage"},
	".qcow":     {kind.FileSystem, "vmimage"},
	".img":      {kind.FileSystem, "vmimage"},
	".vmdk":     {kind.FileSystem, "vmimage"},
	".vdi":      {kind.FileSystem, "vmimage"},
}

// multiPartExts lists the multi-dot extensions that must be matched before
// falling back to the single trailing extension.
var multiPartExts = []string{
	".tar.gz", ".tar.bz2", ".tar.xz", ".tar.zst",
}

// Classify determines the Kind and dispatch signature of the file at
// location. ok is false when no handler is registered for this file.
func Classify(location string) (Result, bool) {
	lower := strings.ToLower(location)

	for _, ext := range multiPartExts {
		if strings.HasSuffix(lower, ext) {
			return byExtension[ext], true
		}
	}

	ext := strings.ToLower(filepath.Ext(location))

	if r, ok := byExtension[ext]; ok {
		return r, true
	}

	// ".diff"/".patch" anywhere in the name counts per spec §4.3's is_patch,
	// not just as the trailing extension, but only once the real trailing
	// extension (checked above) fails to resolve to a known format - a file
	// like "security.patch.zip" is still a zip.
	if strings.Contains(lower, ".diff") || strings.Contains(lower, ".patch") {
		return Result{kind.Patches, "patch"}, true
	}

	return sniffContent(location)
}

// sniffContent falls back to magic-byte detection when the extension is
// unrecognized or missing, e.g. an archive renamed without its extension.
func sniffContent(location string) (Result, bool) {
	mtype, err := mimetype.DetectFile(location)
	if err != nil {
		return Result{}, false
	}

	for m := mtype; m != nil; m = m.Parent() {
		switch m.Extension() {
		case ".zip":
			return Result{kind.Regular, "zip"}, true
		case ".tar":
			return Result{kind.RegularNested, "tar"}, true
		case ".gz":
			return Result{kind.Regular, "gz"}, true
		case ".bz2":
			return Result{kind.Regular, "bz2"}, true
		case ".7z":
			return Result{kind.Regular, "7z"}, true
		case ".rar":
			return Result{kind.Regular, "rar"}, true
		}
	}

	return Result{}, false
}
