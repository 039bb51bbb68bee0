// Package kind defines the Kind enumeration (spec §3) and its presets.
package kind

// Kind is a coarse classification of an input file, used to decide which
// files are eligible for extraction.
type Kind string

const (
	Docs            Kind = "docs"
	Regular         Kind = "regular"
	RegularNested   Kind = "regular_nested"
	Package         Kind = "package"
	FileSystem      Kind = "file_system"
	Patches         Kind = "patches"
	SpecialPackage  Kind = "special_package"
)

// Set is an unordered collection of Kind used to filter eligible files.
type Set map[Kind]struct{}

// NewSet builds a Set from the given kinds.
func NewSet(kinds ...Kind) Set {
	s := make(Set, len(kinds))
	for _, k := range kinds {
		s[k] = struct{}{}
	}
	return s
}

// Has reports whether k is a member of s.
func (s Set) Has(k Kind) bool {
	_, ok := s[k]
	return ok
}

// Default is the default kind-set: regular archives, nested archives, and
// packages, excluding filesystem images, documentation, patches, and special
// packages.
var Default = NewSet(Regular, RegularNested, Package)

// All is the full kind-set.
var All = NewSet(Regular, RegularNested, Package, FileSystem, Docs, Patches, SpecialPackage)
