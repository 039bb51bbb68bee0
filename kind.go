package extractcode

import "github.com/nguyengg/extractcode/internal/kind"

// Kind is a coarse classification of an input file, used to decide which
// files are eligible for extraction.
type Kind = kind.Kind

const (
	Docs           = kind.Docs
	Regular        = kind.Regular
	RegularNested  = kind.RegularNested
	Package        = kind.Package
	FileSystem     = kind.FileSystem
	Patches        = kind.Patches
	SpecialPackage = kind.SpecialPackage
)

// KindSet is an unordered collection of Kind used to filter eligible files.
type KindSet = kind.Set

// NewKindSet builds a KindSet from the given kinds.
func NewKindSet(kinds ...Kind) KindSet {
	return kind.NewSet(kinds...)
}

// DefaultKinds is the default kind-set: regular archives, nested archives,
// and packages.
var DefaultKinds = kind.Default

// AllKinds is the full kind-set, including filesystem images, documentation,
// patches, and special packages.
var AllKinds = kind.All
