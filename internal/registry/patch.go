package registry

import "github.com/nguyengg/extractcode/internal/patch"

func init() {
	Register("patch", patch.Extract)
}
