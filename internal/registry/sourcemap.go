package registry

import "github.com/nguyengg/extractcode/internal/sourcemap"

func init() {
	Register("sourcemap", sourcemap.Extract)
}
