package registry

import (
	"context"

	"github.com/nguyengg/extractcode/internal/vmimage"
)

func init() {
	Register("vmimage", func(location, targetDir string) ([]string, error) {
		return vmimage.Extract(context.Background(), location, targetDir)
	})
}
