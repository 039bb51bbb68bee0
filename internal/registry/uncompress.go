package registry

import "github.com/nguyengg/extractcode/internal/uncompress"

func init() {
	for sig, ext := range map[string]string{
		"gz":  ".gz",
		"bz2": ".bz2",
		"xz":  ".xz",
		"zst": ".zst",
	} {
		decode, ok := uncompress.DecoderFor(ext)
		if !ok {
			panic("registry: no decoder for " + ext)
		}
		Register(sig, func(decode uncompress.Decoder) Handler {
			return func(location, targetDir string) ([]string, error) {
				return uncompress.Extract(location, targetDir, decode)
			}
		}(decode))
	}
}
