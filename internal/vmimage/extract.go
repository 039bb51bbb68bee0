package vmimage

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyengg/extractcode/internal/archive"
	"github.com/nguyengg/extractcode/internal/bundle"
)

func gzipDecode(src io.Reader) (io.Reader, error) {
	return gzip.NewReader(src)
}

// Extract extracts all filesystems found in the VM image at location into
// targetDir. It first tries a single-tree extraction; on failure it falls
// back to listing filesystems and extracting one tarball per non-swap
// partition. With exactly one partition the tarball is extracted at the
// target root; with multiple partitions, each is extracted under its own
// subdirectory named after the partition (slashes replaced with dashes) —
// the corrected behavior per spec §9's VM-image fallback Design Note.
func Extract(ctx context.Context, location, targetDir string) ([]string, error) {
	img, err := FromFile(location)
	if err != nil {
		return nil, err
	}

	var warnings []string

	filename := filepath.Base(location)

	tmpDir, err := os.MkdirTemp("", "extractcode-vmimage-")
	if err != nil {
		return nil, fmt.Errorf("create temp directory error: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	tarball := filepath.Join(tmpDir, filename+".tar.gz")
	if err = img.ExtractImage(ctx, tarball); err == nil {
		return extractTarball(tarball, targetDir)
	}

	warnings = append(warnings, fmt.Sprintf("cannot extract VM image filesystems as a single file tree: %s", err))

	filesystems, lerr := img.ListFilesystems(ctx)
	if lerr != nil {
		return warnings, lerr
	}
	if len(filesystems) == 0 {
		return warnings, err
	}

	if len(filesystems) == 1 {
		tarball = filepath.Join(tmpDir, filename+".tar.gz")
		if err = img.ExtractPartition(ctx, filesystems[0].Partition, tarball); err != nil {
			return warnings, err
		}
		warns, err := extractTarball(tarball, targetDir)
		return append(warnings, warns...), err
	}

	for _, fs := range filesystems {
		baseName := strings.ReplaceAll(fs.Partition, "/", "-")
		partitionTarball := filepath.Join(tmpDir, filename+"-"+baseName+".tar.gz")

		if err = img.ExtractPartition(ctx, fs.Partition, partitionTarball); err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %s", fs.Partition, err))
			continue
		}

		partitionTargetDir := filepath.Join(targetDir, baseName)
		if err = os.MkdirAll(partitionTargetDir, 0o777); err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %s", fs.Partition, err))
			continue
		}

		warns, err := extractTarball(partitionTarball, partitionTargetDir)
		warnings = append(warnings, warns...)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %s", fs.Partition, err))
		}
	}

	return warnings, nil
}

func extractTarball(tarball, targetDir string) ([]string, error) {
	return bundle.Extract(&archive.Tar{
		Decode: gzipDecode,
		Ext:    ".tar.gz",
		MIME:   "application/gzip",
	}, tarball, targetDir)
}
