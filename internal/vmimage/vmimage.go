// Package vmimage is the external VM-image collaborator (spec §4.8): it
// shells out to guestfish to list and extract filesystems embedded in a
// virtual-machine disk image. Ground: vmimage.py from the Python original,
// reworked into the teacher's os/exec + context.Context idiom.
package vmimage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// GuestfishPathEnvVar overrides discovery of the guestfish tool.
const GuestfishPathEnvVar = "EXTRACTCODE_GUESTFISH_PATH"

var kernelNotReadableMessage = `libguestfs requires the kernel executable to be readable.
This is the case by default on most Linux distributions except on Ubuntu.
Please install extra FS drivers and grant read access to /boot/vmlinuz-*.`

// supportedFormats maps a recognized VM-image extension to its guestfish
// --format token.
var supportedFormats = map[string]string{
	".qcow2":  "qcow2",
	".qcow2c": "qcow2",
	".qcow":   "qcow2",
	".img":    "qcow2",
	".vmdk":   "vmdk",
	".vdi":    "vdi",
}

// Image describes one VM disk image resolved for extraction.
type Image struct {
	Location string
	Format   string
	Command  string
}

// FromFile validates location as a supported VM image on a Linux host with a
// readable kernel and a resolvable guestfish command.
func FromFile(location string) (*Image, error) {
	if runtime.GOOS != "linux" {
		return nil, fmt.Errorf("VM image extraction is only supported on Linux")
	}

	if err := checkKernelReadable(); err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(location))
	format, ok := supportedFormats[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported VM image format: %s", location)
	}

	cmd, err := resolveCommand()
	if err != nil {
		return nil, err
	}

	return &Image{Location: location, Format: format, Command: cmd}, nil
}

func resolveCommand() (string, error) {
	if p := os.Getenv(GuestfishPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	p, err := exec.LookPath("guestfish")
	if err != nil {
		return "", fmt.Errorf("guestfish executable not found: install libguestfs-tools or set %s", GuestfishPathEnvVar)
	}
	return p, nil
}

func checkKernelReadable() error {
	kernels, err := filepath.Glob("/boot/vmlinuz-*")
	if err != nil || len(kernels) == 0 {
		return errors.New(kernelNotReadableMessage)
	}
	for _, k := range kernels {
		if f, err := os.Open(k); err != nil {
			return fmt.Errorf("unable to read kernel at %s.\n%s", k, kernelNotReadableMessage)
		} else {
			_ = f.Close()
		}
	}
	return nil
}

// Filesystem is one (partition device path, filesystem type) pair reported
// by guestfish list-filesystems.
type Filesystem struct {
	Partition string
	FSType    string
}

// skipPartitions names partition substrings excluded from ListFilesystems by
// default (swap partitions carry no extractable file tree).
var skipPartitions = []string{"swap"}

// ListFilesystems runs `guestfish --ro --add <image> run : list-filesystems`
// and parses its "partition: fstype" output lines.
func (img *Image) ListFilesystems(ctx context.Context) ([]Filesystem, error) {
	out, err := img.run(ctx, nil,
		"--ro", "--format="+img.Format, "--add", img.Location,
		"run", ":", "list-filesystems")
	if err != nil {
		return nil, err
	}

	var filesystems []Filesystem
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		partition, fstype, _ := strings.Cut(line, ":")
		partition = strings.TrimSpace(partition)
		fstype = strings.TrimSpace(fstype)

		skip := false
		for _, s := range skipPartitions {
			if strings.Contains(partition, s) {
				skip = true
				break
			}
		}
		if skip {
			continue
		}

		filesystems = append(filesystems, Filesystem{Partition: partition, FSType: fstype})
	}

	return filesystems, nil
}

// ExtractImage runs guestfish's whole-image inspector and writes a gzipped
// tarball of the entire file tree to tarball.
func (img *Image) ExtractImage(ctx context.Context, tarball string) error {
	_, err := img.run(ctx, nil,
		"--ro", "--inspector", "--format="+img.Format, "--add", img.Location,
		"tar-out", "/", tarball, "compress:gzip")
	return err
}

// ExtractPartition mounts partition read-only at "/" and writes a gzipped
// tarball of its contents to tarball.
func (img *Image) ExtractPartition(ctx context.Context, partition, tarball string) error {
	_, err := img.run(ctx, nil,
		"--ro", "--format="+img.Format, "--add", img.Location,
		"run", ":", "mount", partition, "/",
		":", "tar-out", "/", tarball, "compress:gzip")
	return err
}

func (img *Image) run(ctx context.Context, timeout *time.Duration, args ...string) (string, error) {
	if timeout != nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, img.Command, args...)

	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stdout

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("failed to run guestfish to extract VM image: %s %s\noutput: %s",
			img.Command, strings.Join(args, " "), stdout.String())
	}

	return stdout.String(), nil
}
