// Package patch implements the patch decomposer (spec §4.3): it parses a
// unified-diff file and materializes one virtual output file per patched
// target, named with xpath.Suffix so the recursion driver does not
// re-descend into it.
//
// No unified-diff parser exists among the example libraries available to
// this module (only a diff *generator*, pmezard/go-difflib, is present via
// testify's transitive closure); the parser below is therefore hand-rolled
// against the standard library, matching the subset of unified-diff syntax
// produced by `diff -u` and `git diff` that the Python original
// (pythonpatch.fromfile) also targets.
package patch

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nguyengg/extractcode/internal/xpath"
)

// Hunk is one `@@ -startsrc,linessrc +starttgt,linestgt @@ desc` block.
type Hunk struct {
	StartSrc, LinesSrc int
	StartTgt, LinesTgt int
	Desc               string
	Lines              []string
}

// Item is one per-file patch segment: a source path, a target path, any
// preceding header lines (e.g. "diff --git", "index ..."), and its hunks.
type Item struct {
	Source, Target string
	Header         []string
	Hunks          []Hunk
}

// Parse reads a unified-diff document and returns its Items in order.
func Parse(r io.Reader) ([]Item, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	var items []Item
	var header []string
	var cur *Item
	var hunk *Hunk

	flushHunk := func() {
		if cur != nil && hunk != nil {
			cur.Hunks = append(cur.Hunks, *hunk)
			hunk = nil
		}
	}
	flushItem := func() {
		flushHunk()
		if cur != nil {
			items = append(items, *cur)
			cur = nil
		}
	}

	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case strings.HasPrefix(line, "--- "):
			flushItem()
			cur = &Item{
				Source: strings.TrimSpace(strings.Fields(line[4:])[0]),
				Header: header,
			}
			header = nil

		case strings.HasPrefix(line, "+++ ") && cur != nil && cur.Target == "":
			cur.Target = strings.TrimSpace(strings.Fields(line[4:])[0])

		case strings.HasPrefix(line, "@@ "):
			flushHunk()
			h, err := parseHunkHeader(line)
			if err != nil {
				return nil, fmt.Errorf("parse hunk header %q: %w", line, err)
			}
			hunk = &h

		case hunk != nil && isHunkLine(line):
			hunk.Lines = append(hunk.Lines, line)

		case hunk != nil:
			// a non-hunk line after a hunk starts the next file's header.
			flushItem()
			header = append(header, line)

		case cur == nil:
			header = append(header, line)

		default:
			// stray line between a file's "+++" and its first hunk; ignore.
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	flushItem()

	if len(items) == 0 {
		return nil, fmt.Errorf("unable to parse patch file: no unified-diff segments found")
	}

	return items, nil
}

// isHunkLine reports whether line is a hunk body line: context (' '),
// addition ('+'), removal ('-'), a "\ No newline" marker, or empty.
func isHunkLine(line string) bool {
	return line == "" || strings.ContainsRune(` +-\`, rune(line[0]))
}

// parseHunkHeader parses "@@ -startsrc,linessrc +starttgt,linestgt @@ desc".
// The ",lines" part is optional in unified diff and defaults to 1.
func parseHunkHeader(line string) (Hunk, error) {
	body := strings.TrimPrefix(line, "@@ ")
	end := strings.Index(body, "@@")
	if end < 0 {
		return Hunk{}, fmt.Errorf("missing closing @@")
	}
	ranges := strings.Fields(body[:end])
	desc := strings.TrimSpace(body[end+2:])

	if len(ranges) != 2 || !strings.HasPrefix(ranges[0], "-") || !strings.HasPrefix(ranges[1], "+") {
		return Hunk{}, fmt.Errorf("malformed range spec")
	}

	startSrc, linesSrc, err := parseRange(ranges[0][1:])
	if err != nil {
		return Hunk{}, err
	}
	startTgt, linesTgt, err := parseRange(ranges[1][1:])
	if err != nil {
		return Hunk{}, err
	}

	return Hunk{
		StartSrc: startSrc, LinesSrc: linesSrc,
		StartTgt: startTgt, LinesTgt: linesTgt,
		Desc: desc,
	}, nil
}

func parseRange(s string) (start, lines int, err error) {
	parts := strings.SplitN(s, ",", 2)
	if start, err = strconv.Atoi(parts[0]); err != nil {
		return 0, 0, err
	}
	lines = 1
	if len(parts) == 2 {
		if lines, err = strconv.Atoi(parts[1]); err != nil {
			return 0, 0, err
		}
	}
	return start, lines, nil
}

// Text regenerates the unified-diff text for this item: header lines, the
// "--- "/"+++ " lines, then each hunk's "@@ ... @@" header and body.
func (it Item) Text() string {
	var sb strings.Builder
	for _, h := range it.Header {
		sb.WriteString(h)
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "--- %s\n", it.Source)
	fmt.Fprintf(&sb, "+++ %s\n", it.Target)

	for _, hunk := range it.Hunks {
		fmt.Fprintf(&sb, "@@ -%d,%d +%d,%d @@", hunk.StartSrc, hunk.LinesSrc, hunk.StartTgt, hunk.LinesTgt)
		if hunk.Desc != "" {
			sb.WriteByte(' ')
			sb.WriteString(hunk.Desc)
		}
		sb.WriteByte('\n')
		for _, l := range hunk.Lines {
			sb.WriteString(l)
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}

// Extract parses the patch file at location and writes one subfile per item
// under targetDir, mirroring the path the patch would apply to.
func Extract(location, targetDir string) ([]string, error) {
	f, err := os.Open(location)
	if err != nil {
		return nil, fmt.Errorf("open file error: %w", err)
	}
	defer f.Close()

	items, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", location, err)
	}

	for _, it := range items {
		subfilePath := it.Target
		if strings.Contains(subfilePath, "/dev/null") || subfilePath == "" {
			subfilePath = it.Source
		}

		subfilePath = xpath.SafePath(subfilePath, false)

		parent := filepath.Join(targetDir, filepath.Dir(filepath.FromSlash(subfilePath)))
		if err = os.MkdirAll(parent, 0o777); err != nil {
			return nil, fmt.Errorf("create parent directory error: %w", err)
		}

		base := filepath.Join(targetDir, filepath.FromSlash(subfilePath))
		for n := 0; fileExists(base) || fileExists(base+xpath.Suffix); n++ {
			base = fmt.Sprintf("%s_%d", filepath.Join(targetDir, filepath.FromSlash(subfilePath)), n)
		}

		if err = os.WriteFile(base+xpath.Suffix, []byte(it.Text()), 0o666); err != nil {
			return nil, fmt.Errorf("write patch subfile error: %w", err)
		}
	}

	return nil, nil
}

func fileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
