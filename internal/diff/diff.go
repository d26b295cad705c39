// Package diff parses unified diff text and resolves new-file line numbers
// to the hunk-relative positions required by inline review comment APIs.
//
// Parsing is best-effort: diff text arrives from varied sources and may be
// truncated or malformed, so unrecognized lines are skipped rather than
// reported as errors.
package diff

import (
	"regexp"
	"strconv"
	"strings"
)

// LineKind classifies a diff body line
type LineKind int

const (
	// Addition is a line present only in the new version (+ prefix)
	Addition LineKind = iota
	// Context is a line present in both versions (space prefix)
	Context
	// Deletion is a line present only in the old version (- prefix)
	Deletion
)

// String returns the line kind name
func (k LineKind) String() string {
	switch k {
	case Addition:
		return "addition"
	case Context:
		return "context"
	case Deletion:
		return "deletion"
	default:
		return "unknown"
	}
}

// Line is a single body line within a hunk
type Line struct {
	Kind LineKind // line classification
	Text string   // line content without the prefix character
}

// Hunk is a contiguous change region introduced by an @@ header
type Hunk struct {
	NewStartLine int    // first new-file line number covered by the hunk
	Lines        []Line // body lines in input order
}

// FileDiff is one diff section for a single file, identified by the
// new-file path from its "diff --git" header.
type FileDiff struct {
	NewPath string  // path with the b/ prefix stripped
	Hunks   []*Hunk // hunks in input order
}

// Document is a parsed unified diff. Immutable after construction.
type Document struct {
	Files []*FileDiff // file sections in input order
}

// hunkHeaderRe extracts the new-file start line from an @@ header
var hunkHeaderRe = regexp.MustCompile(`\+(\d+)`)

// Parse parses unified diff text into a Document. It never fails:
// malformed or unrecognized lines are skipped.
func Parse(diffText string) *Document {
	doc := &Document{}

	var file *FileDiff
	var hunk *Hunk

	for _, line := range strings.Split(diffText, "\n") {
		switch {
		case strings.HasPrefix(line, "diff --git "):
			path, ok := parseFileHeader(line)
			if !ok {
				file = nil
				hunk = nil
				continue
			}
			file = &FileDiff{NewPath: path}
			hunk = nil
			doc.Files = append(doc.Files, file)

		case strings.HasPrefix(line, "@@"):
			if file == nil {
				continue
			}
			start, ok := parseHunkHeader(line)
			if !ok {
				hunk = nil
				continue
			}
			hunk = &Hunk{NewStartLine: start}
			file.Hunks = append(file.Hunks, hunk)

		default:
			if hunk == nil {
				continue
			}
			if kind, text, ok := classifyLine(line); ok {
				hunk.Lines = append(hunk.Lines, Line{Kind: kind, Text: text})
			}
		}
	}

	return doc
}

// parseFileHeader extracts the new-file path from a "diff --git" line.
// The 4th whitespace-separated token is the b/ path.
func parseFileHeader(line string) (string, bool) {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return "", false
	}
	return strings.TrimPrefix(fields[3], "b/"), true
}

// parseHunkHeader extracts the new-file start line from an @@ header,
// the integer immediately following the + sign.
func parseHunkHeader(line string) (int, bool) {
	m := hunkHeaderRe.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// classifyLine classifies a hunk body line. File markers (---/+++) and
// metadata lines are not body lines and report ok=false.
func classifyLine(line string) (LineKind, string, bool) {
	switch {
	case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		return 0, "", false
	case strings.HasPrefix(line, "+"):
		return Addition, line[1:], true
	case strings.HasPrefix(line, "-"):
		return Deletion, line[1:], true
	case strings.HasPrefix(line, " ") && len(line) > 1:
		return Context, line[1:], true
	default:
		return 0, "", false
	}
}

// File returns the most recent section for the given path, or nil when
// the path does not appear in the diff. Paths compare by exact string
// equality.
func (d *Document) File(path string) *FileDiff {
	for i := len(d.Files) - 1; i >= 0; i-- {
		if d.Files[i].NewPath == path {
			return d.Files[i]
		}
	}
	return nil
}

// ChangedPaths returns the new-file path of every section, de-duplicated,
// in first-appearance order.
func (d *Document) ChangedPaths() []string {
	seen := make(map[string]struct{}, len(d.Files))
	paths := make([]string, 0, len(d.Files))
	for _, f := range d.Files {
		if _, ok := seen[f.NewPath]; ok {
			continue
		}
		seen[f.NewPath] = struct{}{}
		paths = append(paths, f.NewPath)
	}
	return paths
}

// Stats summarizes a parsed diff
type Stats struct {
	Files     int // file sections
	Hunks     int // total hunks
	Additions int // added lines
	Deletions int // removed lines
}

// Stats counts files, hunks, and changed lines across the document
func (d *Document) Stats() Stats {
	var s Stats
	s.Files = len(d.Files)
	for _, f := range d.Files {
		s.Hunks += len(f.Hunks)
		for _, h := range f.Hunks {
			for _, l := range h.Lines {
				switch l.Kind {
				case Addition:
					s.Additions++
				case Deletion:
					s.Deletions++
				}
			}
		}
	}
	return s
}
