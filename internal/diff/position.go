package diff

import "strings"

// scanState tracks where the resolver is within the diff text
type scanState int

const (
	// stateSeekingFile: before any file header
	stateSeekingFile scanState = iota
	// stateOtherFile: inside a section for a different file
	stateOtherFile
	// stateTargetBeforeHunk: inside the target file's section, before its
	// first hunk header
	stateTargetBeforeHunk
	// stateTargetInHunk: inside a hunk of the target file
	stateTargetInHunk
)

// Resolve maps a 1-based new-file line number to the 1-based position used
// by inline review comment APIs: the count of addition and context lines
// since the most recent hunk header within the file's section. The counter
// resets to zero at every @@ header.
//
// The second return value is false when the line cannot be addressed: the
// file is absent from the diff, the line falls outside every hunk, or the
// line exists only as a deletion. That outcome is not an error; callers
// drop the comment and move on.
//
// Line numbers below 1 are never addressable. When a file path appears in
// more than one section, each section is scanned in document order and the
// first section containing the line wins.
func Resolve(diffText, filePath string, targetLine int) (int, bool) {
	if filePath == "" || targetLine < 1 {
		return 0, false
	}

	state := stateSeekingFile
	position := 0    // addition+context lines since the last hunk header
	newFileLine := 0 // line number in the new version of the file

	for _, line := range strings.Split(diffText, "\n") {
		if strings.HasPrefix(line, "diff --git ") {
			path, ok := parseFileHeader(line)
			if ok && path == filePath {
				state = stateTargetBeforeHunk
			} else {
				state = stateOtherFile
			}
			continue
		}

		switch state {
		case stateTargetBeforeHunk, stateTargetInHunk:
		default:
			continue
		}

		if strings.HasPrefix(line, "@@") {
			start, ok := parseHunkHeader(line)
			if !ok {
				state = stateTargetBeforeHunk
				continue
			}
			// counters are pre-incremented on the first body line
			newFileLine = start - 1
			position = 0
			state = stateTargetInHunk
			continue
		}

		if state != stateTargetInHunk {
			continue
		}

		kind, _, ok := classifyLine(line)
		if !ok {
			continue
		}
		switch kind {
		case Addition, Context:
			position++
			newFileLine++
			if newFileLine == targetLine {
				return position, true
			}
		case Deletion:
			// present only in the old version, advances neither counter
		}
	}

	return 0, false
}

// ResolveDocument resolves a position against an already parsed Document.
// It returns the same results as Resolve over the original text.
func ResolveDocument(doc *Document, filePath string, targetLine int) (int, bool) {
	if doc == nil || filePath == "" || targetLine < 1 {
		return 0, false
	}

	for _, f := range doc.Files {
		if f.NewPath != filePath {
			continue
		}
		for _, h := range f.Hunks {
			position := 0
			newFileLine := h.NewStartLine - 1
			for _, l := range h.Lines {
				switch l.Kind {
				case Addition, Context:
					position++
					newFileLine++
					if newFileLine == targetLine {
						return position, true
					}
				}
			}
		}
	}

	return 0, false
}
