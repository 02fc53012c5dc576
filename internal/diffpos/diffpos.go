// Package diffpos maps unified-diff patch text to the line numbers
// that GitHub accepts inline review comments against.
package diffpos

import (
	"regexp"
	"strconv"
	"strings"
)

// hunkHeaderRE matches hunk headers like "@@ -10,5 +12,7 @@" and
// captures the new-file start line. The old-side counts are
// irrelevant for comment placement.
var hunkHeaderRE = regexp.MustCompile(`^@@ -\d+(?:,\d+)? \+(\d+)(?:,\d+)? @@`)

// LineSet is the set of new-file line numbers in a patch that can
// carry an inline comment.
type LineSet map[int]struct{}

// Contains reports whether line is commentable.
func (s LineSet) Contains(line int) bool {
	_, ok := s[line]
	return ok
}

// Len returns the number of commentable lines.
func (s LineSet) Len() int { return len(s) }

// Commentable parses a single file's unified-diff patch and returns
// the new-file line numbers that appear as added or context lines.
// GitHub rejects inline comments on any other line, so callers use
// this set to validate comment placement before submission.
//
// Parsing is best-effort: an empty patch yields an empty set, and a
// hunk header that doesn't match the expected format is skipped
// without touching the running line counter. A skipped header can
// leave the counter stale for the rest of that patch; we keep the
// behavior rather than guessing a resync point.
func Commentable(patch string) LineSet {
	lines := make(LineSet)
	if patch == "" {
		return lines
	}

	current := 0
	for _, line := range strings.Split(patch, "\n") {
		if strings.HasPrefix(line, "@@") {
			if m := hunkHeaderRE.FindStringSubmatch(line); m != nil {
				if start, err := strconv.Atoi(m[1]); err == nil {
					current = start
				}
			}
			continue
		}

		switch {
		case strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++"):
			// Added line: commentable, consumes a new-file slot.
			lines[current] = struct{}{}
			current++
		case strings.HasPrefix(line, " "):
			// Context line: commentable, consumes a new-file slot.
			lines[current] = struct{}{}
			current++
		case strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---"):
			// Removed line: exists only in the old file.
		default:
			// File markers, "\ No newline at end of file", etc.
		}
	}

	return lines
}
