package review

import (
	"github.com/prvet-dev/prvet/internal/diffpos"
)

// SkipReasonNotInDiff is attached to candidates whose line falls
// outside the commentable lines of their file's patch.
const SkipReasonNotInDiff = "Line not in diff"

// Validate splits candidates into those whose line is commentable in
// their file's patch and those that must be dropped. A candidate
// whose path has no entry in patches is accepted unconditionally:
// without a patch there is nothing to validate against, and dropping
// it would lose comments whose file context simply wasn't supplied.
//
// Both output slices preserve the relative order of candidates, and
// every candidate lands in exactly one of them. The function is pure;
// it computes each file's line set at most once per call.
func Validate(candidates []Candidate, patches map[string]string) ([]Candidate, []Skipped) {
	var accepted []Candidate
	var skipped []Skipped

	lineSets := make(map[string]diffpos.LineSet)

	for _, c := range candidates {
		patch, ok := patches[c.Path]
		if !ok {
			accepted = append(accepted, c)
			continue
		}

		lines, cached := lineSets[c.Path]
		if !cached {
			lines = diffpos.Commentable(patch)
			lineSets[c.Path] = lines
		}

		if lines.Contains(c.Line) {
			accepted = append(accepted, c)
		} else {
			skipped = append(skipped, Skipped{
				Path:   c.Path,
				Line:   c.Line,
				Reason: SkipReasonNotInDiff,
			})
		}
	}

	return accepted, skipped
}
