package review

import "strings"

// Severity classifies a comment's importance. Lower values are more
// severe; the zero value is deliberately not a valid severity so the
// parse funnel below is the only way to produce one.
type Severity int

const (
	SeverityCritical Severity = 1
	SeverityMajor    Severity = 2
	SeverityMinor    Severity = 3
)

// String returns the canonical lowercase name.
func (s Severity) String() string {
	switch s {
	case SeverityCritical:
		return "critical"
	case SeverityMajor:
		return "major"
	default:
		return "minor"
	}
}

// ParseSeverity normalizes a free-form severity string from a model
// response. Unrecognized values default to minor, matching how an
// unlabeled comment should be treated: informational, never blocking.
func ParseSeverity(s string) Severity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "critical":
		return SeverityCritical
	case "major":
		return SeverityMajor
	default:
		return SeverityMinor
	}
}

// FilterBySeverity keeps candidates at or above the minimum severity.
// This runs upstream of validation: severity is a selection concern,
// not a placement concern.
func FilterBySeverity(candidates []Candidate, min Severity) []Candidate {
	var kept []Candidate
	for _, c := range candidates {
		if ParseSeverity(c.Severity) <= min {
			kept = append(kept, c)
		}
	}
	return kept
}
