// Package review validates model-proposed comments against a PR's
// diffs, batches them into a single review submission, and fans the
// per-file analysis out across a bounded worker pool.
package review

// Candidate is one comment proposed by a model backend. It is
// untrusted input: the line may be outside the diff, the path may be
// empty, and the severity may be any string.
type Candidate struct {
	Path     string `json:"path"`
	Line     int    `json:"line"`
	Body     string `json:"body"`
	Side     string `json:"side"`
	Severity string `json:"severity"`
}

// Skipped records a candidate rejected during validation. Skipped
// comments are surfaced for diagnostics, never submitted.
type Skipped struct {
	Path   string
	Line   int
	Reason string
}

// Event is the review action submitted alongside the comments.
type Event string

const (
	EventComment        Event = "COMMENT"
	EventApprove        Event = "APPROVE"
	EventRequestChanges Event = "REQUEST_CHANGES"
)

// SideRight marks a comment as attached to the post-change side of
// the diff. Models sometimes omit the field; the pipeline fills it in.
const SideRight = "RIGHT"

// Payload is the terminal artifact of the pipeline: everything the
// hosting platform needs to post one review action.
type Payload struct {
	Body     string
	Event    Event
	Comments []Candidate
}

// FileTask is one changed file handed to the analyzer. Patch may be
// empty for binary or diff-less files; callers exclude those before
// building the batch.
type FileTask struct {
	Path        string
	Patch       string
	FileContent string
}

// FileResult is the outcome of analyzing one file. Exactly one of
// Comments or Err is meaningful; Err is a human-readable diagnostic,
// not a typed error.
type FileResult struct {
	Task     FileTask
	Comments []Candidate
	Err      string
}

// Failed reports whether the analysis for this file failed.
func (r FileResult) Failed() bool { return r.Err != "" }
