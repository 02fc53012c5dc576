package review

// DefaultBody is used when a review has inline comments but the
// caller supplied no summary.
const DefaultBody = "Automated code review"

// BuildPayload assembles validated comments and an optional summary
// into a submission payload. The second return value is false when
// there is nothing to submit: no comments and no summary is a
// legitimate no-op, not an error.
//
// With comments present the payload is a line-anchored review. With
// only a summary the Comments slice is empty and the submitter is
// expected to post a plain issue-level comment instead.
func BuildPayload(accepted []Candidate, summary string, event Event) (Payload, bool) {
	if len(accepted) == 0 && summary == "" {
		return Payload{}, false
	}

	body := summary
	if len(accepted) > 0 && body == "" {
		body = DefaultBody
	}

	return Payload{
		Body:     body,
		Event:    event,
		Comments: accepted,
	}, true
}
