package agent

import (
	"encoding/json"
	"strings"

	"github.com/prvet-dev/prvet/internal/review"
)

// Model responses are free text that should contain JSON but often
// wraps it in prose or markdown fences. Extraction is substring-based
// and deliberately forgiving: on any failure the caller gets a safe
// default, never an error.

// extractJSONArray returns the substring between the first '[' and
// the last ']' inclusive, or "" when no such span exists.
func extractJSONArray(s string) string {
	start := strings.Index(s, "[")
	end := strings.LastIndex(s, "]")
	if start == -1 || end <= start {
		return ""
	}
	return s[start : end+1]
}

// extractJSONObject returns the substring between the first '{' and
// the last '}' inclusive, or "" when no such span exists.
func extractJSONObject(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end <= start {
		return ""
	}
	return s[start : end+1]
}

// StripFences removes a surrounding markdown code fence, including a
// language tag on the opening fence. Content without fences passes
// through unchanged.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	lines := strings.Split(s, "\n")
	lines = lines[1:]
	if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

// ParseCandidates extracts the review-comment array from a model
// response. The path is stamped onto every comment (models are not
// trusted to echo it back) and a missing side defaults to RIGHT.
// Unparseable responses yield no comments.
func ParseCandidates(response, path string) []review.Candidate {
	raw := extractJSONArray(response)
	if raw == "" {
		return nil
	}

	var comments []review.Candidate
	if err := json.Unmarshal([]byte(raw), &comments); err != nil {
		return nil
	}

	for i := range comments {
		comments[i].Path = path
		if comments[i].Side == "" {
			comments[i].Side = review.SideRight
		}
	}
	return comments
}

// noActionAnalysis is the fallback when a model response can't be
// parsed: doing nothing is always safe, rewriting a file from a
// half-understood response is not.
func noActionAnalysis() Analysis {
	return Analysis{
		Action:    "no_action",
		Reasoning: "Could not parse response",
	}
}

// ParseAnalysis extracts the analysis object from a model response,
// falling back to no_action when the response has no parseable JSON.
func ParseAnalysis(response string) Analysis {
	raw := extractJSONObject(response)
	if raw == "" {
		return noActionAnalysis()
	}

	var a Analysis
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		return noActionAnalysis()
	}
	if a.Action == "" {
		a.Action = "no_action"
	}
	return a
}
