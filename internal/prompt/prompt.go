// Package prompt builds the prompts sent to model backends for
// reviewing changes, analyzing review comments, generating fixes,
// and drafting replies.
package prompt

import (
	"fmt"
	"strings"
)

// MaxPromptSize is the maximum size of a prompt in bytes (250KB).
// If a prompt with full file content exceeds this, the file content
// section is dropped and the model sees the diff alone.
const MaxPromptSize = 250 * 1024

// PRContext carries the pull-request metadata that prompts embed so
// the model understands what the change is for.
type PRContext struct {
	Number      int
	Title       string
	Description string
	BaseBranch  string
	HeadBranch  string
	HeadSHA     string
	State       string
	Author      string
}

func contextSection(pr PRContext) string {
	title := pr.Title
	if title == "" {
		title = "N/A"
	}
	desc := pr.Description
	if desc == "" {
		desc = "N/A"
	}
	return fmt.Sprintf("PR context:\n- Title: %s\n- Description: %s\n", title, desc)
}

// Review builds the per-file review prompt: system instructions, PR
// context, the file's diff, and the post-change file content.
func Review(path, patch, fileContent string, pr PRContext) string {
	var b strings.Builder
	b.WriteString(reviewSystem)
	b.WriteString("\n\n")
	b.WriteString(contextSection(pr))
	fmt.Fprintf(&b, "\nFile: %s\n", path)
	fmt.Fprintf(&b, "\nGit diff (the changes):\n```diff\n%s\n```\n", patch)

	withContent := b.String() +
		fmt.Sprintf("\nFull file content after changes:\n```\n%s\n```\n", fileContent)
	if len(withContent) <= MaxPromptSize {
		return withContent
	}
	// Oversized file: the diff still fits, review without full content.
	return b.String()
}

// Analyze builds the prompt that asks the model what action a review
// comment requires before any code is generated.
func Analyze(path, fileContent, reviewComment string, pr PRContext) string {
	var b strings.Builder
	b.WriteString(analyzeSystem)
	b.WriteString("\n\n")
	b.WriteString(contextSection(pr))
	fmt.Fprintf(&b, "\nFile: %s\nReview comment: %s\n", path, reviewComment)
	fmt.Fprintf(&b, "\nCurrent file content:\n```\n%s\n```\n", fileContent)
	return b.String()
}

// Fix builds the prompt that asks the model for the complete fixed
// file content.
func Fix(path, fileContent, reviewComment string, line int) string {
	lineInfo := ""
	if line > 0 {
		lineInfo = fmt.Sprintf(" at line %d", line)
	}

	var b strings.Builder
	b.WriteString(fixSystem)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "File: %s%s\nReview comment: %s\n", path, lineInfo, reviewComment)
	fmt.Fprintf(&b, "\nCurrent file content:\n```\n%s\n```\n", fileContent)
	return b.String()
}

// Reply builds the prompt for a short acknowledgement reply to a
// review comment after a fix was applied.
func Reply(reviewComment, changesMade string) string {
	var b strings.Builder
	b.WriteString(replySystem)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Review comment: %s\nChanges made: %s\n", reviewComment, changesMade)
	return b.String()
}

// Summary produces the top-level review body. This is deliberately
// templated rather than model-generated so the summary always matches
// the actual posted comment count.
func Summary(filesReviewed, commentCount int) string {
	if commentCount == 0 {
		return fmt.Sprintf(`## AI Code Review Summary

Reviewed %d file(s). No issues found.

The code looks good to merge.

*Automated review powered by AI*`, filesReviewed)
	}
	return fmt.Sprintf(`## AI Code Review Summary

Reviewed %d file(s) and found %d suggestion(s).

Please review the inline comments for details.

*Automated review powered by AI*`, filesReviewed, commentCount)
}
