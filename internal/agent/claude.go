package agent

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/prvet-dev/prvet/internal/review"
)

// ClaudeCodeAgent runs prompts through the Claude Code CLI in print
// mode. The CLI handles its own authentication, so this backend needs
// no API key.
type ClaudeCodeAgent struct {
	Command string // the claude command to run (default: "claude")
}

// NewClaudeCodeAgent creates a new Claude Code agent.
func NewClaudeCodeAgent(command string) *ClaudeCodeAgent {
	if command == "" {
		command = "claude"
	}
	return &ClaudeCodeAgent{Command: command}
}

func (a *ClaudeCodeAgent) Name() string { return "claude-code" }

func (a *ClaudeCodeAgent) CommandName() string { return a.Command }

// complete invokes `claude -p` with the prompt piped via stdin.
// Print mode gives a one-shot text response with no tool use, which
// is all the review/fix prompts need.
func (a *ClaudeCodeAgent) complete(ctx context.Context, promptText string, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, a.Command, "-p")
	cmd.Stdin = strings.NewReader(promptText)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("claude timed out after %s", timeout)
		}
		return "", fmt.Errorf("claude failed: %w\nstderr: %s", err, stderr.String())
	}

	return strings.TrimSpace(stdout.String()), nil
}

func (a *ClaudeCodeAgent) ReviewCode(ctx context.Context, req ReviewRequest) ([]review.Candidate, error) {
	return reviewCodeWith(ctx, a, req)
}

func (a *ClaudeCodeAgent) AnalyzeReview(ctx context.Context, req FixRequest) (Analysis, error) {
	return analyzeReviewWith(ctx, a, req)
}

func (a *ClaudeCodeAgent) GenerateCodeFix(ctx context.Context, req FixRequest) (string, error) {
	return generateCodeFixWith(ctx, a, req)
}

func (a *ClaudeCodeAgent) GenerateReply(ctx context.Context, reviewComment, changesMade string) (string, error) {
	return generateReplyWith(ctx, a, reviewComment, changesMade)
}

func init() {
	Register(NewClaudeCodeAgent(""))
}
