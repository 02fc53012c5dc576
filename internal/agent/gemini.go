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

// GeminiAgent runs prompts through the Gemini CLI.
type GeminiAgent struct {
	Command string // the gemini command to run (default: "gemini")
}

// NewGeminiAgent creates a new Gemini agent.
func NewGeminiAgent(command string) *GeminiAgent {
	if command == "" {
		command = "gemini"
	}
	return &GeminiAgent{Command: command}
}

func (a *GeminiAgent) Name() string { return "gemini" }

func (a *GeminiAgent) CommandName() string { return a.Command }

// complete pipes the prompt via stdin and reads the plain-text
// response from stdout.
func (a *GeminiAgent) complete(ctx context.Context, promptText string, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, a.Command)
	cmd.Stdin = strings.NewReader(promptText)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("gemini timed out after %s", timeout)
		}
		return "", fmt.Errorf("gemini failed: %w\nstderr: %s", err, stderr.String())
	}

	return strings.TrimSpace(stdout.String()), nil
}

func (a *GeminiAgent) ReviewCode(ctx context.Context, req ReviewRequest) ([]review.Candidate, error) {
	return reviewCodeWith(ctx, a, req)
}

func (a *GeminiAgent) AnalyzeReview(ctx context.Context, req FixRequest) (Analysis, error) {
	return analyzeReviewWith(ctx, a, req)
}

func (a *GeminiAgent) GenerateCodeFix(ctx context.Context, req FixRequest) (string, error) {
	return generateCodeFixWith(ctx, a, req)
}

func (a *GeminiAgent) GenerateReply(ctx context.Context, reviewComment, changesMade string) (string, error) {
	return generateReplyWith(ctx, a, reviewComment, changesMade)
}

func init() {
	Register(NewGeminiAgent(""))
}
