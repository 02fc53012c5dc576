package agent

import (
	"context"
	"strings"
	"time"

	"github.com/prvet-dev/prvet/internal/prompt"
	"github.com/prvet-dev/prvet/internal/review"
)

// Per-operation timeouts. Review and fix generation read whole files;
// replies are two sentences.
const (
	reviewTimeout = 2 * time.Minute
	fixTimeout    = 2 * time.Minute
	replyTimeout  = 30 * time.Second
)

// completer is the one primitive a backend must supply: send a prompt,
// get the raw response text. All four agent operations are prompt
// construction plus defensive parsing on top of it.
type completer interface {
	complete(ctx context.Context, promptText string, timeout time.Duration) (string, error)
}

func reviewCodeWith(ctx context.Context, c completer, req ReviewRequest) ([]review.Candidate, error) {
	p := prompt.Review(req.Path, req.Patch, req.FileContent, req.PR)
	out, err := c.complete(ctx, p, reviewTimeout)
	if err != nil {
		return nil, err
	}
	return ParseCandidates(out, req.Path), nil
}

func analyzeReviewWith(ctx context.Context, c completer, req FixRequest) (Analysis, error) {
	p := prompt.Analyze(req.Path, req.FileContent, req.Comment, req.PR)
	out, err := c.complete(ctx, p, reviewTimeout)
	if err != nil {
		return Analysis{}, err
	}
	return ParseAnalysis(out), nil
}

func generateCodeFixWith(ctx context.Context, c completer, req FixRequest) (string, error) {
	p := prompt.Fix(req.Path, req.FileContent, req.Comment, req.Line)
	out, err := c.complete(ctx, p, fixTimeout)
	if err != nil {
		return "", err
	}
	return StripFences(out), nil
}

func generateReplyWith(ctx context.Context, c completer, reviewComment, changesMade string) (string, error) {
	p := prompt.Reply(reviewComment, changesMade)
	out, err := c.complete(ctx, p, replyTimeout)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
