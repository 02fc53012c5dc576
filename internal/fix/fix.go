// Package fix applies code changes suggested by review comments to a
// local checkout.
package fix

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/prvet-dev/prvet/internal/agent"
	"github.com/prvet-dev/prvet/internal/prompt"
)

// Result reports the outcome of applying one review comment.
type Result struct {
	Path        string
	Success     bool
	ChangesMade string
	Reasoning   string
	Err         error
}

// Modifier rewrites files under a repository root based on review
// comments, using a model backend for analysis and code generation.
type Modifier struct {
	Agent    agent.Agent
	RepoPath string
}

// ApplyFix reads the target file, asks the backend what the comment
// requires, and rewrites the file if a change is warranted. A
// no_action analysis succeeds without touching the file. All failures
// are reported in the Result rather than aborting the caller's loop.
func (m *Modifier) ApplyFix(ctx context.Context, path, comment string, line int, pr prompt.PRContext) Result {
	fullPath := filepath.Join(m.RepoPath, path)

	content, err := os.ReadFile(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Path: path, Err: fmt.Errorf("file not found: %s", path)}
		}
		return Result{Path: path, Err: fmt.Errorf("read %s: %w", path, err)}
	}

	req := agent.FixRequest{
		Path:        path,
		FileContent: string(content),
		Comment:     comment,
		Line:        line,
		PR:          pr,
	}

	analysis, err := m.Agent.AnalyzeReview(ctx, req)
	if err != nil {
		return Result{Path: path, Err: fmt.Errorf("analyze review: %w", err)}
	}

	if analysis.Action == "no_action" {
		return Result{
			Path:        path,
			Success:     true,
			ChangesMade: "No changes needed",
			Reasoning:   analysis.Reasoning,
		}
	}

	fixed, err := m.Agent.GenerateCodeFix(ctx, req)
	if err != nil {
		return Result{Path: path, Err: fmt.Errorf("generate fix: %w", err)}
	}

	if err := os.WriteFile(fullPath, []byte(fixed), 0644); err != nil {
		return Result{Path: path, Err: fmt.Errorf("write %s: %w", path, err)}
	}

	changes := "Applied fix: " + analysis.Reasoning
	for _, c := range analysis.Changes {
		changes += "\n- " + c
	}

	return Result{
		Path:        path,
		Success:     true,
		ChangesMade: changes,
		Reasoning:   analysis.Reasoning,
	}
}

// FileContent returns the current content of a file in the repo.
func (m *Modifier) FileContent(path string) (string, error) {
	b, err := os.ReadFile(filepath.Join(m.RepoPath, path))
	if err != nil {
		return "", err
	}
	return string(b), nil
}
