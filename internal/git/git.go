// Package git shells out to the git CLI for the working-copy
// operations fix mode needs: staging, committing, and pushing
// applied fixes.
package git

import (
	"fmt"
	"os/exec"
	"strings"
)

func run(repoPath string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = repoPath

	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s: %w: %s", args[0], err, strings.TrimSpace(string(out)))
	}
	return string(out), nil
}

// GetRepoRoot returns the root directory of the git repository
// containing path.
func GetRepoRoot(path string) (string, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	cmd.Dir = path

	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git rev-parse --show-toplevel: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// GetCurrentBranch returns the current branch name, or empty string
// for a detached HEAD.
func GetCurrentBranch(repoPath string) string {
	cmd := exec.Command("git", "rev-parse", "--abbrev-ref", "HEAD")
	cmd.Dir = repoPath

	out, err := cmd.Output()
	if err != nil {
		return ""
	}

	branch := strings.TrimSpace(string(out))
	if branch == "HEAD" {
		return ""
	}
	return branch
}

// ResolveSHA resolves a ref (like HEAD) to a full SHA.
func ResolveSHA(repoPath, ref string) (string, error) {
	cmd := exec.Command("git", "rev-parse", ref)
	cmd.Dir = repoPath

	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git rev-parse: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// HasChanges reports whether the working tree or index differs from
// HEAD, including untracked files.
func HasChanges(repoPath string) (bool, error) {
	out, err := run(repoPath, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) != "", nil
}

// StageFiles adds the given paths (relative to the repo root) to the
// index.
func StageFiles(repoPath string, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	args := append([]string{"add", "--"}, paths...)
	_, err := run(repoPath, args...)
	return err
}

// Commit creates a commit from the index and returns its SHA.
func Commit(repoPath, message string) (string, error) {
	if _, err := run(repoPath, "commit", "-m", message); err != nil {
		return "", err
	}
	return ResolveSHA(repoPath, "HEAD")
}

// Push pushes the given branch to the remote. An empty branch means
// the current branch.
func Push(repoPath, remote, branch string) error {
	if remote == "" {
		remote = "origin"
	}
	if branch == "" {
		branch = GetCurrentBranch(repoPath)
	}
	if branch == "" {
		return fmt.Errorf("cannot push: detached HEAD and no branch given")
	}
	_, err := run(repoPath, "push", remote, branch)
	return err
}

// CommitAndPush stages the given files, commits them, and pushes the
// current branch. Returns the new commit's SHA.
func CommitAndPush(repoPath string, paths []string, message string) (string, error) {
	if err := StageFiles(repoPath, paths); err != nil {
		return "", err
	}

	sha, err := Commit(repoPath, message)
	if err != nil {
		return "", err
	}

	if err := Push(repoPath, "origin", ""); err != nil {
		return "", err
	}
	return sha, nil
}
