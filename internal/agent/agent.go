// Package agent defines the model backends that generate reviews,
// code fixes, and replies, behind a common registry.
package agent

import (
	"context"
	"fmt"
	"os/exec"
	"sort"

	"github.com/prvet-dev/prvet/internal/prompt"
	"github.com/prvet-dev/prvet/internal/review"
)

// ReviewRequest carries everything a backend needs to review one
// file's changes.
type ReviewRequest struct {
	Path        string
	Patch       string
	FileContent string
	PR          prompt.PRContext
}

// FixRequest carries everything a backend needs to analyze a review
// comment and rewrite the file it targets.
type FixRequest struct {
	Path        string
	FileContent string
	Comment     string
	Line        int
	PR          prompt.PRContext
}

// Analysis is a backend's judgement of what a review comment asks
// for, parsed from its JSON response.
type Analysis struct {
	Action    string   `json:"action"` // modify, create, delete, no_action
	Reasoning string   `json:"reasoning"`
	Changes   []string `json:"changes"`
}

// Agent is the capability set every model backend provides for fix
// mode.
type Agent interface {
	// Name returns the backend identifier (e.g. "claude-code").
	Name() string

	// AnalyzeReview determines what a review comment requires.
	// Unparseable model output degrades to a no_action analysis,
	// never an error.
	AnalyzeReview(ctx context.Context, req FixRequest) (Analysis, error)

	// GenerateCodeFix returns the complete fixed file content.
	GenerateCodeFix(ctx context.Context, req FixRequest) (string, error)

	// GenerateReply drafts a short acknowledgement for an addressed
	// review comment.
	GenerateReply(ctx context.Context, reviewComment, changesMade string) (string, error)
}

// Reviewer is the optional review capability. Backends that cannot
// review diffs simply don't implement it; ReviewCode below returns
// an empty result for them.
type Reviewer interface {
	ReviewCode(ctx context.Context, req ReviewRequest) ([]review.Candidate, error)
}

// CommandAgent is an agent backed by an external CLI.
type CommandAgent interface {
	Agent
	// CommandName returns the executable to look up on PATH.
	CommandName() string
}

// ReviewCode runs the review capability if the agent has one. Agents
// without it produce no comments, which callers treat the same as a
// clean review.
func ReviewCode(ctx context.Context, a Agent, req ReviewRequest) ([]review.Candidate, error) {
	if r, ok := a.(Reviewer); ok {
		return r.ReviewCode(ctx, req)
	}
	return nil, nil
}

// Registry holds available agents.
var registry = make(map[string]Agent)

// aliases maps short names to full agent names.
var aliases = map[string]string{
	"claude": "claude-code",
}

func resolveAlias(name string) string {
	if canonical, ok := aliases[name]; ok {
		return canonical
	}
	return name
}

// Register adds an agent to the registry.
func Register(a Agent) {
	registry[a.Name()] = a
}

// Get returns an agent by name (supports aliases like "claude" for
// "claude-code").
func Get(name string) (Agent, error) {
	name = resolveAlias(name)
	a, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown model: %s", name)
	}
	return a, nil
}

// Available returns the names of all registered agents, sorted.
func Available() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// prober lets non-command agents report availability (e.g. an API
// backend that needs a key in the environment).
type prober interface {
	available() bool
}

// IsAvailable checks whether an agent can run on this machine:
// command agents need their executable on PATH, API agents need
// their credentials.
func IsAvailable(name string) bool {
	name = resolveAlias(name)
	a, ok := registry[name]
	if !ok {
		return false
	}

	if ca, ok := a.(CommandAgent); ok {
		_, err := exec.LookPath(ca.CommandName())
		return err == nil
	}
	if p, ok := a.(prober); ok {
		return p.available()
	}
	return true
}

// GetAvailable returns a usable agent, trying the requested one
// first, then falling back through the registered backends. Errors
// only when nothing is available.
func GetAvailable(preferred string) (Agent, error) {
	preferred = resolveAlias(preferred)

	if preferred != "" && IsAvailable(preferred) {
		return Get(preferred)
	}

	fallbacks := []string{"claude-code", "gemini", "anthropic-api"}
	for _, name := range fallbacks {
		if name != preferred && IsAvailable(name) {
			return Get(name)
		}
	}

	var available []string
	for name := range registry {
		if IsAvailable(name) {
			available = append(available, name)
		}
	}
	if len(available) == 0 {
		return nil, fmt.Errorf("no model backends available (install claude or gemini, or set ANTHROPIC_API_KEY)")
	}
	sort.Strings(available)
	return Get(available[0])
}
