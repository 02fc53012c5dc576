package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/prvet-dev/prvet/internal/agent"
	"github.com/prvet-dev/prvet/internal/config"
	"github.com/prvet-dev/prvet/internal/fix"
	"github.com/prvet-dev/prvet/internal/git"
	"github.com/prvet-dev/prvet/internal/github"
	"github.com/prvet-dev/prvet/internal/storage"
)

func fixCmd() *cobra.Command {
	var (
		model    string
		repoPath string
		noReply  bool
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:   "fix <pr-url>",
		Short: "Apply fixes for unresolved review comments",
		Long:  "Fetches unresolved review comments on the pull request, applies the requested changes to the local checkout, commits and pushes them, and replies to each addressed comment.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			ref, err := github.ParsePRURL(args[0])
			if err != nil {
				return err
			}

			cfg, err := config.LoadGlobal()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			if repoPath == "" {
				repoPath, err = git.GetRepoRoot(".")
				if err != nil {
					return fmt.Errorf("not in a git repository (use --repo-path): %w", err)
				}
			}

			applyAgentConfig(cfg)
			agentName := config.ResolveAgent(model, repoPath, cfg)
			backend, err := agent.GetAvailable(agentName)
			if err != nil {
				return err
			}

			client := github.NewClient(cfg.GitHubToken)
			return runFix(ctx, client, backend, ref, repoPath, noReply, dryRun)
		},
	}

	cmd.Flags().StringVarP(&model, "model", "m", "", "agent to fix with (claude-code, gemini, anthropic-api)")
	cmd.Flags().StringVar(&repoPath, "repo-path", "", "path to the local checkout (defaults to the enclosing git repo)")
	cmd.Flags().BoolVar(&noReply, "no-reply", false, "do not reply to addressed comments")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "modify files locally but do not commit, push, or reply")

	return cmd
}

func runFix(ctx context.Context, client *github.Client, backend agent.Agent, ref github.PRRef, repoPath string, noReply, dryRun bool) error {
	prCtx, err := client.GetPullRequest(ctx, ref)
	if err != nil {
		return fmt.Errorf("fetch pull request: %w", err)
	}

	comments, err := client.ListReviewComments(ctx, ref)
	if err != nil {
		return fmt.Errorf("list review comments: %w", err)
	}
	unresolved := github.UnresolvedComments(comments)
	if len(unresolved) == 0 {
		fmt.Println("No unresolved review comments.")
		return nil
	}

	fmt.Printf("Fixing %d unresolved comment(s) on %s with %s...\n", len(unresolved), ref, backend.Name())

	modifier := &fix.Modifier{Agent: backend, RepoPath: repoPath}

	var results []fix.Result
	var changedFiles []string
	seen := make(map[string]bool)
	fixedComments := make(map[int64]fix.Result)

	for _, c := range unresolved {
		res := modifier.ApplyFix(ctx, c.Path, c.Body, c.Line, prCtx)
		results = append(results, res)
		if res.Err != nil {
			log.Printf("fix %s: %v", c.Path, res.Err)
			continue
		}
		if res.ChangesMade != "No changes needed" && !seen[res.Path] {
			seen[res.Path] = true
			changedFiles = append(changedFiles, res.Path)
		}
		fixedComments[c.ID] = res
	}

	var committed string
	if len(changedFiles) > 0 && !dryRun {
		hasChanges, err := git.HasChanges(repoPath)
		if err != nil {
			return fmt.Errorf("check working tree: %w", err)
		}
		if hasChanges {
			msg := fmt.Sprintf("fix: apply review feedback from PR #%d", ref.Number)
			committed, err = git.CommitAndPush(repoPath, changedFiles, msg)
			if err != nil {
				return fmt.Errorf("commit and push: %w", err)
			}
		}
	}

	// Reply only once changes are actually on the remote.
	if committed != "" && !noReply {
		for _, c := range unresolved {
			res, ok := fixedComments[c.ID]
			if !ok || res.ChangesMade == "No changes needed" {
				continue
			}
			reply, err := backend.GenerateReply(ctx, c.Body, res.ChangesMade)
			if err != nil || reply == "" {
				reply = "Applied the suggested fix. " + res.ChangesMade
			}
			if err := client.ReplyToComment(ctx, ref, c.ID, reply); err != nil {
				log.Printf("reply to comment %d: %v", c.ID, err)
			}
		}
	}

	renderFixSummary(results, committed)

	var failures int
	for _, r := range results {
		if r.Err != nil {
			failures++
		}
	}
	if !dryRun {
		recordRun(storage.Run{
			PR:       ref.String(),
			Mode:     "fix",
			Agent:    backend.Name(),
			Files:    len(changedFiles),
			Failures: failures,
		})
	}

	return nil
}
