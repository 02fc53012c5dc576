package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/prvet-dev/prvet/internal/agent"
	"github.com/prvet-dev/prvet/internal/config"
	"github.com/prvet-dev/prvet/internal/git"
	"github.com/prvet-dev/prvet/internal/github"
	"github.com/prvet-dev/prvet/internal/prompt"
	"github.com/prvet-dev/prvet/internal/review"
	"github.com/prvet-dev/prvet/internal/storage"
)

func reviewCmd() *cobra.Command {
	var (
		model       string
		minSeverity string
		concurrency int
		eventFlag   string
		dryRun      bool
	)

	cmd := &cobra.Command{
		Use:   "review <pr-url>",
		Short: "Review a pull request and post inline comments",
		Long:  "Fetches the pull request diff, analyzes every changed file with an AI agent, and posts the resulting comments as a single review.",
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

			repoPath, _ := git.GetRepoRoot(".")
			applyAgentConfig(cfg)

			agentName := config.ResolveAgent(model, repoPath, cfg)
			backend, err := agent.GetAvailable(agentName)
			if err != nil {
				return err
			}
			if _, ok := backend.(agent.Reviewer); !ok {
				return fmt.Errorf("agent %q does not support review mode", backend.Name())
			}

			severity := review.ParseSeverity(config.ResolveMinSeverity(minSeverity, repoPath, cfg))

			event := review.Event(eventFlag)
			if eventFlag == "" {
				event = review.Event(cfg.ReviewEvent)
			}

			if concurrency <= 0 {
				concurrency = cfg.MaxConcurrency
			}

			client := github.NewClient(cfg.GitHubToken)
			return runReview(ctx, client, backend, ref, severity, event, concurrency, dryRun)
		},
	}

	cmd.Flags().StringVarP(&model, "model", "m", "", "agent to review with (claude-code, gemini, anthropic-api)")
	cmd.Flags().StringVar(&minSeverity, "min-severity", "", "drop comments below this severity (critical, major, minor)")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "max files analyzed in parallel")
	cmd.Flags().StringVar(&eventFlag, "event", "", "review event (COMMENT, APPROVE, REQUEST_CHANGES)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "analyze but do not post anything")

	return cmd
}

func runReview(ctx context.Context, client *github.Client, backend agent.Agent, ref github.PRRef, minSeverity review.Severity, event review.Event, concurrency int, dryRun bool) error {
	prCtx, err := client.GetPullRequest(ctx, ref)
	if err != nil {
		return fmt.Errorf("fetch pull request: %w", err)
	}
	fmt.Printf("Reviewing %s: %s\n", ref, prCtx.Title)

	allFiles, err := client.ListFiles(ctx, ref)
	if err != nil {
		return fmt.Errorf("list files: %w", err)
	}

	// Binary and renamed-without-change files carry no patch and
	// cannot take inline comments.
	var tasks []review.FileTask
	patches := make(map[string]string)
	for _, f := range allFiles {
		if f.Patch == "" {
			if verbose {
				log.Printf("skipping %s: no diff", f.Path)
			}
			continue
		}
		patches[f.Path] = f.Patch
		tasks = append(tasks, f)
	}

	if len(tasks) == 0 {
		fmt.Println("No reviewable files in this pull request.")
		return nil
	}

	fmt.Printf("Analyzing %d file(s) with %s...\n", len(tasks), backend.Name())

	analyze := func(ctx context.Context, task review.FileTask) ([]review.Candidate, error) {
		content, err := client.GetFileContent(ctx, ref, task.Path, prCtx.HeadSHA)
		if err != nil {
			// The diff alone is still reviewable.
			log.Printf("fetch content for %s: %v", task.Path, err)
		}
		return agent.ReviewCode(ctx, backend, agent.ReviewRequest{
			Path:        task.Path,
			Patch:       task.Patch,
			FileContent: content,
			PR:          prCtx,
		})
	}

	results := review.RunBatch(ctx, tasks, analyze, concurrency)

	var candidates []review.Candidate
	var failures int
	for _, r := range results {
		if r.Failed() {
			failures++
			continue
		}
		candidates = append(candidates, r.Comments...)
	}

	candidates = review.FilterBySeverity(candidates, minSeverity)
	accepted, skipped := review.Validate(candidates, patches)

	renderReviewSummary(results, accepted, skipped)

	summary := prompt.Summary(len(tasks), len(accepted))
	payload, ok := review.BuildPayload(accepted, summary, event)
	if !ok {
		fmt.Println("Nothing to post.")
		return nil
	}

	if dryRun {
		fmt.Println("Dry run: review not posted.")
		return nil
	}

	if err := client.SubmitReview(ctx, ref, payload); err != nil {
		return fmt.Errorf("submit review: %w", err)
	}
	fmt.Printf("Posted review with %d comment(s) to %s\n", len(accepted), ref)

	recordRun(storage.Run{
		PR:             ref.String(),
		Mode:           "review",
		Agent:          backend.Name(),
		Files:          len(tasks),
		CommentsPosted: len(accepted),
		Skipped:        len(skipped),
		Failures:       failures,
	})

	return nil
}

// recordRun saves run history on a best-effort basis. A broken local
// database never fails the command.
func recordRun(run storage.Run) {
	db, err := storage.Open(storage.DefaultDBPath())
	if err != nil {
		log.Printf("warning: run history unavailable: %v", err)
		return
	}
	defer db.Close()
	if _, err := db.RecordRun(run); err != nil {
		log.Printf("warning: record run: %v", err)
	}
}
