package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/prvet-dev/prvet/internal/ghaction"
	"github.com/prvet-dev/prvet/internal/git"
)

func initActionCmd() *cobra.Command {
	var (
		agentName   string
		minSeverity string
		pinVersion  string
		output      string
		force       bool
	)

	cmd := &cobra.Command{
		Use:   "init-action",
		Short: "Generate a GitHub Actions workflow that reviews pull requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ghaction.DefaultConfig()
			if agentName != "" {
				cfg.Agent = agentName
			}
			cfg.MinSeverity = minSeverity
			cfg.PrvetVersion = pinVersion

			if output == "" {
				root, err := git.GetRepoRoot(".")
				if err != nil {
					return fmt.Errorf("not in a git repository (use --output): %w", err)
				}
				output = filepath.Join(root, ".github", "workflows", "prvet.yml")
			}

			if err := ghaction.WriteWorkflow(cfg, output, force); err != nil {
				return err
			}

			fmt.Printf("Wrote %s\n", output)
			fmt.Printf("Add a repository secret named %q before the first run.\n",
				ghaction.AgentEnvVar(cfg.Agent))
			return nil
		},
	}

	cmd.Flags().StringVarP(&agentName, "model", "m", "", "agent the workflow reviews with")
	cmd.Flags().StringVar(&minSeverity, "min-severity", "", "drop comments below this severity")
	cmd.Flags().StringVar(&pinVersion, "pin-version", "", "pin a prvet release instead of latest")
	cmd.Flags().StringVarP(&output, "output", "o", "", "workflow file path")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing workflow file")

	return cmd
}
