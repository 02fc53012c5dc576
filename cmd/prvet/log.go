package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/prvet-dev/prvet/internal/storage"
)

func logCmd() *cobra.Command {
	var limit int
	var pr string

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show recent review and fix runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := storage.Open(storage.DefaultDBPath())
			if err != nil {
				return fmt.Errorf("open run history: %w", err)
			}
			defer db.Close()

			var runs []storage.Run
			if pr != "" {
				runs, err = db.RunsForPR(pr)
			} else {
				runs, err = db.RecentRuns(limit)
			}
			if err != nil {
				return err
			}

			if len(runs) == 0 {
				fmt.Println("No runs recorded.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "WHEN\tPR\tMODE\tAGENT\tFILES\tCOMMENTS\tSKIPPED\tFAILURES")
			for _, r := range runs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%d\t%d\n",
					r.CreatedAt.Format("2006-01-02 15:04"),
					r.PR, r.Mode, r.Agent, r.Files, r.CommentsPosted, r.Skipped, r.Failures)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "max runs to show")
	cmd.Flags().StringVar(&pr, "pr", "", `show runs for one pull request ("owner/repo#number")`)

	return cmd
}
