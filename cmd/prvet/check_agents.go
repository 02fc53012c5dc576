package main

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/prvet-dev/prvet/internal/agent"
)

func checkAgentsCmd() *cobra.Command {
	var (
		timeoutSecs int
		agentFilter string
		smoke       bool
	)

	cmd := &cobra.Command{
		Use:   "check-agents",
		Short: "Check which agents are available and responding",
		Long: `Check which agents are installed and usable.

With --smoke, each available agent is asked to produce a short reply to
verify it actually responds.

Examples:
  prvet check-agents                       # Availability only
  prvet check-agents --smoke               # Run a live smoke test
  prvet check-agents --agent claude-code   # Check only one agent`,
		RunE: func(cmd *cobra.Command, args []string) error {
			timeout := time.Duration(timeoutSecs) * time.Second

			var passed, failed, skipped int

			for _, name := range agent.Available() {
				if agentFilter != "" && name != agentFilter {
					continue
				}

				a, err := agent.Get(name)
				if err != nil {
					continue
				}

				cmdName := ""
				if ca, ok := a.(agent.CommandAgent); ok {
					cmdName = ca.CommandName()
				}

				if !agent.IsAvailable(name) {
					if cmdName != "" {
						fmt.Printf("  - %-14s %s (not found in PATH)\n", name, cmdName)
					} else {
						fmt.Printf("  - %-14s (no API key)\n", name)
					}
					skipped++
					continue
				}

				if !smoke {
					if cmdName != "" {
						path, _ := exec.LookPath(cmdName)
						fmt.Printf("  + %-14s %s (%s)\n", name, cmdName, path)
					} else {
						fmt.Printf("  + %-14s (API key set)\n", name)
					}
					passed++
					continue
				}

				fmt.Printf("  ? %-14s ... ", name)

				ctx, cancel := context.WithTimeout(context.Background(), timeout)
				reply, err := a.GenerateReply(ctx, "Please confirm you received this.", "Nothing was changed.")
				cancel()

				switch {
				case err != nil:
					fmt.Printf("FAIL\n")
					for _, line := range strings.Split(err.Error(), "\n") {
						if line = strings.TrimSpace(line); line != "" {
							fmt.Printf("    %s\n", line)
						}
					}
					failed++
				case strings.TrimSpace(reply) == "":
					fmt.Printf("FAIL (empty response)\n")
					failed++
				default:
					fmt.Printf("OK (%d bytes)\n", len(reply))
					passed++
				}
			}

			fmt.Printf("\n%d passed, %d failed, %d skipped\n", passed, failed, skipped)
			if failed > 0 {
				return fmt.Errorf("%d agent(s) failed health check", failed)
			}
			return nil
		},
	}

	cmd.SilenceUsage = true
	cmd.Flags().IntVar(&timeoutSecs, "timeout", 60, "timeout in seconds per agent")
	cmd.Flags().StringVar(&agentFilter, "agent", "", "check only this agent")
	cmd.Flags().BoolVar(&smoke, "smoke", false, "ask each agent for a live response")

	return cmd
}
