package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/prvet-dev/prvet/internal/agent"
	"github.com/prvet-dev/prvet/internal/config"
)

var verbose bool

// applyAgentConfig re-registers the CLI-backed agents with any custom
// command names from the config and exposes a file-configured API key
// to the API backend, which reads it from the environment.
func applyAgentConfig(cfg *config.Config) {
	if cfg.ClaudeCodeCmd != "" && cfg.ClaudeCodeCmd != "claude" {
		agent.Register(agent.NewClaudeCodeAgent(cfg.ClaudeCodeCmd))
	}
	if cfg.GeminiCmd != "" && cfg.GeminiCmd != "gemini" {
		agent.Register(agent.NewGeminiAgent(cfg.GeminiCmd))
	}
	if cfg.AnthropicAPIKey != "" && os.Getenv("ANTHROPIC_API_KEY") == "" {
		os.Setenv("ANTHROPIC_API_KEY", cfg.AnthropicAPIKey)
	}
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "prvet",
		Short: "Automatic pull request review and fixing",
		Long:  "prvet reviews GitHub pull requests with AI agents (Claude Code, Gemini, Anthropic API) and applies fixes for review comments",
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(reviewCmd())
	rootCmd.AddCommand(fixCmd())
	rootCmd.AddCommand(logCmd())
	rootCmd.AddCommand(configCmd())
	rootCmd.AddCommand(initActionCmd())
	rootCmd.AddCommand(checkAgentsCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
