// Package ghaction generates GitHub Actions workflow files
// that run prvet reviews on pull requests.
package ghaction

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"text/template"
)

// Allowed values for validation (prevent injection).
var (
	allowedAgents = []string{"claude-code", "gemini", "anthropic-api"}

	safeVersionRE = regexp.MustCompile(
		`^[0-9]+\.[0-9]+\.[0-9]+(-[A-Za-z0-9.]+)?$`)

	safeSeverityRE = regexp.MustCompile(`^(critical|major|minor)$`)
)

// WorkflowConfig holds the parameters for generating a GitHub
// Actions workflow.
type WorkflowConfig struct {
	// Agent is the AI backend the workflow reviews with.
	Agent string

	// MinSeverity drops comments below this level. Empty means
	// the prvet default.
	MinSeverity string

	// PrvetVersion is the prvet release version to install.
	// Empty means "latest".
	PrvetVersion string
}

// DefaultConfig returns a WorkflowConfig with sensible defaults.
func DefaultConfig() WorkflowConfig {
	return WorkflowConfig{
		Agent: "anthropic-api",
	}
}

// Validate checks all config fields against allowlists and safe
// patterns. Returns an error describing the first invalid field.
func (c *WorkflowConfig) Validate() error {
	if c.Agent == "" {
		return fmt.Errorf("an agent is required")
	}
	if !slices.Contains(allowedAgents, c.Agent) {
		return fmt.Errorf(
			"invalid agent %q (valid: %s)",
			c.Agent, strings.Join(allowedAgents, ", "))
	}
	if c.MinSeverity != "" && !safeSeverityRE.MatchString(c.MinSeverity) {
		return fmt.Errorf(
			"invalid severity %q (valid: critical, major, minor)",
			c.MinSeverity)
	}
	if c.PrvetVersion != "" &&
		!safeVersionRE.MatchString(c.PrvetVersion) {
		return fmt.Errorf(
			"invalid prvet version %q "+
				"(expected semver like 0.3.1)",
			c.PrvetVersion)
	}
	return nil
}

// AgentEnvVar returns the environment variable name that the
// agent expects for API authentication.
func AgentEnvVar(agentName string) string {
	switch agentName {
	case "gemini":
		return "GOOGLE_API_KEY"
	default:
		return "ANTHROPIC_API_KEY"
	}
}

// AgentInstallCmd returns the shell command to install the given
// agent CLI. API-backed agents need no install step.
func AgentInstallCmd(agentName string) string {
	switch agentName {
	case "claude-code":
		return "npm install -g @anthropic-ai/claude-code@latest"
	case "gemini":
		return "npm install -g @google/gemini-cli@latest"
	default:
		return ""
	}
}

// Generate produces a GitHub Actions workflow YAML string from
// the given config.
func Generate(cfg WorkflowConfig) (string, error) {
	if cfg.Agent == "" {
		cfg.Agent = "anthropic-api"
	}

	if err := cfg.Validate(); err != nil {
		return "", fmt.Errorf("invalid config: %w", err)
	}

	data := templateData{
		Agent:        cfg.Agent,
		EnvVar:       AgentEnvVar(cfg.Agent),
		InstallCmd:   AgentInstallCmd(cfg.Agent),
		MinSeverity:  cfg.MinSeverity,
		PrvetVersion: cfg.PrvetVersion,
	}

	tmpl, err := template.New("workflow").Parse(workflowTemplate)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}

	return buf.String(), nil
}

// WriteWorkflow generates the workflow and writes it to the
// given path. Creates parent directories as needed. Returns an
// error if the file already exists and force is false.
func WriteWorkflow(cfg WorkflowConfig, outputPath string, force bool) error {
	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf(
				"workflow file already exists: %s "+
					"(use --force to overwrite)",
				outputPath)
		}
	}

	content, err := Generate(cfg)
	if err != nil {
		return err
	}

	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	if err := os.WriteFile(outputPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("write workflow: %w", err)
	}

	return nil
}

type templateData struct {
	Agent        string
	EnvVar       string
	InstallCmd   string
	MinSeverity  string
	PrvetVersion string
}

var workflowTemplate = `# prvet PR Review
# Generated by: prvet init-action
# Runs AI-powered code reviews on pull requests.
#
# Required setup:
#   - Add a repository secret named "{{ .EnvVar }}" with your API key

name: prvet

on:
  pull_request:
    types: [opened, synchronize, reopened]

permissions:
  contents: read
  pull-requests: write

jobs:
  review:
    runs-on: ubuntu-latest
    steps:
      - name: Checkout
        uses: actions/checkout@de0fac2e4500dabe0009e67214ff5f5447ce83dd  # v6.0.2
        with:
          fetch-depth: 0

      - name: Install prvet
        run: |
          set -euo pipefail
          {{- if .PrvetVersion }}
          PRVET_VERSION="{{ .PrvetVersion }}"
          {{- else }}
          PRVET_VERSION=$(curl -sfL https://api.github.com/repos/prvet-dev/prvet/releases/latest | grep '"tag_name"' | sed -E 's/.*"v?([^"]+)".*/\1/')
          {{- end }}
          ARCHIVE="prvet_${PRVET_VERSION}_linux_amd64.tar.gz"
          curl -sfLO "https://github.com/prvet-dev/prvet/releases/download/v${PRVET_VERSION}/${ARCHIVE}"
          curl -sfLO "https://github.com/prvet-dev/prvet/releases/download/v${PRVET_VERSION}/checksums.txt"
          grep -F "  ${ARCHIVE}" checksums.txt > verify.txt
          sha256sum --check verify.txt
          mkdir -p "$HOME/.local/bin"
          tar xzf "${ARCHIVE}" -C "$HOME/.local/bin" prvet
          echo "$HOME/.local/bin" >> "$GITHUB_PATH"
          rm -f "${ARCHIVE}" checksums.txt verify.txt
          "$HOME/.local/bin/prvet" version
{{- if .InstallCmd }}

      # TODO: Pin the agent CLI version for supply-chain safety.
      # Replace @latest with a specific version (e.g., @1.2.3).
      - name: Install agent
        run: |
          set -euo pipefail
          {{ .InstallCmd }}
{{- end }}

      - name: Run review
        env:
          GITHUB_TOKEN: ${{"{{"}} secrets.GITHUB_TOKEN {{"}}"}}
          {{ .EnvVar }}: ${{"{{"}} secrets.{{ .EnvVar }} {{"}}"}}
        run: |
          set -euo pipefail
          prvet review \
            --model "{{ .Agent }}" \
            {{- if .MinSeverity }}
            --min-severity "{{ .MinSeverity }}" \
            {{- end }}
            "https://github.com/${{"{{"}} github.repository {{"}}"}}/pull/${{"{{"}} github.event.pull_request.number {{"}}"}}"
`
