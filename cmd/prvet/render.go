package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/prvet-dev/prvet/internal/fix"
	"github.com/prvet-dev/prvet/internal/review"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("46"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("226"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	severityStyles = map[string]lipgloss.Style{
		"critical": errStyle,
		"major":    warnStyle,
		"minor":    dimStyle,
	}
)

func init() {
	// Plain output when piped.
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		plain := lipgloss.NewStyle()
		headerStyle, okStyle, warnStyle, errStyle, dimStyle = plain, plain, plain, plain, plain
		severityStyles = map[string]lipgloss.Style{
			"critical": plain, "major": plain, "minor": plain,
		}
	}
}

func severityStyle(sev string) lipgloss.Style {
	if s, ok := severityStyles[strings.ToLower(sev)]; ok {
		return s
	}
	return dimStyle
}

// renderReviewSummary prints the outcome of a review run.
func renderReviewSummary(results []review.FileResult, accepted []review.Candidate, skipped []review.Skipped) {
	fmt.Println(headerStyle.Render("Review summary"))

	var failed int
	for _, r := range results {
		if r.Failed() {
			failed++
			fmt.Printf("  %s %s: %s\n", errStyle.Render("✗"), r.Task.Path, r.Err)
		}
	}

	byFile := make(map[string]int)
	for _, c := range accepted {
		byFile[c.Path]++
	}
	for _, r := range results {
		if r.Failed() {
			continue
		}
		n := byFile[r.Task.Path]
		if n == 0 {
			fmt.Printf("  %s %s: no issues\n", okStyle.Render("✓"), r.Task.Path)
		} else {
			fmt.Printf("  %s %s: %d comment(s)\n", warnStyle.Render("•"), r.Task.Path, n)
		}
	}

	for _, c := range accepted {
		sev := c.Severity
		if sev == "" {
			sev = "minor"
		}
		fmt.Printf("    %s %s:%d %s\n",
			severityStyle(sev).Render("["+strings.ToUpper(sev)+"]"), c.Path, c.Line, truncate(c.Body, 80))
	}

	if len(skipped) > 0 {
		fmt.Println(dimStyle.Render(fmt.Sprintf("  %d comment(s) skipped (outside the diff)", len(skipped))))
		if verbose {
			for _, s := range skipped {
				fmt.Println(dimStyle.Render(fmt.Sprintf("    %s:%d: %s", s.Path, s.Line, s.Reason)))
			}
		}
	}

	fmt.Printf("%d file(s) reviewed, %d comment(s), %d skipped, %d failure(s)\n",
		len(results), len(accepted), len(skipped), failed)
}

// renderFixSummary prints the outcome of a fix run.
func renderFixSummary(results []fix.Result, committed string) {
	fmt.Println(headerStyle.Render("Fix summary"))

	var applied, failed int
	for _, r := range results {
		switch {
		case r.Err != nil:
			failed++
			fmt.Printf("  %s %s: %v\n", errStyle.Render("✗"), r.Path, r.Err)
		case r.ChangesMade == "No changes needed":
			fmt.Printf("  %s %s: no changes needed\n", dimStyle.Render("-"), r.Path)
		default:
			applied++
			fmt.Printf("  %s %s: %s\n", okStyle.Render("✓"), r.Path, truncate(r.Reasoning, 80))
		}
	}

	fmt.Printf("%d comment(s) processed, %d fix(es) applied, %d failure(s)\n",
		len(results), applied, failed)
	if committed != "" {
		fmt.Printf("Pushed commit %s\n", okStyle.Render(shortSHA(committed)))
	}
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}
