package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/shirokuma-tools/shirokuma-docs/internal/app"
	"github.com/shirokuma-tools/shirokuma-docs/internal/mdbuild"
	"github.com/shirokuma-tools/shirokuma-docs/internal/output"
	"github.com/shirokuma-tools/shirokuma-docs/internal/site"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Lint and build the markdown documentation tree",
}

var docsLintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Check the markdown tree: frontmatter, links, cycles, orphans, budgets",
	Long: `Check the markdown tree.

Validates required frontmatter, resolves relative links, detects broken
links, dependency cycles, and orphaned documents, flags documents over
the split threshold, and checks the total token budget. The full report
is printed as JSON on stdout; the command fails when issues are found.`,
	Args: cobra.NoArgs,
	RunE: runDocsLint,
}

var docsBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the markdown report pages of the doc site",
	Args:  cobra.NoArgs,
	RunE:  runDocsBuild,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	docsCmd.AddCommand(docsLintCmd, docsBuildCmd)
	rootCmd.AddCommand(docsCmd)
}

func runDocsLint(_ *cobra.Command, _ []string) error {
	application, cleanup, err := setupApp()
	if err != nil {
		return err
	}
	defer cleanup()

	report, err := mdbuild.Lint(application.Cfg.Markdown.Root, application.Cfg.Markdown, application.Logger, time.Now())
	if err != nil {
		return err
	}
	printLintIssues(report)

	if err := output.PrintJSON(os.Stdout, report); err != nil {
		return err
	}
	if !report.Clean() {
		return fmt.Errorf("markdown lint found %d issues", len(report.Issues))
	}
	successColor.Fprintf(os.Stderr, "%d documents clean (~%d tokens)\n", report.Documents, report.TotalTokens)
	return nil
}

func runDocsBuild(_ *cobra.Command, _ []string) error {
	application, cleanup, err := setupApp()
	if err != nil {
		return err
	}
	defer cleanup()

	renderer, err := site.New(application.Cfg.Docs.OutputDir)
	if err != nil {
		return err
	}
	report, err := generateMarkdownReport(application, renderer)
	if err != nil {
		return err
	}
	printLintIssues(report)
	return output.PrintJSON(os.Stdout, report)
}

// generateMarkdownReport lints the markdown tree and renders the report
// page. Unlike lint, a build succeeds even with findings; they end up in
// the report.
func generateMarkdownReport(application *app.App, renderer *site.Renderer) (*mdbuild.Report, error) {
	report, err := mdbuild.Lint(application.Cfg.Markdown.Root, application.Cfg.Markdown, application.Logger, time.Now())
	if err != nil {
		return nil, err
	}
	if err := renderer.RenderMarkdownReport(report); err != nil {
		return nil, err
	}
	return report, nil
}

func printLintIssues(report *mdbuild.Report) {
	for _, issue := range report.Issues {
		loc := issue.Path
		if loc == "" {
			loc = report.Root
		}
		switch issue.Kind {
		case "frontmatter", "broken-link", "cycle":
			errorColor.Fprintf(os.Stderr, "%s: %s: %s\n", issue.Kind, loc, issue.Message)
		default:
			warnColor.Fprintf(os.Stderr, "%s: %s: %s\n", issue.Kind, loc, issue.Message)
		}
	}
}
