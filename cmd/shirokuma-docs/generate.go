package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/shirokuma-tools/shirokuma-docs/internal/site"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Build the complete documentation site",
	Long: `Build the complete documentation site.

Runs the feature map scan, the test-case catalog, the coverage report
(when a summary file exists), and the markdown report, then writes the
landing page linking them all.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	generateCmd.Flags().BoolVar(&showProgress, "progress", true, "Show a progress bar during the scan")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	application, cleanup, err := setupApp()
	if err != nil {
		return err
	}
	defer cleanup()

	renderer, err := site.New(application.Cfg.Docs.OutputDir)
	if err != nil {
		return err
	}

	if _, err := generateFeatureMap(cmd.Context(), application, renderer); err != nil {
		return err
	}
	if _, err := generateTestCatalog(cmd.Context(), application, renderer); err != nil {
		return err
	}

	// Coverage is optional: most doc builds run without a fresh test run.
	summaryPath := application.Cfg.Docs.CoverageSummary
	if _, err := os.Stat(summaryPath); err == nil {
		if _, err := generateCoverage(application, renderer); err != nil {
			return err
		}
	} else {
		dimColor.Fprintf(os.Stderr, "skipping coverage: %s not found\n", summaryPath)
	}

	report, err := generateMarkdownReport(application, renderer)
	if err != nil {
		return err
	}
	printLintIssues(report)

	if err := renderer.RenderIndex(time.Now()); err != nil {
		return err
	}
	successColor.Fprintf(os.Stderr, "Site written to %s\n", application.Cfg.Docs.OutputDir)
	return nil
}
