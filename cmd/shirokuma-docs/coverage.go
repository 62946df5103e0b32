package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/shirokuma-tools/shirokuma-docs/internal/app"
	"github.com/shirokuma-tools/shirokuma-docs/internal/coverage"
	"github.com/shirokuma-tools/shirokuma-docs/internal/output"
	"github.com/shirokuma-tools/shirokuma-docs/internal/site"
	"github.com/shirokuma-tools/shirokuma-docs/internal/testcatalog"
)

var coverageSummaryPath string

var coverageCmd = &cobra.Command{
	Use:   "coverage",
	Short: "Generate the coverage report from an istanbul summary",
	Long: `Generate the coverage report from an istanbul summary.

Parses coverage-summary.json, joins it with the test-case catalog, writes
coverage.json and coverage.html with per-file percentages and threshold
coloring, and prints the JSON artifact on stdout.`,
	Args: cobra.NoArgs,
	RunE: runCoverage,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	coverageCmd.Flags().StringVar(&coverageSummaryPath, "summary", "", "Path to coverage-summary.json (defaults to docs.coverage_summary)")
	rootCmd.AddCommand(coverageCmd)
}

func runCoverage(cmd *cobra.Command, _ []string) error {
	application, cleanup, err := setupApp()
	if err != nil {
		return err
	}
	defer cleanup()

	renderer, err := site.New(application.Cfg.Docs.OutputDir)
	if err != nil {
		return err
	}
	report, err := generateCoverage(application, renderer)
	if err != nil {
		return err
	}
	return output.PrintJSON(os.Stdout, report)
}

func generateCoverage(application *app.App, renderer *site.Renderer) (*coverage.Report, error) {
	summaryPath := coverageSummaryPath
	if summaryPath == "" {
		summaryPath = application.Cfg.Docs.CoverageSummary
	}

	catalog, err := testcatalog.Scan(application.Cfg.Docs.TestDir, application.Logger, time.Now())
	if err != nil {
		return nil, err
	}

	projectRoot, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	report, err := coverage.Load(summaryPath, projectRoot, catalog, time.Now())
	if err != nil {
		return nil, err
	}

	if err := renderer.RenderCoverage(report); err != nil {
		return nil, err
	}
	return report, nil
}
