package main

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/shirokuma-tools/shirokuma-docs/internal/app"
	"github.com/shirokuma-tools/shirokuma-docs/internal/core"
	"github.com/shirokuma-tools/shirokuma-docs/internal/output"
	"github.com/shirokuma-tools/shirokuma-docs/internal/site"
	"github.com/shirokuma-tools/shirokuma-docs/internal/testcatalog"
)

var testcatalogCmd = &cobra.Command{
	Use:   "testcatalog",
	Short: "Generate the test-case catalog from test files",
	Long: `Generate the test-case catalog from test files.

Scrapes @testcase JSDoc tags and describe/it/test block titles from the
configured test directory, writes testcatalog.json and testcatalog.html,
and prints the JSON artifact on stdout.`,
	Args: cobra.NoArgs,
	RunE: runTestCatalog,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	rootCmd.AddCommand(testcatalogCmd)
}

func runTestCatalog(cmd *cobra.Command, _ []string) error {
	application, cleanup, err := setupApp()
	if err != nil {
		return err
	}
	defer cleanup()

	renderer, err := site.New(application.Cfg.Docs.OutputDir)
	if err != nil {
		return err
	}
	catalog, err := generateTestCatalog(cmd.Context(), application, renderer)
	if err != nil {
		return err
	}
	return output.PrintJSON(os.Stdout, catalog)
}

func generateTestCatalog(ctx context.Context, application *app.App, renderer *site.Renderer) (*testcatalog.Catalog, error) {
	start := time.Now()
	catalog, err := testcatalog.Scan(application.Cfg.Docs.TestDir, application.Logger, time.Now())
	if err != nil {
		return nil, err
	}

	if err := renderer.RenderTestCatalog(catalog); err != nil {
		return nil, err
	}
	recordScanRun(ctx, application, &core.ScanRun{
		Kind:       "testcatalog",
		SourceDir:  application.Cfg.Docs.TestDir,
		Files:      catalog.Files,
		StartedAt:  start,
		FinishedAt: time.Now(),
	})
	return catalog, nil
}
