package main

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/shirokuma-tools/shirokuma-docs/internal/annotation"
	"github.com/shirokuma-tools/shirokuma-docs/internal/app"
	"github.com/shirokuma-tools/shirokuma-docs/internal/core"
	"github.com/shirokuma-tools/shirokuma-docs/internal/featuremap"
	"github.com/shirokuma-tools/shirokuma-docs/internal/output"
	"github.com/shirokuma-tools/shirokuma-docs/internal/site"
)

var showProgress bool

var featuremapCmd = &cobra.Command{
	Use:   "featuremap",
	Short: "Generate the feature map from source annotations",
	Long: `Generate the feature map from source annotations.

Scans the configured source tree for JSDoc annotation blocks (@screen,
@component, @action, @table, @route, @uses) and exported Zod schemas,
writes featuremap.json and featuremap.html into the output directory, and
prints the JSON artifact on stdout.`,
	Args: cobra.NoArgs,
	RunE: runFeatureMap,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	featuremapCmd.Flags().BoolVar(&showProgress, "progress", true, "Show a progress bar during the scan")
	rootCmd.AddCommand(featuremapCmd)
}

func runFeatureMap(cmd *cobra.Command, _ []string) error {
	application, cleanup, err := setupApp()
	if err != nil {
		return err
	}
	defer cleanup()

	renderer, err := site.New(application.Cfg.Docs.OutputDir)
	if err != nil {
		return err
	}
	m, err := generateFeatureMap(cmd.Context(), application, renderer)
	if err != nil {
		return err
	}
	return output.PrintJSON(os.Stdout, m)
}

// generateFeatureMap scans the source tree, renders the artifact, and
// records the run in the scan history.
func generateFeatureMap(ctx context.Context, application *app.App, renderer *site.Renderer) (*featuremap.Map, error) {
	scanner, err := annotation.NewScanner(application.Cfg.Docs, application.Logger)
	if err != nil {
		return nil, err
	}
	scanner = scanner.WithProgress(showProgress)

	start := time.Now()
	result, err := scanner.Scan(ctx, application.Cfg.Docs.SourceDir)
	if err != nil {
		return nil, err
	}

	m, warnings := featuremap.Build(result, time.Now())
	for _, w := range warnings {
		warnColor.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	if err := renderer.RenderFeatureMap(m); err != nil {
		return nil, err
	}
	recordScanRun(ctx, application, &core.ScanRun{
		Kind:       "featuremap",
		SourceDir:  application.Cfg.Docs.SourceDir,
		Files:      result.FilesScanned,
		StartedAt:  start,
		FinishedAt: time.Now(),
	})
	return m, nil
}

// recordScanRun appends to the scan history when the cache store is
// available. History is best-effort.
func recordScanRun(ctx context.Context, application *app.App, run *core.ScanRun) {
	if application.Store == nil {
		return
	}
	if err := application.Store.RecordScanRun(ctx, run); err != nil {
		application.Logger.Warn("failed to record scan run", "kind", run.Kind, "error", err)
	}
}
