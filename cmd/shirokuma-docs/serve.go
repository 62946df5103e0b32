package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shirokuma-tools/shirokuma-docs/internal/server"
)

var (
	serveAddr    string
	serveSiteDir string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the generated documentation site over HTTP",
	Long: `Serve the generated documentation site over HTTP.

Exposes the static site at /, the JSON artifacts under /api/v1/, and a
health endpoint at /health.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
	serveCmd.Flags().StringVar(&serveSiteDir, "site-dir", "", "Site directory to serve (defaults to docs.output_dir)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	application, cleanup, err := setupApp()
	if err != nil {
		return err
	}
	defer cleanup()

	siteDir := serveSiteDir
	if siteDir == "" {
		siteDir = application.Cfg.Docs.OutputDir
	}

	srv := server.NewServer(serveAddr, siteDir, application.Store, application.Logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-quit:
		application.Logger.Info("received shutdown signal")
	}

	return srv.Stop()
}
