package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/shirokuma-tools/shirokuma-docs/internal/app"
	"github.com/shirokuma-tools/shirokuma-docs/internal/wire"
)

var (
	githubToken string
	noCache     bool
)

// Color definitions
var (
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
	dimColor     = color.New(color.FgHiBlack)
)

var rootCmd = &cobra.Command{
	Use:   "shirokuma-docs",
	Short: "shirokuma-docs generates project documentation from source annotations and GitHub.",
	Long: `shirokuma-docs wraps the GitHub API for documentation workflows (issues,
pull requests, discussions, project boards) and generates a static
documentation site from source annotations: feature maps, test-case
catalogs, coverage reports, and a lintable markdown doc tree.

All commands print their results as JSON on stdout; logs go to stderr.`,
	SilenceUsage: true,
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&githubToken, "github-token", "t", "", "GitHub token (overrides config and SKD_GITHUB_TOKEN)")
	rootCmd.PersistentFlags().BoolVar(&noCache, "no-cache", false, "Bypass the local API cache")
}

// initConfig propagates the token flag to the environment the config
// loader reads from.
func initConfig() {
	if githubToken != "" {
		_ = os.Setenv("SKD_GITHUB_TOKEN", githubToken)
	}
}

// setupApp initializes the shared application components for a command run.
func setupApp() (*app.App, func(), error) {
	application, cleanup, err := wire.InitializeApp()
	if err != nil {
		return nil, nil, err
	}
	if noCache {
		application.Store = nil
	}
	return application, cleanup, nil
}
