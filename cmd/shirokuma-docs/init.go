package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/shirokuma-tools/shirokuma-docs/internal/config"
	"github.com/shirokuma-tools/shirokuma-docs/internal/gitutil"
)

const configTemplate = `# shirokuma-docs configuration
github:
  owner: ""
  repo: ""
  # token comes from SKD_GITHUB_TOKEN or GITHUB_TOKEN

docs:
  source_dir: src
  test_dir: tests
  output_dir: docs/generated
  coverage_summary: coverage/coverage-summary.json

markdown:
  root: docs
  entry_points: [index.md, README.md]
  required_frontmatter: [title]
  token_budget: 128000
  split_token_threshold: 4000

cache:
  enabled: true
  path: .shirokuma-docs/cache.db
  ttl: 1h
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Scaffold the config file and gitignore entries",
	Long: `Scaffold the config file and gitignore entries.

Writes ` + config.DefaultConfigFile + ` (unless it already exists) and makes
sure the generated output and cache directories are gitignored.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	rootCmd.AddCommand(initCmd)
}

func runInit(_ *cobra.Command, _ []string) error {
	if _, err := os.Stat(config.DefaultConfigFile); err == nil {
		warnColor.Fprintf(os.Stderr, "%s already exists, leaving it unchanged\n", config.DefaultConfigFile)
	} else {
		if err := os.WriteFile(config.DefaultConfigFile, []byte(configTemplate), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", config.DefaultConfigFile, err)
		}
		successColor.Fprintf(os.Stderr, "Wrote %s\n", config.DefaultConfigFile)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	added, err := gitutil.EnsureIgnored(".", []string{
		cfg.Docs.OutputDir,
		filepath.Dir(cfg.Cache.Path),
	})
	if err != nil {
		return err
	}
	if len(added) == 0 {
		dimColor.Fprintln(os.Stderr, ".gitignore already covers the generated directories")
	}
	for _, pattern := range added {
		successColor.Fprintf(os.Stderr, "Added %s to .gitignore\n", pattern)
	}
	return nil
}
