package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shirokuma-tools/shirokuma-docs/internal/site"
)

var previewWidth int

var previewCmd = &cobra.Command{
	Use:   "preview <file.md>",
	Short: "Render a markdown document in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE:  runPreview,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	previewCmd.Flags().IntVar(&previewWidth, "width", 100, "Wrap width")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(_ *cobra.Command, args []string) error {
	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	rendered, err := site.PreviewMarkdown(string(content), previewWidth)
	if err != nil {
		return err
	}
	fmt.Print(rendered)
	return nil
}
