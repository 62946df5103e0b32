package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/shirokuma-tools/shirokuma-docs/internal/gitutil"
	"github.com/shirokuma-tools/shirokuma-docs/internal/output"
)

var (
	prState    string
	prWithDiff bool
)

var prCmd = &cobra.Command{
	Use:   "pr",
	Short: "Work with GitHub pull requests",
}

var prListCmd = &cobra.Command{
	Use:   "list",
	Short: "List pull requests of the configured repository",
	Args:  cobra.NoArgs,
	RunE:  runPRList,
}

var prGetCmd = &cobra.Command{
	Use:   "get <number|url>",
	Short: "Show a single pull request",
	Args:  cobra.ExactArgs(1),
	RunE:  runPRGet,
}

var prFilesCmd = &cobra.Command{
	Use:   "files <number|url>",
	Short: "List the changed files of a pull request, with patches",
	Args:  cobra.ExactArgs(1),
	RunE:  runPRFiles,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	prListCmd.Flags().StringVar(&prState, "state", "open", "Filter by state: open, closed, or all")
	prGetCmd.Flags().BoolVar(&prWithDiff, "diff", false, "Print the raw diff instead of JSON")

	prCmd.AddCommand(prListCmd, prGetCmd, prFilesCmd)
	rootCmd.AddCommand(prCmd)
}

func resolvePRRef(arg, cfgOwner, cfgRepo string) (owner, repo string, number int, err error) {
	if n, convErr := strconv.Atoi(arg); convErr == nil {
		if cfgOwner == "" || cfgRepo == "" {
			return "", "", 0, fmt.Errorf("github.owner and github.repo must be configured to use bare PR numbers")
		}
		return cfgOwner, cfgRepo, n, nil
	}
	return gitutil.ParsePullRequestURL(arg)
}

func runPRList(cmd *cobra.Command, _ []string) error {
	application, cleanup, err := setupApp()
	if err != nil {
		return err
	}
	defer cleanup()

	owner, repo, err := application.Repo()
	if err != nil {
		return err
	}
	client, err := application.GitHub(cmd.Context())
	if err != nil {
		return err
	}

	prs, err := client.ListPullRequests(cmd.Context(), owner, repo, prState)
	if err != nil {
		return err
	}
	return output.PrintJSON(os.Stdout, prs)
}

func runPRGet(cmd *cobra.Command, args []string) error {
	application, cleanup, err := setupApp()
	if err != nil {
		return err
	}
	defer cleanup()

	owner, repo, number, err := resolvePRRef(args[0], application.Cfg.GitHub.Owner, application.Cfg.GitHub.Repo)
	if err != nil {
		return err
	}
	client, err := application.GitHub(cmd.Context())
	if err != nil {
		return err
	}

	if prWithDiff {
		diff, err := client.GetPullRequestDiff(cmd.Context(), owner, repo, number)
		if err != nil {
			return err
		}
		fmt.Print(diff)
		return nil
	}

	pr, err := client.GetPullRequest(cmd.Context(), owner, repo, number)
	if err != nil {
		return err
	}
	return output.PrintJSON(os.Stdout, pr)
}

func runPRFiles(cmd *cobra.Command, args []string) error {
	application, cleanup, err := setupApp()
	if err != nil {
		return err
	}
	defer cleanup()

	owner, repo, number, err := resolvePRRef(args[0], application.Cfg.GitHub.Owner, application.Cfg.GitHub.Repo)
	if err != nil {
		return err
	}
	client, err := application.GitHub(cmd.Context())
	if err != nil {
		return err
	}

	files, err := client.GetChangedFiles(cmd.Context(), owner, repo, number)
	if err != nil {
		return err
	}
	return output.PrintJSON(os.Stdout, files)
}
