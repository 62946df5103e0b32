package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/shirokuma-tools/shirokuma-docs/internal/github"
	"github.com/shirokuma-tools/shirokuma-docs/internal/gitutil"
	"github.com/shirokuma-tools/shirokuma-docs/internal/output"
)

var (
	issueState  string
	issueLabels []string
	issueTitle  string
	issueBody   string
)

var issueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Work with GitHub issues",
}

var issueListCmd = &cobra.Command{
	Use:   "list",
	Short: "List issues of the configured repository",
	Args:  cobra.NoArgs,
	RunE:  runIssueList,
}

var issueGetCmd = &cobra.Command{
	Use:   "get <number|url>",
	Short: "Show a single issue",
	Args:  cobra.ExactArgs(1),
	RunE:  runIssueGet,
}

var issueCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Open a new issue",
	Args:  cobra.NoArgs,
	RunE:  runIssueCreate,
}

var issueCommentCmd = &cobra.Command{
	Use:   "comment <number|url>",
	Short: "Comment on an issue",
	Args:  cobra.ExactArgs(1),
	RunE:  runIssueComment,
}

var issueCloseCmd = &cobra.Command{
	Use:   "close <number|url>",
	Short: "Close an issue",
	Args:  cobra.ExactArgs(1),
	RunE:  runIssueClose,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	issueListCmd.Flags().StringVar(&issueState, "state", "open", "Filter by state: open, closed, or all")
	issueListCmd.Flags().StringSliceVar(&issueLabels, "label", nil, "Filter by label (repeatable)")

	issueCreateCmd.Flags().StringVar(&issueTitle, "title", "", "Issue title")
	issueCreateCmd.Flags().StringVar(&issueBody, "body", "", "Issue body")
	issueCreateCmd.Flags().StringSliceVar(&issueLabels, "label", nil, "Label to apply (repeatable)")
	_ = issueCreateCmd.MarkFlagRequired("title")

	issueCommentCmd.Flags().StringVar(&issueBody, "body", "", "Comment body")
	_ = issueCommentCmd.MarkFlagRequired("body")

	issueCmd.AddCommand(issueListCmd, issueGetCmd, issueCreateCmd, issueCommentCmd, issueCloseCmd)
	rootCmd.AddCommand(issueCmd)
}

// resolveIssueRef accepts a bare number or a full issue URL. A URL also
// pins owner/repo, overriding the configured ones.
func resolveIssueRef(arg, cfgOwner, cfgRepo string) (owner, repo string, number int, err error) {
	if n, convErr := strconv.Atoi(arg); convErr == nil {
		if cfgOwner == "" || cfgRepo == "" {
			return "", "", 0, fmt.Errorf("github.owner and github.repo must be configured to use bare issue numbers")
		}
		return cfgOwner, cfgRepo, n, nil
	}
	return gitutil.ParseIssueURL(arg)
}

func runIssueList(cmd *cobra.Command, _ []string) error {
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

	issues, err := client.ListIssues(cmd.Context(), owner, repo, github.IssueFilter{
		State:  issueState,
		Labels: issueLabels,
	})
	if err != nil {
		return err
	}
	return output.PrintJSON(os.Stdout, issues)
}

func runIssueGet(cmd *cobra.Command, args []string) error {
	application, cleanup, err := setupApp()
	if err != nil {
		return err
	}
	defer cleanup()

	owner, repo, number, err := resolveIssueRef(args[0], application.Cfg.GitHub.Owner, application.Cfg.GitHub.Repo)
	if err != nil {
		return err
	}
	client, err := application.GitHub(cmd.Context())
	if err != nil {
		return err
	}

	issue, err := client.GetIssue(cmd.Context(), owner, repo, number)
	if err != nil {
		return err
	}
	return output.PrintJSON(os.Stdout, issue)
}

func runIssueCreate(cmd *cobra.Command, _ []string) error {
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

	issue, err := client.CreateIssue(cmd.Context(), owner, repo, issueTitle, issueBody, issueLabels)
	if err != nil {
		return err
	}
	successColor.Fprintf(os.Stderr, "Created issue #%d\n", issue.GetNumber())
	return output.PrintJSON(os.Stdout, issue)
}

func runIssueComment(cmd *cobra.Command, args []string) error {
	application, cleanup, err := setupApp()
	if err != nil {
		return err
	}
	defer cleanup()

	owner, repo, number, err := resolveIssueRef(args[0], application.Cfg.GitHub.Owner, application.Cfg.GitHub.Repo)
	if err != nil {
		return err
	}
	client, err := application.GitHub(cmd.Context())
	if err != nil {
		return err
	}

	comment, err := client.CommentIssue(cmd.Context(), owner, repo, number, issueBody)
	if err != nil {
		return err
	}
	successColor.Fprintf(os.Stderr, "Commented on issue #%d\n", number)
	return output.PrintJSON(os.Stdout, comment)
}

func runIssueClose(cmd *cobra.Command, args []string) error {
	application, cleanup, err := setupApp()
	if err != nil {
		return err
	}
	defer cleanup()

	owner, repo, number, err := resolveIssueRef(args[0], application.Cfg.GitHub.Owner, application.Cfg.GitHub.Repo)
	if err != nil {
		return err
	}
	client, err := application.GitHub(cmd.Context())
	if err != nil {
		return err
	}

	issue, err := client.CloseIssue(cmd.Context(), owner, repo, number)
	if err != nil {
		return err
	}
	successColor.Fprintf(os.Stderr, "Closed issue #%d\n", number)
	return output.PrintJSON(os.Stdout, issue)
}
