package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shirokuma-tools/shirokuma-docs/internal/app"
	"github.com/shirokuma-tools/shirokuma-docs/internal/core"
	"github.com/shirokuma-tools/shirokuma-docs/internal/github"
	"github.com/shirokuma-tools/shirokuma-docs/internal/output"
)

var (
	projectNumber int
	projectItemID string
	projectIssue  int
	projectField  string
	projectValue  string
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Work with GitHub Projects (v2) boards",
}

var projectItemsCmd = &cobra.Command{
	Use:   "items",
	Short: "List the items of a project board",
	Args:  cobra.NoArgs,
	RunE:  runProjectItems,
}

var projectFieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "List the field definitions of a project board",
	Args:  cobra.NoArgs,
	RunE:  runProjectFields,
}

var projectUpdateItemCmd = &cobra.Command{
	Use:   "update-item",
	Short: "Set a field value on a project item",
	Long: `Set a field value on a project item.

The item is addressed either directly with --item-id (GraphQL node ID) or
indirectly with --issue (the number of the linked issue). Single-select
fields match the value against their option names.`,
	Args: cobra.NoArgs,
	RunE: runProjectUpdateItem,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	projectCmd.PersistentFlags().IntVarP(&projectNumber, "project", "p", 0, "Project board number")
	_ = projectCmd.MarkPersistentFlagRequired("project")

	projectUpdateItemCmd.Flags().StringVar(&projectItemID, "item-id", "", "Project item node ID")
	projectUpdateItemCmd.Flags().IntVar(&projectIssue, "issue", 0, "Number of the linked issue")
	projectUpdateItemCmd.Flags().StringVar(&projectField, "field", "", "Field name")
	projectUpdateItemCmd.Flags().StringVar(&projectValue, "value", "", "New value")
	_ = projectUpdateItemCmd.MarkFlagRequired("field")
	_ = projectUpdateItemCmd.MarkFlagRequired("value")

	projectCmd.AddCommand(projectItemsCmd, projectFieldsCmd, projectUpdateItemCmd)
	rootCmd.AddCommand(projectCmd)
}

func projectItemsCacheKey(owner, repo string, number int) string {
	return fmt.Sprintf("project-items/%s/%s/%d", owner, repo, number)
}

func runProjectItems(cmd *cobra.Command, _ []string) error {
	application, cleanup, err := setupApp()
	if err != nil {
		return err
	}
	defer cleanup()

	owner, repo, err := application.Repo()
	if err != nil {
		return err
	}
	gql, err := application.GraphQL(cmd.Context())
	if err != nil {
		return err
	}

	key := projectItemsCacheKey(owner, repo, projectNumber)
	items, err := app.CachedFetch(cmd.Context(), application.Store, application.Logger, key, application.Cfg.Cache.TTL,
		func() ([]core.ProjectItem, error) {
			return gql.ListProjectItems(cmd.Context(), owner, repo, projectNumber)
		})
	if err != nil {
		return err
	}
	return output.PrintJSON(os.Stdout, items)
}

func runProjectFields(cmd *cobra.Command, _ []string) error {
	application, cleanup, err := setupApp()
	if err != nil {
		return err
	}
	defer cleanup()

	owner, repo, err := application.Repo()
	if err != nil {
		return err
	}
	gql, err := application.GraphQL(cmd.Context())
	if err != nil {
		return err
	}

	fields, err := gql.ListProjectFields(cmd.Context(), owner, repo, projectNumber)
	if err != nil {
		return err
	}
	return output.PrintJSON(os.Stdout, fields)
}

func runProjectUpdateItem(cmd *cobra.Command, _ []string) error {
	if projectItemID == "" && projectIssue == 0 {
		return fmt.Errorf("either --item-id or --issue is required")
	}

	application, cleanup, err := setupApp()
	if err != nil {
		return err
	}
	defer cleanup()

	owner, repo, err := application.Repo()
	if err != nil {
		return err
	}
	gql, err := application.GraphQL(cmd.Context())
	if err != nil {
		return err
	}

	item, err := gql.UpdateProjectItemField(cmd.Context(), owner, repo, projectNumber,
		github.ItemRef{ID: projectItemID, IssueNumber: projectIssue}, projectField, projectValue)
	if err != nil {
		return err
	}

	app.InvalidateCache(cmd.Context(), application.Store, application.Logger, projectItemsCacheKey(owner, repo, projectNumber))

	successColor.Fprintf(os.Stderr, "Updated %s on item %s\n", projectField, item.ID)
	return output.PrintJSON(os.Stdout, item)
}
