package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/shirokuma-tools/shirokuma-docs/internal/app"
	"github.com/shirokuma-tools/shirokuma-docs/internal/core"
	"github.com/shirokuma-tools/shirokuma-docs/internal/output"
)

var (
	discussionCategory string
	discussionTitle    string
	discussionBody     string
)

var discussionCmd = &cobra.Command{
	Use:   "discussion",
	Short: "Work with GitHub Discussions",
	Long: `Work with GitHub Discussions.

Discussions in well-known categories (e.g. "Handovers", "ADR") serve as a
lightweight structured-data store for documentation workflows.`,
}

var discussionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List discussions, optionally by category",
	Args:  cobra.NoArgs,
	RunE:  runDiscussionList,
}

var discussionGetCmd = &cobra.Command{
	Use:   "get <number>",
	Short: "Show a single discussion",
	Args:  cobra.ExactArgs(1),
	RunE:  runDiscussionGet,
}

var discussionCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Open a new discussion in a category",
	Args:  cobra.NoArgs,
	RunE:  runDiscussionCreate,
}

var discussionCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the discussion categories of the repository",
	Args:  cobra.NoArgs,
	RunE:  runDiscussionCategories,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	discussionListCmd.Flags().StringVar(&discussionCategory, "category", "", "Filter by category name")

	discussionCreateCmd.Flags().StringVar(&discussionCategory, "category", "", "Category name")
	discussionCreateCmd.Flags().StringVar(&discussionTitle, "title", "", "Discussion title")
	discussionCreateCmd.Flags().StringVar(&discussionBody, "body", "", "Discussion body")
	_ = discussionCreateCmd.MarkFlagRequired("category")
	_ = discussionCreateCmd.MarkFlagRequired("title")

	discussionCmd.AddCommand(discussionListCmd, discussionGetCmd, discussionCreateCmd, discussionCategoriesCmd)
	rootCmd.AddCommand(discussionCmd)
}

func discussionsCacheKey(owner, repo, category string) string {
	return fmt.Sprintf("discussions/%s/%s/%s", owner, repo, category)
}

func runDiscussionList(cmd *cobra.Command, _ []string) error {
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

	key := discussionsCacheKey(owner, repo, discussionCategory)
	discussions, err := app.CachedFetch(cmd.Context(), application.Store, application.Logger, key, application.Cfg.Cache.TTL,
		func() ([]core.Discussion, error) {
			return gql.ListDiscussions(cmd.Context(), owner, repo, discussionCategory)
		})
	if err != nil {
		return err
	}
	return output.PrintJSON(os.Stdout, discussions)
}

func runDiscussionGet(cmd *cobra.Command, args []string) error {
	application, cleanup, err := setupApp()
	if err != nil {
		return err
	}
	defer cleanup()

	number, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("discussion number must be an integer, got %q", args[0])
	}

	owner, repo, err := application.Repo()
	if err != nil {
		return err
	}
	gql, err := application.GraphQL(cmd.Context())
	if err != nil {
		return err
	}

	discussion, err := gql.GetDiscussion(cmd.Context(), owner, repo, number)
	if err != nil {
		return err
	}
	return output.PrintJSON(os.Stdout, discussion)
}

func runDiscussionCreate(cmd *cobra.Command, _ []string) error {
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

	discussion, err := gql.CreateDiscussion(cmd.Context(), owner, repo, discussionCategory, discussionTitle, discussionBody)
	if err != nil {
		return err
	}

	// The listing for this category (and the unfiltered one) is now stale.
	app.InvalidateCache(cmd.Context(), application.Store, application.Logger, discussionsCacheKey(owner, repo, discussionCategory))
	app.InvalidateCache(cmd.Context(), application.Store, application.Logger, discussionsCacheKey(owner, repo, ""))

	successColor.Fprintf(os.Stderr, "Created discussion #%d in %s\n", discussion.Number, discussion.Category)
	return output.PrintJSON(os.Stdout, discussion)
}

func runDiscussionCategories(cmd *cobra.Command, _ []string) error {
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

	categories, err := gql.ListDiscussionCategories(cmd.Context(), owner, repo)
	if err != nil {
		return err
	}
	return output.PrintJSON(os.Stdout, categories)
}
