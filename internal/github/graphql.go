package github

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/shurcooL/githubv4"

	"github.com/shirokuma-tools/shirokuma-docs/internal/core"
)

// graphqlService is the part of githubv4.Client we use, extracted so tests
// can substitute a fake.
type graphqlService interface {
	Query(ctx context.Context, q any, variables map[string]any) error
	Mutate(ctx context.Context, m any, input githubv4.Input, variables map[string]any) error
}

// ItemRef addresses one Projects v2 item, either directly by GraphQL node
// ID or indirectly by the number of the linked issue.
type ItemRef struct {
	ID          string
	IssueNumber int
}

// GraphQL defines the operations that have no REST equivalent: Discussions
// and Projects v2.
type GraphQL interface {
	ListDiscussions(ctx context.Context, owner, repo, category string) ([]core.Discussion, error)
	GetDiscussion(ctx context.Context, owner, repo string, number int) (*core.Discussion, error)
	CreateDiscussion(ctx context.Context, owner, repo, category, title, body string) (*core.Discussion, error)
	ListDiscussionCategories(ctx context.Context, owner, repo string) ([]core.DiscussionCategory, error)
	ListProjectItems(ctx context.Context, owner, repo string, projectNumber int) ([]core.ProjectItem, error)
	ListProjectFields(ctx context.Context, owner, repo string, projectNumber int) ([]core.ProjectField, error)
	UpdateProjectItemField(ctx context.Context, owner, repo string, projectNumber int, ref ItemRef, fieldName, value string) (*core.ProjectItem, error)
}

type graphQLClient struct {
	gql    graphqlService
	logger *slog.Logger
}

// NewGraphQLClient builds the GraphQL API wrapper on an authenticated http
// client (see NewHTTPClient).
func NewGraphQLClient(httpClient *http.Client, logger *slog.Logger) GraphQL {
	return &graphQLClient{gql: githubv4.NewClient(httpClient), logger: logger}
}
