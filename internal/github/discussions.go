package github

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/shurcooL/githubv4"

	"github.com/shirokuma-tools/shirokuma-docs/internal/core"
)

type discussionNode struct {
	ID        githubv4.String
	Number    githubv4.Int
	Title     githubv4.String
	Body      githubv4.String
	URL       githubv4.URI
	CreatedAt githubv4.DateTime
	UpdatedAt githubv4.DateTime
	Author    struct {
		Login githubv4.String
	}
	Category struct {
		Name githubv4.String
	}
}

func discussionFromNode(n discussionNode) core.Discussion {
	d := core.Discussion{
		ID:        string(n.ID),
		Number:    int(n.Number),
		Title:     string(n.Title),
		Body:      string(n.Body),
		Category:  string(n.Category.Name),
		Author:    string(n.Author.Login),
		CreatedAt: n.CreatedAt.Time,
		UpdatedAt: n.UpdatedAt.Time,
	}
	if n.URL.URL != nil {
		d.URL = n.URL.String()
	}
	return d
}

// ListDiscussions retrieves all discussions, newest first, optionally
// restricted to a category by name. Pagination is exhausted before
// returning.
func (g *graphQLClient) ListDiscussions(ctx context.Context, owner, repo, category string) ([]core.Discussion, error) {
	var categoryID *githubv4.ID
	if category != "" {
		id, err := g.resolveCategory(ctx, owner, repo, category)
		if err != nil {
			return nil, err
		}
		categoryID = &id
	}

	var q struct {
		Repository struct {
			Discussions struct {
				Nodes    []discussionNode
				PageInfo struct {
					EndCursor   githubv4.String
					HasNextPage bool
				}
			} `graphql:"discussions(first: 100, after: $cursor, categoryId: $categoryId, orderBy: {field: CREATED_AT, direction: DESC})"`
		} `graphql:"repository(owner: $owner, name: $name)"`
	}
	vars := map[string]any{
		"owner":      githubv4.String(owner),
		"name":       githubv4.String(repo),
		"cursor":     (*githubv4.String)(nil),
		"categoryId": categoryID,
	}

	var all []core.Discussion
	for {
		if err := g.gql.Query(ctx, &q, vars); err != nil {
			g.logger.Error("failed to list discussions", "owner", owner, "repo", repo, "error", err)
			return nil, err
		}
		for _, n := range q.Repository.Discussions.Nodes {
			all = append(all, discussionFromNode(n))
		}
		if !q.Repository.Discussions.PageInfo.HasNextPage {
			break
		}
		vars["cursor"] = githubv4.NewString(q.Repository.Discussions.PageInfo.EndCursor)
	}
	return all, nil
}

// GetDiscussion retrieves one discussion by number.
func (g *graphQLClient) GetDiscussion(ctx context.Context, owner, repo string, number int) (*core.Discussion, error) {
	var q struct {
		Repository struct {
			Discussion discussionNode `graphql:"discussion(number: $number)"`
		} `graphql:"repository(owner: $owner, name: $name)"`
	}
	vars := map[string]any{
		"owner":  githubv4.String(owner),
		"name":   githubv4.String(repo),
		"number": githubv4.Int(number),
	}
	if err := g.gql.Query(ctx, &q, vars); err != nil {
		g.logger.Error("failed to get discussion", "owner", owner, "repo", repo, "number", number, "error", err)
		return nil, err
	}
	d := discussionFromNode(q.Repository.Discussion)
	return &d, nil
}

// ListDiscussionCategories returns the category taxonomy of the repository,
// sorted by name.
func (g *graphQLClient) ListDiscussionCategories(ctx context.Context, owner, repo string) ([]core.DiscussionCategory, error) {
	var q struct {
		Repository struct {
			DiscussionCategories struct {
				Nodes []struct {
					ID   githubv4.ID
					Name githubv4.String
				}
			} `graphql:"discussionCategories(first: 25)"`
		} `graphql:"repository(owner: $owner, name: $name)"`
	}
	vars := map[string]any{
		"owner": githubv4.String(owner),
		"name":  githubv4.String(repo),
	}
	if err := g.gql.Query(ctx, &q, vars); err != nil {
		g.logger.Error("failed to list discussion categories", "owner", owner, "repo", repo, "error", err)
		return nil, err
	}

	var categories []core.DiscussionCategory
	for _, n := range q.Repository.DiscussionCategories.Nodes {
		categories = append(categories, core.DiscussionCategory{
			ID:   fmt.Sprintf("%v", n.ID),
			Name: string(n.Name),
		})
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

// CreateDiscussion opens a new discussion in the named category. Category
// matching is case-insensitive; an unknown category errors with the valid
// names.
func (g *graphQLClient) CreateDiscussion(ctx context.Context, owner, repo, category, title, body string) (*core.Discussion, error) {
	repoID, err := g.repositoryID(ctx, owner, repo)
	if err != nil {
		return nil, err
	}
	categoryID, err := g.resolveCategory(ctx, owner, repo, category)
	if err != nil {
		return nil, err
	}

	var m struct {
		CreateDiscussion struct {
			Discussion discussionNode
		} `graphql:"createDiscussion(input: $input)"`
	}
	input := githubv4.CreateDiscussionInput{
		RepositoryID: repoID,
		CategoryID:   categoryID,
		Title:        githubv4.String(title),
		Body:         githubv4.String(body),
	}
	if err := g.gql.Mutate(ctx, &m, input, nil); err != nil {
		g.logger.Error("failed to create discussion", "owner", owner, "repo", repo, "category", category, "error", err)
		return nil, err
	}
	d := discussionFromNode(m.CreateDiscussion.Discussion)
	return &d, nil
}

func (g *graphQLClient) repositoryID(ctx context.Context, owner, repo string) (githubv4.ID, error) {
	var q struct {
		Repository struct {
			ID githubv4.ID
		} `graphql:"repository(owner: $owner, name: $name)"`
	}
	vars := map[string]any{
		"owner": githubv4.String(owner),
		"name":  githubv4.String(repo),
	}
	if err := g.gql.Query(ctx, &q, vars); err != nil {
		return nil, fmt.Errorf("failed to resolve repository %s/%s: %w", owner, repo, err)
	}
	return q.Repository.ID, nil
}

func (g *graphQLClient) resolveCategory(ctx context.Context, owner, repo, name string) (githubv4.ID, error) {
	categories, err := g.ListDiscussionCategories(ctx, owner, repo)
	if err != nil {
		return nil, err
	}
	id, err := matchCategory(categories, name)
	if err != nil {
		return nil, err
	}
	return githubv4.ID(id), nil
}

// matchCategory finds a category by name, case-insensitively. An unknown
// name errors with the valid ones.
func matchCategory(categories []core.DiscussionCategory, name string) (string, error) {
	var names []string
	for _, c := range categories {
		if strings.EqualFold(c.Name, name) {
			return c.ID, nil
		}
		names = append(names, c.Name)
	}
	return "", fmt.Errorf("unknown discussion category %q (have: %s)", name, strings.Join(names, ", "))
}
