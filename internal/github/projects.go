package github

import (
	"context"
	"fmt"
	"strings"

	"github.com/shurcooL/githubv4"

	"github.com/shirokuma-tools/shirokuma-docs/internal/core"
)

type fieldValueNode struct {
	TextValue struct {
		Text  githubv4.String
		Field struct {
			Common struct {
				Name githubv4.String
			} `graphql:"... on ProjectV2FieldCommon"`
		}
	} `graphql:"... on ProjectV2ItemFieldTextValue"`
	SingleSelectValue struct {
		Name  githubv4.String
		Field struct {
			Common struct {
				Name githubv4.String
			} `graphql:"... on ProjectV2FieldCommon"`
		}
	} `graphql:"... on ProjectV2ItemFieldSingleSelectValue"`
	NumberValue struct {
		Number githubv4.Float
		Field  struct {
			Common struct {
				Name githubv4.String
			} `graphql:"... on ProjectV2FieldCommon"`
		}
	} `graphql:"... on ProjectV2ItemFieldNumberValue"`
	DateValue struct {
		Date  githubv4.String
		Field struct {
			Common struct {
				Name githubv4.String
			} `graphql:"... on ProjectV2FieldCommon"`
		}
	} `graphql:"... on ProjectV2ItemFieldDateValue"`
}

type projectItemNode struct {
	ID          githubv4.String
	FieldValues struct {
		Nodes []fieldValueNode
	} `graphql:"fieldValues(first: 25)"`
	Content struct {
		Issue struct {
			Number githubv4.Int
			Title  githubv4.String
			URL    githubv4.URI
		} `graphql:"... on Issue"`
		PullRequest struct {
			Number githubv4.Int
			Title  githubv4.String
			URL    githubv4.URI
		} `graphql:"... on PullRequest"`
		DraftIssue struct {
			Title githubv4.String
		} `graphql:"... on DraftIssue"`
	}
}

func itemFromNode(n projectItemNode) core.ProjectItem {
	item := core.ProjectItem{
		ID:     string(n.ID),
		Fields: map[string]string{},
	}

	switch {
	case n.Content.Issue.Number != 0:
		item.IssueNumber = int(n.Content.Issue.Number)
		item.Title = string(n.Content.Issue.Title)
		if n.Content.Issue.URL.URL != nil {
			item.URL = n.Content.Issue.URL.String()
		}
	case n.Content.PullRequest.Number != 0:
		item.IssueNumber = int(n.Content.PullRequest.Number)
		item.Title = string(n.Content.PullRequest.Title)
		if n.Content.PullRequest.URL.URL != nil {
			item.URL = n.Content.PullRequest.URL.String()
		}
	default:
		item.Title = string(n.Content.DraftIssue.Title)
	}

	for _, fv := range n.FieldValues.Nodes {
		switch {
		case fv.SingleSelectValue.Field.Common.Name != "":
			item.Fields[string(fv.SingleSelectValue.Field.Common.Name)] = string(fv.SingleSelectValue.Name)
		case fv.TextValue.Field.Common.Name != "":
			item.Fields[string(fv.TextValue.Field.Common.Name)] = string(fv.TextValue.Text)
		case fv.NumberValue.Field.Common.Name != "":
			item.Fields[string(fv.NumberValue.Field.Common.Name)] = strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", float64(fv.NumberValue.Number)), "0"), ".")
		case fv.DateValue.Field.Common.Name != "":
			item.Fields[string(fv.DateValue.Field.Common.Name)] = string(fv.DateValue.Date)
		}
	}
	if len(item.Fields) == 0 {
		item.Fields = nil
	}
	return item
}

// projectID resolves the repository-linked Projects v2 board by number.
func (g *graphQLClient) projectID(ctx context.Context, owner, repo string, projectNumber int) (githubv4.ID, error) {
	var q struct {
		Repository struct {
			ProjectV2 struct {
				ID githubv4.ID
			} `graphql:"projectV2(number: $number)"`
		} `graphql:"repository(owner: $owner, name: $name)"`
	}
	vars := map[string]any{
		"owner":  githubv4.String(owner),
		"name":   githubv4.String(repo),
		"number": githubv4.Int(projectNumber),
	}
	if err := g.gql.Query(ctx, &q, vars); err != nil {
		return nil, fmt.Errorf("failed to resolve project %d on %s/%s: %w", projectNumber, owner, repo, err)
	}
	return q.Repository.ProjectV2.ID, nil
}

// ListProjectItems retrieves all rows of the board, exhausting pagination.
func (g *graphQLClient) ListProjectItems(ctx context.Context, owner, repo string, projectNumber int) ([]core.ProjectItem, error) {
	var q struct {
		Repository struct {
			ProjectV2 struct {
				Items struct {
					Nodes    []projectItemNode
					PageInfo struct {
						EndCursor   githubv4.String
						HasNextPage bool
					}
				} `graphql:"items(first: 100, after: $cursor)"`
			} `graphql:"projectV2(number: $number)"`
		} `graphql:"repository(owner: $owner, name: $name)"`
	}
	vars := map[string]any{
		"owner":  githubv4.String(owner),
		"name":   githubv4.String(repo),
		"number": githubv4.Int(projectNumber),
		"cursor": (*githubv4.String)(nil),
	}

	var all []core.ProjectItem
	for {
		if err := g.gql.Query(ctx, &q, vars); err != nil {
			g.logger.Error("failed to list project items", "owner", owner, "repo", repo, "project", projectNumber, "error", err)
			return nil, err
		}
		for _, n := range q.Repository.ProjectV2.Items.Nodes {
			all = append(all, itemFromNode(n))
		}
		if !q.Repository.ProjectV2.Items.PageInfo.HasNextPage {
			break
		}
		vars["cursor"] = githubv4.NewString(q.Repository.ProjectV2.Items.PageInfo.EndCursor)
	}
	return all, nil
}

// ListProjectFields returns the board's field definitions, including
// single-select options.
func (g *graphQLClient) ListProjectFields(ctx context.Context, owner, repo string, projectNumber int) ([]core.ProjectField, error) {
	var q struct {
		Repository struct {
			ProjectV2 struct {
				Fields struct {
					Nodes []struct {
						Common struct {
							ID   githubv4.ID
							Name githubv4.String
						} `graphql:"... on ProjectV2FieldCommon"`
						SingleSelect struct {
							Options []struct {
								ID   githubv4.String
								Name githubv4.String
							}
						} `graphql:"... on ProjectV2SingleSelectField"`
					}
				} `graphql:"fields(first: 50)"`
			} `graphql:"projectV2(number: $number)"`
		} `graphql:"repository(owner: $owner, name: $name)"`
	}
	vars := map[string]any{
		"owner":  githubv4.String(owner),
		"name":   githubv4.String(repo),
		"number": githubv4.Int(projectNumber),
	}
	if err := g.gql.Query(ctx, &q, vars); err != nil {
		g.logger.Error("failed to list project fields", "owner", owner, "repo", repo, "project", projectNumber, "error", err)
		return nil, err
	}

	var fields []core.ProjectField
	for _, n := range q.Repository.ProjectV2.Fields.Nodes {
		f := core.ProjectField{
			ID:   fmt.Sprintf("%v", n.Common.ID),
			Name: string(n.Common.Name),
		}
		for _, o := range n.SingleSelect.Options {
			f.Options = append(f.Options, core.ProjectFieldOption{
				ID:   string(o.ID),
				Name: string(o.Name),
			})
		}
		fields = append(fields, f)
	}
	return fields, nil
}

// UpdateProjectItemField sets one field on one item. The item is addressed
// by node ID, or found by linked issue number when the ID is empty. For
// single-select fields the value is matched against option names.
func (g *graphQLClient) UpdateProjectItemField(ctx context.Context, owner, repo string, projectNumber int, ref ItemRef, fieldName, value string) (*core.ProjectItem, error) {
	projectID, err := g.projectID(ctx, owner, repo, projectNumber)
	if err != nil {
		return nil, err
	}

	itemID := ref.ID
	if itemID == "" {
		if ref.IssueNumber == 0 {
			return nil, fmt.Errorf("either an item ID or an issue number is required")
		}
		items, err := g.ListProjectItems(ctx, owner, repo, projectNumber)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			if item.IssueNumber == ref.IssueNumber {
				itemID = item.ID
				break
			}
		}
		if itemID == "" {
			return nil, fmt.Errorf("no project item linked to issue #%d", ref.IssueNumber)
		}
	}

	fields, err := g.ListProjectFields(ctx, owner, repo, projectNumber)
	if err != nil {
		return nil, err
	}
	fieldValue, fieldID, err := buildFieldValue(fields, fieldName, value)
	if err != nil {
		return nil, err
	}

	var m struct {
		UpdateProjectV2ItemFieldValue struct {
			ProjectV2Item struct {
				ID githubv4.String
			}
		} `graphql:"updateProjectV2ItemFieldValue(input: $input)"`
	}
	input := githubv4.UpdateProjectV2ItemFieldValueInput{
		ProjectID: projectID,
		ItemID:    githubv4.ID(itemID),
		FieldID:   githubv4.ID(fieldID),
		Value:     fieldValue,
	}
	if err := g.gql.Mutate(ctx, &m, input, nil); err != nil {
		g.logger.Error("failed to update project item", "owner", owner, "repo", repo, "project", projectNumber, "item", itemID, "field", fieldName, "error", err)
		return nil, err
	}

	return &core.ProjectItem{
		ID:          string(m.UpdateProjectV2ItemFieldValue.ProjectV2Item.ID),
		IssueNumber: ref.IssueNumber,
		Fields:      map[string]string{fieldName: value},
	}, nil
}

// buildFieldValue picks the field by name (case-insensitive) and shapes the
// mutation value: single-select fields get an option ID, everything else is
// sent as text.
func buildFieldValue(fields []core.ProjectField, fieldName, value string) (githubv4.ProjectV2FieldValue, string, error) {
	var field *core.ProjectField
	var names []string
	for i := range fields {
		if strings.EqualFold(fields[i].Name, fieldName) {
			field = &fields[i]
			break
		}
		names = append(names, fields[i].Name)
	}
	if field == nil {
		return githubv4.ProjectV2FieldValue{}, "", fmt.Errorf("unknown project field %q (have: %s)", fieldName, strings.Join(names, ", "))
	}

	if len(field.Options) > 0 {
		var optionNames []string
		for _, o := range field.Options {
			if strings.EqualFold(o.Name, value) {
				id := githubv4.String(o.ID)
				return githubv4.ProjectV2FieldValue{SingleSelectOptionID: &id}, field.ID, nil
			}
			optionNames = append(optionNames, o.Name)
		}
		return githubv4.ProjectV2FieldValue{}, "", fmt.Errorf("invalid option %q for field %q (have: %s)", value, field.Name, strings.Join(optionNames, ", "))
	}

	text := githubv4.String(value)
	return githubv4.ProjectV2FieldValue{Text: &text}, field.ID, nil
}
