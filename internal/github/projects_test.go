package github

import (
	"testing"

	"github.com/shurcooL/githubv4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shirokuma-tools/shirokuma-docs/internal/core"
)

func TestBuildFieldValue_SingleSelect(t *testing.T) {
	fields := []core.ProjectField{
		{ID: "F1", Name: "Status", Options: []core.ProjectFieldOption{
			{ID: "opt-todo", Name: "Todo"},
			{ID: "opt-done", Name: "Done"},
		}},
		{ID: "F2", Name: "Notes"},
	}

	value, fieldID, err := buildFieldValue(fields, "status", "done")
	require.NoError(t, err)
	assert.Equal(t, "F1", fieldID)
	require.NotNil(t, value.SingleSelectOptionID)
	assert.Equal(t, githubv4.String("opt-done"), *value.SingleSelectOptionID)
	assert.Nil(t, value.Text)
}

func TestBuildFieldValue_Text(t *testing.T) {
	fields := []core.ProjectField{{ID: "F2", Name: "Notes"}}

	value, fieldID, err := buildFieldValue(fields, "Notes", "ship it")
	require.NoError(t, err)
	assert.Equal(t, "F2", fieldID)
	require.NotNil(t, value.Text)
	assert.Equal(t, githubv4.String("ship it"), *value.Text)
}

func TestBuildFieldValue_UnknownField(t *testing.T) {
	fields := []core.ProjectField{{ID: "F1", Name: "Status"}}

	_, _, err := buildFieldValue(fields, "Priority", "High")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown project field "Priority"`)
	assert.Contains(t, err.Error(), "Status")
}

func TestBuildFieldValue_InvalidOption(t *testing.T) {
	fields := []core.ProjectField{
		{ID: "F1", Name: "Status", Options: []core.ProjectFieldOption{{ID: "o1", Name: "Todo"}}},
	}

	_, _, err := buildFieldValue(fields, "Status", "Blocked")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid option "Blocked"`)
	assert.Contains(t, err.Error(), "Todo")
}

func TestItemFromNode_IssueContent(t *testing.T) {
	var n projectItemNode
	n.ID = "item-1"
	n.Content.Issue.Number = 12
	n.Content.Issue.Title = "Fix login redirect"

	var status fieldValueNode
	status.SingleSelectValue.Name = "In Progress"
	status.SingleSelectValue.Field.Common.Name = "Status"
	var notes fieldValueNode
	notes.TextValue.Text = "waiting on review"
	notes.TextValue.Field.Common.Name = "Notes"
	n.FieldValues.Nodes = []fieldValueNode{status, notes}

	item := itemFromNode(n)
	assert.Equal(t, "item-1", item.ID)
	assert.Equal(t, 12, item.IssueNumber)
	assert.Equal(t, "Fix login redirect", item.Title)
	assert.Equal(t, map[string]string{
		"Status": "In Progress",
		"Notes":  "waiting on review",
	}, item.Fields)
}

func TestItemFromNode_DraftIssue(t *testing.T) {
	var n projectItemNode
	n.ID = "item-2"
	n.Content.DraftIssue.Title = "Spike: sitemap"

	item := itemFromNode(n)
	assert.Equal(t, "Spike: sitemap", item.Title)
	assert.Zero(t, item.IssueNumber)
	assert.Nil(t, item.Fields)
}

func TestMatchCategory(t *testing.T) {
	categories := []core.DiscussionCategory{
		{ID: "C1", Name: "Handovers"},
		{ID: "C2", Name: "ADR"},
	}

	id, err := matchCategory(categories, "adr")
	require.NoError(t, err)
	assert.Equal(t, "C2", id)

	_, err = matchCategory(categories, "Ideas")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Handovers")
}
