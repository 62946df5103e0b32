package gitutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePullRequestURL(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		wantOwner string
		wantRepo  string
		wantID    int
		wantErr   bool
	}{
		{
			name:      "Valid HTTPS URL",
			url:       "https://github.com/acme/widgets/pull/123",
			wantOwner: "acme",
			wantRepo:  "widgets",
			wantID:    123,
			wantErr:   false,
		},
		{
			name:      "Valid URL without scheme",
			url:       "github.com/acme/widgets/pull/456",
			wantOwner: "acme",
			wantRepo:  "widgets",
			wantID:    456,
			wantErr:   false,
		},
		{
			name:      "URL with trailing slash",
			url:       "https://github.com/acme/widgets/pull/789/",
			wantOwner: "acme",
			wantRepo:  "widgets",
			wantID:    789,
			wantErr:   false,
		},
		{
			name:    "Issue URL is not a PR URL",
			url:     "https://github.com/acme/widgets/issues/123",
			wantErr: true,
		},
		{
			name:    "Invalid format (too many segments)",
			url:     "https://github.com/acme/widgets/pull/123/files",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, repo, id, err := ParsePullRequestURL(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantOwner, owner)
				assert.Equal(t, tt.wantRepo, repo)
				assert.Equal(t, tt.wantID, id)
			}
		})
	}
}

func TestParseIssueURL(t *testing.T) {
	owner, repo, id, err := ParseIssueURL("https://github.com/acme/widgets/issues/42")
	assert.NoError(t, err)
	assert.Equal(t, "acme", owner)
	assert.Equal(t, "widgets", repo)
	assert.Equal(t, 42, id)

	_, _, _, err = ParseIssueURL("https://github.com/acme/widgets/pull/42")
	assert.Error(t, err)
}

func TestParseRepoSlug(t *testing.T) {
	tests := []struct {
		name    string
		slug    string
		owner   string
		repo    string
		wantErr bool
	}{
		{name: "valid", slug: "acme/widgets", owner: "acme", repo: "widgets"},
		{name: "surrounding whitespace", slug: "  acme/widgets ", owner: "acme", repo: "widgets"},
		{name: "missing repo", slug: "acme/", wantErr: true},
		{name: "missing owner", slug: "/widgets", wantErr: true},
		{name: "no slash", slug: "acme", wantErr: true},
		{name: "too many segments", slug: "acme/widgets/extra", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, repo, err := ParseRepoSlug(tt.slug)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.owner, owner)
			assert.Equal(t, tt.repo, repo)
		})
	}
}
