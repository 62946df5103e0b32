package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	gh "github.com/google/go-github/v73/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestClient points a Client at a local fake of the REST API.
func newTestClient(t *testing.T, handler http.Handler) Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	ghc := gh.NewClient(nil)
	base, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	ghc.BaseURL = base
	return NewGitHubClient(ghc, testLogger())
}

func TestListIssues_PaginatesAndSkipsPullRequests(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/site/issues", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "open", r.URL.Query().Get("state"))
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("page") {
		case "", "1":
			w.Header().Set("Link", fmt.Sprintf(`<http://%s/repos/acme/site/issues?page=2>; rel="next"`, r.Host))
			fmt.Fprint(w, `[{"number":1,"title":"first"},{"number":2,"title":"a pr","pull_request":{"url":"x"}}]`)
		case "2":
			fmt.Fprint(w, `[{"number":3,"title":"second"}]`)
		default:
			t.Errorf("unexpected page %q", r.URL.Query().Get("page"))
		}
	})

	client := newTestClient(t, mux)
	issues, err := client.ListIssues(context.Background(), "acme", "site", IssueFilter{})
	require.NoError(t, err)

	require.Len(t, issues, 2, "the PR row must be dropped")
	assert.Equal(t, 1, issues[0].GetNumber())
	assert.Equal(t, 3, issues[1].GetNumber())
}

func TestCloseIssue(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/site/issues/7", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		var req struct {
			State string `json:"state"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "closed", req.State)
		fmt.Fprint(w, `{"number":7,"state":"closed"}`)
	})

	client := newTestClient(t, mux)
	issue, err := client.CloseIssue(context.Background(), "acme", "site", 7)
	require.NoError(t, err)
	assert.Equal(t, "closed", issue.GetState())
}

func TestCreateIssue(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/site/issues", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), `"title":"broken build"`)
		assert.Contains(t, string(body), `"labels":["bug"]`)
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"number":42,"title":"broken build"}`)
	})

	client := newTestClient(t, mux)
	issue, err := client.CreateIssue(context.Background(), "acme", "site", "broken build", "details", []string{"bug"})
	require.NoError(t, err)
	assert.Equal(t, 42, issue.GetNumber())
}

func TestGetChangedFiles_Paginates(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/site/pulls/5/files", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("page") == "2" {
			fmt.Fprint(w, `[{"filename":"b.ts","status":"added","additions":3}]`)
			return
		}
		w.Header().Set("Link", fmt.Sprintf(`<http://%s/repos/acme/site/pulls/5/files?page=2>; rel="next"`, r.Host))
		fmt.Fprint(w, `[{"filename":"a.ts","status":"modified","patch":"@@ -1 +1 @@"}]`)
	})

	client := newTestClient(t, mux)
	files, err := client.GetChangedFiles(context.Background(), "acme", "site", 5)
	require.NoError(t, err)

	require.Len(t, files, 2)
	assert.Equal(t, "a.ts", files[0].Filename)
	assert.Equal(t, "@@ -1 +1 @@", files[0].Patch)
	assert.Equal(t, "b.ts", files[1].Filename)
	assert.Equal(t, 3, files[1].Additions)
}

func TestGetPullRequestDiff(t *testing.T) {
	const diff = "diff --git a/a.ts b/a.ts\n"
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/site/pulls/5", func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.Header.Get("Accept"), "diff") {
			fmt.Fprint(w, diff)
			return
		}
		fmt.Fprint(w, `{"number":5}`)
	})

	client := newTestClient(t, mux)
	got, err := client.GetPullRequestDiff(context.Background(), "acme", "site", 5)
	require.NoError(t, err)
	assert.Equal(t, diff, got)
}
