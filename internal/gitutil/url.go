// Package gitutil provides small git and GitHub helpers shared by the CLI.
package gitutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	prURLRegex    = regexp.MustCompile(`github\.com/([^/]+)/([^/]+)/pull/(\d+)$`)
	issueURLRegex = regexp.MustCompile(`github\.com/([^/]+)/([^/]+)/issues/(\d+)$`)
)

// ParsePullRequestURL parses a GitHub Pull Request URL and extracts the owner, repo, and PR number.
// Supported format: https://github.com/{owner}/{repo}/pull/{number}
func ParsePullRequestURL(url string) (owner, repo string, prNumber int, err error) {
	return parseNumberedURL(url, prURLRegex, "pull request")
}

// ParseIssueURL parses a GitHub issue URL and extracts the owner, repo, and issue number.
// Supported format: https://github.com/{owner}/{repo}/issues/{number}
func ParseIssueURL(url string) (owner, repo string, issueNumber int, err error) {
	return parseNumberedURL(url, issueURLRegex, "issue")
}

func parseNumberedURL(url string, re *regexp.Regexp, kind string) (owner, repo string, number int, err error) {
	// Normalize URL
	url = strings.TrimSuffix(url, "/")

	matches := re.FindStringSubmatch(url)
	if len(matches) != 4 {
		return "", "", 0, fmt.Errorf("invalid %s URL format: %s", kind, url)
	}

	owner = matches[1]
	repo = matches[2]
	numberStr := matches[3]

	number, err = strconv.Atoi(numberStr)
	if err != nil {
		return "", "", 0, fmt.Errorf("invalid %s number '%s': %w", kind, numberStr, err)
	}

	return owner, repo, number, nil
}

// ParseRepoSlug splits an "owner/repo" slug into its parts.
func ParseRepoSlug(slug string) (owner, repo string, err error) {
	parts := strings.Split(strings.TrimSpace(slug), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository slug %q, expected owner/repo", slug)
	}
	return parts[0], parts[1], nil
}
