package gitutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

const ignoreMarker = "# shirokuma-docs generated artifacts"

// EnsureIgnored makes sure every path in wanted is covered by the repository's
// .gitignore. Paths already matched by an existing pattern are left alone;
// the rest are appended under a marker comment. It returns the patterns that
// were added.
func EnsureIgnored(repoRoot string, wanted []string) ([]string, error) {
	ignorePath := filepath.Join(repoRoot, ".gitignore")

	data, err := os.ReadFile(ignorePath)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read .gitignore: %w", err)
	}

	patterns := parsePatterns(string(data))
	matcher := gitignore.NewMatcher(patterns)

	var missing []string
	for _, w := range wanted {
		w = strings.TrimSpace(strings.TrimSuffix(w, "/"))
		if w == "" {
			continue
		}
		if matcher.Match(strings.Split(w, "/"), true) {
			continue
		}
		missing = append(missing, w+"/")
	}
	if len(missing) == 0 {
		return nil, nil
	}

	var sb strings.Builder
	sb.Write(data)
	if len(data) > 0 && !strings.HasSuffix(string(data), "\n") {
		sb.WriteString("\n")
	}
	if !strings.Contains(string(data), ignoreMarker) {
		sb.WriteString("\n" + ignoreMarker + "\n")
	}
	for _, m := range missing {
		sb.WriteString(m + "\n")
	}

	if err := os.WriteFile(ignorePath, []byte(sb.String()), 0644); err != nil {
		return nil, fmt.Errorf("failed to write .gitignore: %w", err)
	}
	return missing, nil
}

// parsePatterns converts raw .gitignore content into matchable patterns,
// skipping blank lines and comments.
func parsePatterns(content string) []gitignore.Pattern {
	var patterns []gitignore.Pattern
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, gitignore.ParsePattern(line, nil))
	}
	return patterns
}
