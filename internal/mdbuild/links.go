package mdbuild

import (
	"path"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var markdown = goldmark.New()

// extractLinksAndHeadings walks the goldmark AST of a document body.
// Only relative links to other .md files inside the docs root become graph
// edges: absolute URLs, bare anchors, and paths that escape the root are
// navigation for humans, not dependencies.
func extractLinksAndHeadings(docPath string, body []byte) ([]string, []Heading) {
	root := markdown.Parser().Parse(text.NewReader(body))

	var links []string
	var headings []Heading
	seen := map[string]bool{}

	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Link:
			if target, ok := resolveDocLink(docPath, string(node.Destination)); ok && !seen[target] {
				seen[target] = true
				links = append(links, target)
			}
		case *ast.Heading:
			headings = append(headings, Heading{
				Level: node.Level,
				Text:  string(node.Text(body)),
			})
		}
		return ast.WalkContinue, nil
	})

	return links, headings
}

// resolveDocLink normalizes a raw link destination into a doc-root-relative
// .md path, or reports that the link is not a graph edge.
func resolveDocLink(docPath, dest string) (string, bool) {
	if dest == "" || strings.HasPrefix(dest, "#") {
		return "", false
	}
	if strings.Contains(dest, "://") || strings.HasPrefix(dest, "mailto:") {
		return "", false
	}
	if strings.HasPrefix(dest, "/") {
		return "", false
	}

	// Drop anchors and query strings.
	if i := strings.IndexAny(dest, "#?"); i >= 0 {
		dest = dest[:i]
	}
	if !strings.HasSuffix(dest, ".md") {
		return "", false
	}

	resolved := path.Clean(path.Join(path.Dir(docPath), dest))
	if resolved == ".." || strings.HasPrefix(resolved, "../") {
		return "", false
	}
	return resolved, true
}
