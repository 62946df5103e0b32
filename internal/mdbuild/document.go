// Package mdbuild implements the markdown build and lint subsystem:
// frontmatter validation, the link dependency graph with cycle and orphan
// detection, split suggestions, and LLM token estimation.
package mdbuild

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is one markdown file under the docs root.
type Document struct {
	Path        string         `json:"path"` // relative to the docs root, slash-separated
	Frontmatter map[string]any `json:"frontmatter,omitempty"`
	ParseErr    string         `json:"parse_error,omitempty"`
	Body        string         `json:"-"`
	Links       []string       `json:"links,omitempty"` // resolved doc-root-relative targets
	Headings    []Heading      `json:"headings,omitempty"`
	Tokens      int            `json:"tokens"`
}

// Heading is a markdown heading inside a document body.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Title returns the frontmatter title, falling back to the file name.
func (d *Document) Title() string {
	if t, ok := d.Frontmatter["title"].(string); ok && t != "" {
		return t
	}
	return strings.TrimSuffix(path.Base(d.Path), ".md")
}

// LoadDir reads every .md file under root into Documents. A document with
// malformed frontmatter is still returned, with ParseErr set; the caller
// decides how to report it. Results are ordered by path.
func LoadDir(root string) ([]*Document, error) {
	var docs []*Document

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && p != root {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}

		data, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", rel, err)
		}

		docs = append(docs, parseDocument(filepath.ToSlash(rel), data))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load docs from %s: %w", root, err)
	}
	return docs, nil
}

// parseDocument splits frontmatter from body and fills in the derived
// fields (links, headings, token estimate).
func parseDocument(rel string, data []byte) *Document {
	doc := &Document{Path: rel}

	fm, body, err := splitFrontmatter(string(data))
	if err != nil {
		doc.ParseErr = err.Error()
		doc.Body = string(data)
	} else {
		doc.Frontmatter = fm
		doc.Body = body
	}

	doc.Links, doc.Headings = extractLinksAndHeadings(rel, []byte(doc.Body))
	doc.Tokens = EstimateTokens(doc.Body)
	return doc
}

// splitFrontmatter separates a leading YAML frontmatter block from the
// body. A document without a block is valid and gets a nil map. Both LF
// and CRLF line endings are accepted.
func splitFrontmatter(content string) (map[string]any, string, error) {
	rest, found := strings.CutPrefix(content, "---\n")
	if !found {
		rest, found = strings.CutPrefix(content, "---\r\n")
	}
	if !found && content != "---" {
		return nil, content, nil
	}

	end := strings.Index(rest, "\n---")
	if end < 0 {
		return nil, content, fmt.Errorf("unterminated frontmatter block")
	}

	block := rest[:end]
	body := rest[end+len("\n---"):]
	body = strings.TrimPrefix(strings.TrimPrefix(body, "\r"), "\n")

	var fm map[string]any
	if err := yaml.Unmarshal([]byte(block), &fm); err != nil {
		return nil, content, fmt.Errorf("invalid frontmatter YAML: %w", err)
	}
	return fm, body, nil
}

// ValidateFrontmatter checks the required keys against a parsed document.
// Each problem becomes one message.
func ValidateFrontmatter(doc *Document, required []string) []string {
	if doc.ParseErr != "" {
		return []string{doc.ParseErr}
	}

	var problems []string
	for _, key := range required {
		value, ok := doc.Frontmatter[key]
		if !ok {
			problems = append(problems, fmt.Sprintf("missing required frontmatter key %q", key))
			continue
		}
		if s, isString := value.(string); isString && strings.TrimSpace(s) == "" {
			problems = append(problems, fmt.Sprintf("frontmatter key %q is empty", key))
		}
	}
	return problems
}
