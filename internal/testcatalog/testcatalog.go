// Package testcatalog builds the test-case catalog artifact from test
// sources. Cases come from two places: @testcase JSDoc tags and the titles
// of describe/it/test blocks.
package testcatalog

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/shirokuma-tools/shirokuma-docs/internal/annotation"
)

var (
	describeRegex = regexp.MustCompile(`describe\(\s*['"` + "`" + `](.+?)['"` + "`" + `]`)
	itRegex       = regexp.MustCompile(`\b(?:it|test)\(\s*['"` + "`" + `](.+?)['"` + "`" + `]`)
	caseIDRegex   = regexp.MustCompile(`^(TC-\d+)\s*[:\-]?\s*(.*)$`)

	testFileSuffixes = []string{".test.ts", ".test.tsx", ".test.js", ".spec.ts", ".spec.js"}
)

// Case is a single cataloged test case.
type Case struct {
	ID    string `json:"id,omitempty"`
	Title string `json:"title"`
	Suite string `json:"suite,omitempty"`
	File  string `json:"file"`
	Line  int    `json:"line"`
}

// Catalog is the complete test-case catalog artifact.
type Catalog struct {
	GeneratedAt time.Time `json:"generated_at"`
	Files       int       `json:"files"`
	Cases       []Case    `json:"cases"`
}

// CasesByFile groups the catalog per test file, used by the coverage report.
func (c *Catalog) CasesByFile() map[string][]Case {
	grouped := make(map[string][]Case)
	for _, tc := range c.Cases {
		grouped[tc.File] = append(grouped[tc.File], tc)
	}
	return grouped
}

// Scan walks root for test files and extracts their cases.
func Scan(root string, logger *slog.Logger, now time.Time) (*Catalog, error) {
	catalog := &Catalog{GeneratedAt: now.UTC()}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == "node_modules" || strings.HasPrefix(d.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if !isTestFile(d.Name()) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		source, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("skipping unreadable test file", "file", rel, "error", err)
			return nil
		}

		catalog.Files++
		catalog.Cases = append(catalog.Cases, extractCases(rel, source)...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan test files under %s: %w", root, err)
	}

	sort.Slice(catalog.Cases, func(i, j int) bool {
		if catalog.Cases[i].File != catalog.Cases[j].File {
			return catalog.Cases[i].File < catalog.Cases[j].File
		}
		return catalog.Cases[i].Line < catalog.Cases[j].Line
	})
	return catalog, nil
}

// extractCases pulls cases out of a single test file. it/test titles are
// attributed to the closest preceding describe title as their suite.
func extractCases(file string, source []byte) []Case {
	text := string(source)
	var cases []Case

	type suiteAt struct {
		offset int
		title  string
	}
	var suites []suiteAt
	for _, loc := range describeRegex.FindAllStringSubmatchIndex(text, -1) {
		suites = append(suites, suiteAt{offset: loc[0], title: text[loc[2]:loc[3]]})
	}
	suiteFor := func(offset int) string {
		title := ""
		for _, s := range suites {
			if s.offset > offset {
				break
			}
			title = s.title
		}
		return title
	}

	for _, loc := range itRegex.FindAllStringSubmatchIndex(text, -1) {
		title := text[loc[2]:loc[3]]
		c := Case{
			Title: title,
			Suite: suiteFor(loc[0]),
			File:  file,
			Line:  1 + strings.Count(text[:loc[0]], "\n"),
		}
		if m := caseIDRegex.FindStringSubmatch(title); m != nil {
			c.ID = m[1]
			if m[2] != "" {
				c.Title = m[2]
			}
		}
		cases = append(cases, c)
	}

	// Explicit @testcase tags win over block titles when both carry an ID.
	tagged := make(map[string]bool)
	for _, c := range cases {
		if c.ID != "" {
			tagged[c.ID] = true
		}
	}
	for _, block := range annotation.ScrapeJSDoc(file, source) {
		for _, value := range block.All("testcase") {
			c := Case{Title: value, File: file, Line: block.Line}
			if m := caseIDRegex.FindStringSubmatch(value); m != nil {
				c.ID = m[1]
				c.Title = m[2]
			}
			if c.ID != "" && tagged[c.ID] {
				continue
			}
			cases = append(cases, c)
		}
	}

	return cases
}

func isTestFile(name string) bool {
	for _, suffix := range testFileSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}
