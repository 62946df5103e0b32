package mdbuild

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doc(path string, tokens int, links ...string) *Document {
	return &Document{Path: path, Tokens: tokens, Links: links}
}

func newTestAnalyzer(docs ...*Document) *Analyzer {
	return NewAnalyzer(docs, []string{"index.md"}, 4000)
}

func TestDetectCycles_Simple(t *testing.T) {
	a := newTestAnalyzer(
		doc("index.md", 10, "a.md"),
		doc("a.md", 10, "b.md"),
		doc("b.md", 10, "a.md"),
	)

	cycles := a.DetectCycles()
	require.Len(t, cycles, 1)
	assert.Equal(t, []string{"a.md", "b.md", "a.md"}, cycles[0])
}

func TestDetectCycles_SelfLoop(t *testing.T) {
	a := newTestAnalyzer(doc("index.md", 10, "index.md"))

	cycles := a.DetectCycles()
	require.Len(t, cycles, 1)
	assert.Equal(t, []string{"index.md", "index.md"}, cycles[0])
}

func TestDetectCycles_ReportedOnce(t *testing.T) {
	// Two entry paths into the same cycle must not duplicate the report.
	a := newTestAnalyzer(
		doc("index.md", 10, "a.md", "b.md"),
		doc("a.md", 10, "b.md"),
		doc("b.md", 10, "c.md"),
		doc("c.md", 10, "a.md"),
	)

	cycles := a.DetectCycles()
	require.Len(t, cycles, 1)
	assert.Equal(t, []string{"a.md", "b.md", "c.md", "a.md"}, cycles[0])
}

func TestDetectCycles_Acyclic(t *testing.T) {
	a := newTestAnalyzer(
		doc("index.md", 10, "a.md", "b.md"),
		doc("a.md", 10, "b.md"),
		doc("b.md", 10),
	)
	assert.Empty(t, a.DetectCycles())
}

func TestOrphans(t *testing.T) {
	a := newTestAnalyzer(
		doc("index.md", 10, "a.md"),
		doc("a.md", 10),
		doc("floating.md", 10),
	)

	assert.Equal(t, []string{"floating.md"}, a.Orphans())
}

func TestOrphans_EntryPointByBaseName(t *testing.T) {
	// README.md anywhere counts as an entry point when configured bare.
	a := NewAnalyzer([]*Document{
		doc("sub/README.md", 10),
		doc("sub/other.md", 10),
	}, []string{"README.md"}, 4000)

	assert.Equal(t, []string{"sub/other.md"}, a.Orphans())
}

func TestBrokenLinks(t *testing.T) {
	a := newTestAnalyzer(
		doc("index.md", 10, "missing.md"),
	)

	broken := a.BrokenLinks()
	require.Len(t, broken, 1)
	assert.Equal(t, [2]string{"index.md", "missing.md"}, broken[0])
	// A broken link is not a graph edge.
	assert.Empty(t, a.DetectCycles())
}

func TestSplitSuggestions(t *testing.T) {
	big := doc("big.md", 9000)
	big.Headings = []Heading{
		{Level: 1, Text: "Big"},
		{Level: 2, Text: "Part One"},
		{Level: 2, Text: "Part Two"},
	}
	flat := doc("flat.md", 9000)
	flat.Headings = []Heading{{Level: 1, Text: "Flat"}}

	a := NewAnalyzer([]*Document{
		doc("index.md", 100, "big.md", "flat.md"),
		big,
		flat,
	}, []string{"index.md"}, 4000)

	splits := a.SplitSuggestions()
	require.Len(t, splits, 2)

	assert.Equal(t, "big.md", splits[0].Path)
	assert.Equal(t, []string{"Part One", "Part Two"}, splits[0].Sections)

	assert.Equal(t, "flat.md", splits[1].Path)
	assert.Empty(t, splits[1].Sections, "single heading gives no natural split point")
}

func TestAnalyzer_ExcludesUnparsedDocs(t *testing.T) {
	bad := doc("bad.md", 10, "index.md")
	bad.ParseErr = "invalid frontmatter YAML"

	a := newTestAnalyzer(doc("index.md", 10), bad)
	// bad.md contributes no inbound edge, so nothing shields index.md except
	// its entry-point status; bad.md itself is not analyzed at all.
	assert.Empty(t, a.Orphans())
	assert.Empty(t, a.DetectCycles())
}
