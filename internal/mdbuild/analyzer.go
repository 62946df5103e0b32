package mdbuild

import (
	"fmt"
	"sort"
	"strings"
)

// Analyzer runs graph checks over the loaded document set: cycle detection,
// orphan detection, and split suggestions.
type Analyzer struct {
	docs        map[string]*Document
	order       []string            // sorted doc paths, for deterministic traversal
	edges       map[string][]string // only edges whose target exists
	inbound     map[string]int
	entryPoints map[string]bool
	splitTokens int
}

// SplitSuggestion proposes how to break up an oversized document.
type SplitSuggestion struct {
	Path     string   `json:"path"`
	Tokens   int      `json:"tokens"`
	Sections []string `json:"sections,omitempty"`
}

// NewAnalyzer indexes the documents. Documents with a frontmatter parse
// error are excluded from the graph entirely; they are reported separately
// by the lint pass.
func NewAnalyzer(docs []*Document, entryPoints []string, splitTokens int) *Analyzer {
	a := &Analyzer{
		docs:        make(map[string]*Document),
		edges:       make(map[string][]string),
		inbound:     make(map[string]int),
		entryPoints: make(map[string]bool),
		splitTokens: splitTokens,
	}
	for _, e := range entryPoints {
		a.entryPoints[e] = true
	}

	for _, doc := range docs {
		if doc.ParseErr != "" {
			continue
		}
		a.docs[doc.Path] = doc
		a.order = append(a.order, doc.Path)
	}
	sort.Strings(a.order)

	for _, from := range a.order {
		for _, to := range a.docs[from].Links {
			if _, ok := a.docs[to]; !ok {
				continue // broken links are a lint issue, not a graph edge
			}
			a.edges[from] = append(a.edges[from], to)
			a.inbound[to]++
		}
		sort.Strings(a.edges[from])
	}
	return a
}

// BrokenLinks returns links whose target does not exist under the root,
// as "from -> to" pairs in path order.
func (a *Analyzer) BrokenLinks() [][2]string {
	var broken [][2]string
	for _, from := range a.order {
		for _, to := range a.docs[from].Links {
			if _, ok := a.docs[to]; !ok {
				broken = append(broken, [2]string{from, to})
			}
		}
	}
	return broken
}

// DetectCycles finds every distinct dependency cycle. Each cycle is
// reported once as v0..vk with vk == v0, rotated so the smallest path
// comes first.
func (a *Analyzer) DetectCycles() [][]string {
	const (
		white = 0 // unvisited
		gray  = 1 // on the current DFS stack
		black = 2 // fully explored
	)
	color := make(map[string]int, len(a.order))
	var stack []string
	var cycles [][]string
	seen := map[string]bool{}

	var visit func(node string)
	visit = func(node string) {
		color[node] = gray
		stack = append(stack, node)

		for _, next := range a.edges[node] {
			switch color[next] {
			case white:
				visit(next)
			case gray:
				// The cycle is the stack suffix starting at next.
				start := len(stack) - 1
				for start >= 0 && stack[start] != next {
					start--
				}
				cycle := append(append([]string{}, stack[start:]...), next)
				cycle = canonicalize(cycle)
				key := strings.Join(cycle, " -> ")
				if !seen[key] {
					seen[key] = true
					cycles = append(cycles, cycle)
				}
			}
		}

		stack = stack[:len(stack)-1]
		color[node] = black
	}

	for _, node := range a.order {
		if color[node] == white {
			visit(node)
		}
	}
	return cycles
}

// canonicalize rotates a closed cycle v0..vk (vk == v0) so that the
// smallest node leads, keeping edge order intact.
func canonicalize(cycle []string) []string {
	nodes := cycle[:len(cycle)-1]
	minIdx := 0
	for i, n := range nodes {
		if n < nodes[minIdx] {
			minIdx = i
		}
	}
	rotated := make([]string, 0, len(cycle))
	for i := 0; i < len(nodes); i++ {
		rotated = append(rotated, nodes[(minIdx+i)%len(nodes)])
	}
	return append(rotated, rotated[0])
}

// Orphans returns documents that nothing links to and that are not entry
// points.
func (a *Analyzer) Orphans() []string {
	var orphans []string
	for _, p := range a.order {
		if a.inbound[p] == 0 && !a.entryPoints[p] && !a.entryPoints[baseName(p)] {
			orphans = append(orphans, p)
		}
	}
	return orphans
}

// SplitSuggestions proposes heading-based splits for documents over the
// token threshold.
func (a *Analyzer) SplitSuggestions() []SplitSuggestion {
	var suggestions []SplitSuggestion
	for _, p := range a.order {
		doc := a.docs[p]
		if doc.Tokens <= a.splitTokens {
			continue
		}

		var sections []string
		for _, h := range doc.Headings {
			if h.Level == 2 {
				sections = append(sections, h.Text)
			}
		}
		if len(sections) < 2 {
			// One or zero sections gives no natural split point; the
			// suggestion still flags the size.
			sections = nil
		}
		suggestions = append(suggestions, SplitSuggestion{
			Path:     p,
			Tokens:   doc.Tokens,
			Sections: sections,
		})
	}
	return suggestions
}

// FormatCycle renders a cycle for log lines and reports.
func FormatCycle(cycle []string) string {
	return strings.Join(cycle, " -> ")
}

func baseName(p string) string {
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}

// Stats summarizes the analyzed graph.
func (a *Analyzer) Stats() string {
	edgeCount := 0
	for _, e := range a.edges {
		edgeCount += len(e)
	}
	return fmt.Sprintf("%d documents, %d links", len(a.order), edgeCount)
}
