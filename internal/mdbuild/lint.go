package mdbuild

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/shirokuma-tools/shirokuma-docs/internal/config"
)

// Issue is one lint finding attached to a document (or "" for the whole
// document set).
type Issue struct {
	Path    string `json:"path,omitempty"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Report is the complete result of a markdown build/lint pass.
type Report struct {
	GeneratedAt time.Time         `json:"generated_at"`
	Root        string            `json:"root"`
	Documents   int               `json:"documents"`
	TotalTokens int               `json:"total_tokens"`
	TokenBudget int               `json:"token_budget,omitempty"`
	Issues      []Issue           `json:"issues,omitempty"`
	Cycles      [][]string        `json:"cycles,omitempty"`
	Orphans     []string          `json:"orphans,omitempty"`
	Splits      []SplitSuggestion `json:"splits,omitempty"`
	Docs        []*Document       `json:"docs"`
}

// Clean reports whether the pass found nothing to fix.
func (r *Report) Clean() bool {
	return len(r.Issues) == 0 && len(r.Cycles) == 0 && len(r.Orphans) == 0 && len(r.Splits) == 0
}

// Lint loads the docs root and runs every check: frontmatter validation,
// broken links, cycles, orphans, token budget, split suggestions.
func Lint(root string, cfg config.MarkdownConfig, logger *slog.Logger, now time.Time) (*Report, error) {
	docs, err := LoadDir(root)
	if err != nil {
		return nil, err
	}
	logger.Info("linting markdown docs", "root", root, "documents", len(docs))

	report := &Report{
		GeneratedAt: now.UTC(),
		Root:        root,
		Documents:   len(docs),
		TokenBudget: cfg.TokenBudget,
		Docs:        docs,
	}

	for _, doc := range docs {
		report.TotalTokens += doc.Tokens
		for _, problem := range ValidateFrontmatter(doc, cfg.RequiredFrontmatter) {
			report.Issues = append(report.Issues, Issue{Path: doc.Path, Kind: "frontmatter", Message: problem})
		}
	}

	analyzer := NewAnalyzer(docs, cfg.EntryPoints, cfg.SplitTokenThreshold)
	logger.Debug("analyzing link graph", "stats", analyzer.Stats())

	for _, broken := range analyzer.BrokenLinks() {
		report.Issues = append(report.Issues, Issue{
			Path:    broken[0],
			Kind:    "broken-link",
			Message: fmt.Sprintf("link target %q does not exist", broken[1]),
		})
	}

	report.Cycles = analyzer.DetectCycles()
	for _, cycle := range report.Cycles {
		report.Issues = append(report.Issues, Issue{
			Path:    cycle[0],
			Kind:    "cycle",
			Message: "dependency cycle: " + FormatCycle(cycle),
		})
	}

	report.Orphans = analyzer.Orphans()
	for _, orphan := range report.Orphans {
		report.Issues = append(report.Issues, Issue{
			Path:    orphan,
			Kind:    "orphan",
			Message: "document has no inbound links",
		})
	}

	report.Splits = analyzer.SplitSuggestions()
	for _, split := range report.Splits {
		report.Issues = append(report.Issues, Issue{
			Path:    split.Path,
			Kind:    "split",
			Message: fmt.Sprintf("document is ~%d tokens, consider splitting", split.Tokens),
		})
	}

	if cfg.TokenBudget > 0 && report.TotalTokens > cfg.TokenBudget {
		report.Issues = append(report.Issues, Issue{
			Kind:    "budget",
			Message: fmt.Sprintf("document set is ~%d tokens, over the %d budget", report.TotalTokens, cfg.TokenBudget),
		})
	}

	return report, nil
}
