// Package coverage parses istanbul coverage summaries and joins them with
// the test-case catalog into the coverage report artifact.
package coverage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/shirokuma-tools/shirokuma-docs/internal/testcatalog"
)

// Band thresholds follow istanbul's default coloring.
const (
	bandGood = 80.0
	bandWarn = 50.0
)

// Metric is one istanbul counter (lines, statements, functions, branches).
type Metric struct {
	Total   int     `json:"total"`
	Covered int     `json:"covered"`
	Pct     float64 `json:"pct"`
}

// FileCoverage is the coverage of a single source file.
type FileCoverage struct {
	File       string `json:"file"`
	Lines      Metric `json:"lines"`
	Statements Metric `json:"statements"`
	Functions  Metric `json:"functions"`
	Branches   Metric `json:"branches"`
	Band       string `json:"band"`
}

// Report is the complete coverage report artifact.
type Report struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Total       FileCoverage   `json:"total"`
	Files       []FileCoverage `json:"files"`
	TestFiles   int            `json:"test_files"`
	TestCases   int            `json:"test_cases"`
}

// SummaryEntry mirrors one value of istanbul's coverage-summary.json.
type SummaryEntry struct {
	Lines      Metric `json:"lines"`
	Statements Metric `json:"statements"`
	Functions  Metric `json:"functions"`
	Branches   Metric `json:"branches"`
}

// ParseSummaryFile reads an istanbul coverage-summary.json from disk.
func ParseSummaryFile(path string) (map[string]SummaryEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read coverage summary: %w", err)
	}
	return parseSummary(data)
}

func parseSummary(data []byte) (map[string]SummaryEntry, error) {
	var entries map[string]SummaryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse coverage summary: %w", err)
	}
	if _, ok := entries["total"]; !ok {
		return nil, fmt.Errorf("coverage summary has no \"total\" entry")
	}
	return entries, nil
}

// BuildReport joins a parsed summary with the test catalog. Absolute file
// paths from istanbul are rewritten relative to projectRoot so the report
// is portable.
func BuildReport(entries map[string]SummaryEntry, catalog *testcatalog.Catalog, projectRoot string, now time.Time) *Report {
	report := &Report{GeneratedAt: now.UTC()}

	for path, entry := range entries {
		fc := FileCoverage{
			File:       relativize(path, projectRoot),
			Lines:      entry.Lines,
			Statements: entry.Statements,
			Functions:  entry.Functions,
			Branches:   entry.Branches,
			Band:       band(entry.Lines.Pct),
		}
		if path == "total" {
			fc.File = "total"
			report.Total = fc
			continue
		}
		report.Files = append(report.Files, fc)
	}

	sort.Slice(report.Files, func(i, j int) bool { return report.Files[i].File < report.Files[j].File })

	if catalog != nil {
		report.TestFiles = catalog.Files
		report.TestCases = len(catalog.Cases)
	}
	return report
}

// Load is the one-call entry point used by the CLI.
func Load(summaryPath, projectRoot string, catalog *testcatalog.Catalog, now time.Time) (*Report, error) {
	entries, err := ParseSummaryFile(summaryPath)
	if err != nil {
		return nil, err
	}
	return BuildReport(entries, catalog, projectRoot, now), nil
}

func band(pct float64) string {
	switch {
	case pct >= bandGood:
		return "good"
	case pct >= bandWarn:
		return "warn"
	default:
		return "low"
	}
}

func relativize(path, root string) string {
	if root == "" || !filepath.IsAbs(path) {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
