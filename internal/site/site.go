package site

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/shirokuma-tools/shirokuma-docs/internal/coverage"
	"github.com/shirokuma-tools/shirokuma-docs/internal/featuremap"
	"github.com/shirokuma-tools/shirokuma-docs/internal/mdbuild"
	"github.com/shirokuma-tools/shirokuma-docs/internal/testcatalog"
)

//go:embed templates/*.html.tmpl
var templateFiles embed.FS

// Renderer writes the generated documentation site: one HTML page per
// artifact plus a JSON copy of each artifact for programmatic consumers.
type Renderer struct {
	outputDir string
	tmpl      *template.Template
}

// New parses the embedded page templates and returns a Renderer rooted at
// outputDir.
func New(outputDir string) (*Renderer, error) {
	tmpl, err := template.New("site").Funcs(template.FuncMap{
		"bandClass": bandClass,
	}).ParseFS(templateFiles, "templates/*.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse site templates: %w", err)
	}
	return &Renderer{outputDir: outputDir, tmpl: tmpl}, nil
}

func bandClass(band string) string {
	switch band {
	case "good", "warn", "low":
		return "band-" + band
	default:
		return "band-none"
	}
}

type page struct {
	Title       string
	GeneratedAt time.Time
	Data        any
}

// RenderFeatureMap writes featuremap.html and featuremap.json.
func (r *Renderer) RenderFeatureMap(m *featuremap.Map) error {
	if err := r.writePage("featuremap.html", "featuremap", page{
		Title:       "Feature Map",
		GeneratedAt: m.GeneratedAt,
		Data:        m,
	}); err != nil {
		return err
	}
	return r.writeJSON("featuremap.json", m)
}

// RenderTestCatalog writes testcatalog.html and testcatalog.json.
func (r *Renderer) RenderTestCatalog(c *testcatalog.Catalog) error {
	if err := r.writePage("testcatalog.html", "testcatalog", page{
		Title:       "Test Case Catalog",
		GeneratedAt: c.GeneratedAt,
		Data:        c,
	}); err != nil {
		return err
	}
	return r.writeJSON("testcatalog.json", c)
}

// RenderCoverage writes coverage.html and coverage.json.
func (r *Renderer) RenderCoverage(rep *coverage.Report) error {
	if err := r.writePage("coverage.html", "coverage", page{
		Title:       "Coverage Report",
		GeneratedAt: rep.GeneratedAt,
		Data:        rep,
	}); err != nil {
		return err
	}
	return r.writeJSON("coverage.json", rep)
}

// RenderMarkdownReport writes mdreport.html and mdreport.json.
func (r *Renderer) RenderMarkdownReport(rep *mdbuild.Report) error {
	if err := r.writePage("mdreport.html", "mdreport", page{
		Title:       "Markdown Build Report",
		GeneratedAt: rep.GeneratedAt,
		Data:        rep,
	}); err != nil {
		return err
	}
	return r.writeJSON("mdreport.json", rep)
}

// IndexEntry is one artifact link on the landing page. Missing artifacts
// are listed but marked absent.
type IndexEntry struct {
	Title   string
	Page    string
	Present bool
}

// RenderIndex writes the landing page linking every rendered artifact.
func (r *Renderer) RenderIndex(generatedAt time.Time) error {
	pages := []struct{ title, file string }{
		{"Feature Map", "featuremap.html"},
		{"Test Case Catalog", "testcatalog.html"},
		{"Coverage Report", "coverage.html"},
		{"Markdown Build Report", "mdreport.html"},
	}
	var entries []IndexEntry
	for _, p := range pages {
		_, err := os.Stat(filepath.Join(r.outputDir, p.file))
		entries = append(entries, IndexEntry{Title: p.title, Page: p.file, Present: err == nil})
	}
	return r.writePage("index.html", "index", page{
		Title:       "Documentation",
		GeneratedAt: generatedAt,
		Data:        entries,
	})
}

func (r *Renderer) writePage(name, templateName string, data page) error {
	path := filepath.Join(r.outputDir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create site directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	if err := r.tmpl.ExecuteTemplate(f, templateName, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	return nil
}

func (r *Renderer) writeJSON(name string, v any) error {
	path := filepath.Join(r.outputDir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create site directory: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
