package annotation

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/gobwas/glob"
	"github.com/schollz/progressbar/v3"
	"github.com/sourcegraph/conc/pool"

	"github.com/shirokuma-tools/shirokuma-docs/internal/config"
)

// skipDirs contains directory names that are never worth scanning.
var skipDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
	".git":         true,
	"dist":         true,
	"build":        true,
	"coverage":     true,
}

// Scanner discovers source files and runs the JSDoc and Zod scrapers over
// them with a bounded worker pool.
type Scanner struct {
	include      []glob.Glob
	exclude      []glob.Glob
	workers      int
	logger       *slog.Logger
	showProgress bool
}

// NewScanner compiles the include/exclude patterns from the docs config.
func NewScanner(cfg config.DocsConfig, logger *slog.Logger) (*Scanner, error) {
	include, err := compileGlobs(cfg.Include)
	if err != nil {
		return nil, fmt.Errorf("invalid include pattern: %w", err)
	}
	exclude, err := compileGlobs(cfg.Exclude)
	if err != nil {
		return nil, fmt.Errorf("invalid exclude pattern: %w", err)
	}

	workers := cfg.MaxWorkers
	if workers <= 0 {
		workers = 1
	}

	return &Scanner{
		include: include,
		exclude: exclude,
		workers: workers,
		logger:  logger,
	}, nil
}

// WithProgress enables a terminal progress bar during Scan.
func (s *Scanner) WithProgress(show bool) *Scanner {
	s.showProgress = show
	return s
}

// Scan walks root, scrapes every matching file, and returns the merged
// result. Files are processed concurrently; outputs are sorted by file and
// line so repeated scans are byte-identical.
func (s *Scanner) Scan(ctx context.Context, root string) (*ScanResult, error) {
	files, err := s.listFiles(root)
	if err != nil {
		return nil, fmt.Errorf("failed to list files under %s: %w", root, err)
	}
	s.logger.Info("scanning source annotations", "root", root, "files", len(files), "workers", s.workers)

	var bar *progressbar.ProgressBar
	if s.showProgress {
		bar = progressbar.Default(int64(len(files)), "scanning")
	}

	result := &ScanResult{Root: root, FilesScanned: len(files)}
	var mu sync.Mutex

	p := pool.New().WithMaxGoroutines(s.workers).WithContext(ctx)
	for _, rel := range files {
		rel := rel
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			source, err := os.ReadFile(filepath.Join(root, rel))
			if err != nil {
				s.logger.Warn("skipping unreadable file", "file", rel, "error", err)
				return nil
			}

			blocks := ScrapeJSDoc(rel, source)
			tables := ScrapeZodSchemas(rel, source)

			mu.Lock()
			result.Blocks = append(result.Blocks, blocks...)
			result.Tables = append(result.Tables, tables...)
			mu.Unlock()

			if bar != nil {
				_ = bar.Add(1)
			}
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(result.Blocks, func(i, j int) bool {
		if result.Blocks[i].File != result.Blocks[j].File {
			return result.Blocks[i].File < result.Blocks[j].File
		}
		return result.Blocks[i].Line < result.Blocks[j].Line
	})
	sort.Slice(result.Tables, func(i, j int) bool {
		if result.Tables[i].File != result.Tables[j].File {
			return result.Tables[i].File < result.Tables[j].File
		}
		return result.Tables[i].Line < result.Tables[j].Line
	})

	return result, nil
}

// listFiles returns the relative paths of all files under root that pass
// the include/exclude patterns.
func (s *Scanner) listFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipDirs[d.Name()] || (strings.HasPrefix(d.Name(), ".") && path != root) {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if s.matches(rel) {
			files = append(files, rel)
		}
		return nil
	})
	return files, err
}

func (s *Scanner) matches(rel string) bool {
	for _, g := range s.exclude {
		if g.Match(rel) {
			return false
		}
	}
	if len(s.include) == 0 {
		return true
	}
	for _, g := range s.include {
		if g.Match(rel) {
			return true
		}
	}
	return false
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	var globs []glob.Glob
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("%q: %w", p, err)
		}
		globs = append(globs, g)

		// "**/x" requires at least one separator, which would exclude files
		// directly under the scan root. Compile the bare suffix as well.
		if rest, ok := strings.CutPrefix(p, "**/"); ok {
			bare, err := glob.Compile(rest, '/')
			if err != nil {
				return nil, fmt.Errorf("%q: %w", rest, err)
			}
			globs = append(globs, bare)
		}
	}
	return globs, nil
}
