// Package scan checks every supported file matching a set of globs and
// reports all of its comments.
package scan

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/c360studio/comment-checker/processor/comments"
	"github.com/c360studio/comment-checker/processor/gate"
)

// DefaultPattern matches every file below the root.
const DefaultPattern = "**/*"

// Config configures a scan.
type Config struct {
	// Root is the directory patterns are resolved against
	Root string
	// Patterns are doublestar globs relative to Root (default: **/*)
	Patterns []string
	// Ignored reports slash-separated relative paths to leave out
	Ignored func(path string) bool
	// IncludeDocstrings reports docstrings as well as comments
	IncludeDocstrings bool
	// Gate runs the checks. Nil uses a default gate.
	Gate   *gate.Gate
	Logger *slog.Logger
}

// FileReport holds the reported comments of one file.
type FileReport struct {
	Path       string              `json:"path"`
	Language   comments.LanguageID `json:"language"`
	Comments   []comments.Comment  `json:"comments"`
	AgentMemos int                 `json:"agent_memos"`
	Suppressed map[string]int      `json:"suppressed,omitempty"`
}

// Report is the result of a scan. Files lists only files with comments, in
// path order.
type Report struct {
	Scanned int          `json:"scanned"`
	Files   []FileReport `json:"files"`
}

// Comments flattens the report in file order.
func (r *Report) Comments() []comments.Comment {
	var out []comments.Comment
	for _, f := range r.Files {
		out = append(out, f.Comments...)
	}
	return out
}

// Run scans cfg.Root.
func Run(ctx context.Context, cfg Config) (*Report, error) {
	if cfg.Root == "" {
		cfg.Root = "."
	}
	return RunFS(ctx, os.DirFS(cfg.Root), cfg)
}

// RunFS scans an fs.FS; cfg.Root is ignored.
func RunFS(ctx context.Context, fsys fs.FS, cfg Config) (*Report, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	g := cfg.Gate
	if g == nil {
		g = gate.New(gate.Config{Logger: logger})
	}

	paths, err := match(fsys, cfg.Patterns)
	if err != nil {
		return nil, err
	}

	report := &Report{}
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !g.Supports(path) || (cfg.Ignored != nil && cfg.Ignored(path)) {
			continue
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			logger.Warn("Failed to read file", "path", path, "error", err)
			continue
		}
		report.Scanned++

		res := g.Check(ctx, gate.Input{
			FilePath:          path,
			After:             string(data),
			IncludeDocstrings: cfg.IncludeDocstrings,
		})
		if len(res.Comments) == 0 {
			continue
		}
		report.Files = append(report.Files, FileReport{
			Path:       path,
			Language:   res.Language,
			Comments:   res.Comments,
			AgentMemos: len(res.AgentMemos),
			Suppressed: res.Suppressed,
		})
	}

	logger.Debug("Scan complete", "scanned", report.Scanned, "with_comments", len(report.Files))
	return report, nil
}

// match expands the patterns to a sorted, de-duplicated file list.
func match(fsys fs.FS, patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = []string{DefaultPattern}
	}

	seen := make(map[string]bool)
	var paths []string
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid pattern %q", pattern)
		}
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				paths = append(paths, m)
			}
		}
	}
	sort.Strings(paths)
	return paths, nil
}
