// Package gate runs one file, or one edited span of a file, through
// extraction, novelty filtering and the policy filters.
package gate

import (
	"context"
	"log/slog"

	"github.com/c360studio/comment-checker/metrics"
	"github.com/c360studio/comment-checker/processor/comments"
	"github.com/c360studio/comment-checker/processor/filter"
)

// Input describes a single check. Before is nil when there is no prior
// snapshot (whole-file writes); After is the proposed text.
type Input struct {
	FilePath          string
	Before            *string
	After             string
	IncludeDocstrings bool
}

// Result is the outcome of a check. Comments is in extraction order and
// already filtered; AgentMemos is the subset of Comments narrating the edit.
type Result struct {
	Language   comments.LanguageID
	Supported  bool
	Comments   []comments.Comment
	AgentMemos []comments.Comment
	Suppressed map[string]int
}

// Gate composes the extractor and filter pipeline.
type Gate struct {
	extractor *comments.Extractor
	pipeline  *filter.Pipeline
	memo      filter.AgentMemo
	metrics   *metrics.Recorder
	logger    *slog.Logger
}

// Config configures a Gate. Zero values select defaults.
type Config struct {
	Extractor *comments.Extractor
	Pipeline  *filter.Pipeline
	Metrics   *metrics.Recorder
	Logger    *slog.Logger
}

// New creates a Gate.
func New(cfg Config) *Gate {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	extractor := cfg.Extractor
	if extractor == nil {
		extractor = comments.NewExtractor(comments.WithLogger(logger))
	}
	pipeline := cfg.Pipeline
	if pipeline == nil {
		pipeline = filter.DefaultPipeline()
	}
	return &Gate{
		extractor: extractor,
		pipeline:  pipeline,
		memo:      filter.NewAgentMemo(),
		metrics:   cfg.Metrics,
		logger:    logger,
	}
}

// Supports reports whether a path resolves to a supported language.
func (g *Gate) Supports(filePath string) bool {
	_, ok := comments.ResolvePath(filePath)
	return ok
}

// Check runs a single check. It never fails: anything that prevents
// extraction results in an empty Result.
func (g *Gate) Check(ctx context.Context, in Input) Result {
	id, ok := comments.ResolvePath(in.FilePath)
	res := Result{Language: id, Supported: ok, Suppressed: map[string]int{}}
	if !ok {
		return res
	}

	var found []comments.Comment
	switch {
	case in.Before == nil:
		found = g.extractor.Extract(ctx, in.After, in.FilePath, in.IncludeDocstrings)
	case in.IncludeDocstrings:
		found = g.extractor.NewComments(ctx, *in.Before, in.After, in.FilePath)
	default:
		before := g.extractor.Extract(ctx, *in.Before, in.FilePath, false)
		found = comments.Novel(before, g.extractor.Extract(ctx, in.After, in.FilePath, false))
	}

	kept, suppressed := g.pipeline.Apply(found)
	res.Comments = kept
	res.Suppressed = suppressed
	res.AgentMemos = g.memo.Memos(kept)

	for name, n := range suppressed {
		g.metrics.Suppressed(name, n)
	}
	for _, c := range kept {
		g.metrics.Detected(string(id), string(c.Kind()))
	}

	g.logger.Debug("Checked file",
		"path", in.FilePath,
		"language", id,
		"found", len(found),
		"reported", len(kept),
		"agent_memos", len(res.AgentMemos))

	return res
}
