// Package hook decides whether an editing agent's tool call introduces
// comments that should be pushed back to the agent.
package hook

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/c360studio/comment-checker/metrics"
	"github.com/c360studio/comment-checker/output/report"
	"github.com/c360studio/comment-checker/processor/comments"
	"github.com/c360studio/comment-checker/processor/gate"
)

// Exit codes understood by the agent's hook runner.
const (
	ExitPass  = 0
	ExitBlock = 2
)

// Skip reasons, logged and reported in Decision.Reason.
const (
	ReasonInvalidInput = "invalid input format"
	ReasonNoFilePath   = "no file path provided"
	ReasonUnsupported  = "non-code file"
	ReasonIgnored      = "ignored path"
	ReasonNoContent    = "no content to check"
	ReasonClean        = "no problematic comments/docstrings found"
	ReasonFound        = "comments/docstrings found"
)

// Decision is the outcome of one hook invocation.
type Decision struct {
	Block   bool
	Message string
	Reason  string
}

// ExitCode maps the decision to the process exit status.
func (d Decision) ExitCode() int {
	if d.Block {
		return ExitBlock
	}
	return ExitPass
}

// Config configures a Handler.
type Config struct {
	Gate              *gate.Gate
	Formatter         *report.Formatter
	Metrics           *metrics.Recorder
	Logger            *slog.Logger
	Prompt            string
	IncludeDocstrings bool
	// Ignored reports paths that are never checked. Nil ignores nothing.
	Ignored func(path string) bool
}

// Handler processes hook envelopes.
type Handler struct {
	gate              *gate.Gate
	formatter         *report.Formatter
	metrics           *metrics.Recorder
	logger            *slog.Logger
	prompt            string
	includeDocstrings bool
	ignored           func(string) bool
}

// NewHandler creates a Handler. Nil collaborators are replaced by defaults.
func NewHandler(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	g := cfg.Gate
	if g == nil {
		g = gate.New(gate.Config{Metrics: cfg.Metrics, Logger: logger})
	}
	formatter := cfg.Formatter
	if formatter == nil {
		formatter = report.NewFormatter()
	}
	ignored := cfg.Ignored
	if ignored == nil {
		ignored = func(string) bool { return false }
	}
	return &Handler{
		gate:              g,
		formatter:         formatter,
		metrics:           cfg.Metrics,
		logger:            logger,
		prompt:            cfg.Prompt,
		includeDocstrings: cfg.IncludeDocstrings,
		ignored:           ignored,
	}
}

// Handle decodes raw hook JSON and decides. It never fails; every problem
// with the input is a pass.
func (h *Handler) Handle(ctx context.Context, data []byte) Decision {
	logger := h.logger.With("run_id", uuid.NewString())

	env, err := Decode(data)
	if err != nil {
		return h.skip(logger, ReasonInvalidInput)
	}
	return h.decide(ctx, logger, env)
}

// HandleEnvelope decides for an already decoded envelope.
func (h *Handler) HandleEnvelope(ctx context.Context, env Envelope) Decision {
	return h.decide(ctx, h.logger.With("run_id", uuid.NewString()), env)
}

func (h *Handler) decide(ctx context.Context, logger *slog.Logger, env Envelope) Decision {
	if env.FilePath == "" {
		return h.skip(logger, ReasonNoFilePath)
	}
	if !h.gate.Supports(env.FilePath) {
		return h.skip(logger, ReasonUnsupported)
	}
	if h.ignored(env.FilePath) {
		return h.skip(logger, ReasonIgnored)
	}
	logger = logger.With("tool", env.ToolName, "path", env.FilePath)

	found, ok := h.collect(ctx, env)
	if !ok {
		return h.skip(logger, ReasonNoContent)
	}
	if len(found) == 0 {
		logger.Info("success: " + ReasonClean)
		h.metrics.Decision("pass")
		return Decision{Reason: ReasonClean}
	}

	logger.Info("blocking", "comments", len(found))
	h.metrics.Decision("block")
	return Decision{
		Block:   true,
		Message: h.formatter.Format(found, h.prompt),
		Reason:  ReasonFound,
	}
}

// collect runs the gate for every span the tool call touches. The boolean is
// false when there was nothing to check.
func (h *Handler) collect(ctx context.Context, env Envelope) ([]comments.Comment, bool) {
	switch env.ToolName {
	case ToolEdit:
		if env.NewString == "" {
			return nil, false
		}
		return h.span(ctx, env.FilePath, env.OldString, env.NewString), true

	case ToolMultiEdit:
		if len(env.Edits) == 0 {
			return nil, false
		}
		var all []comments.Comment
		for _, e := range env.Edits {
			if e.NewString == "" {
				continue
			}
			all = append(all, h.span(ctx, env.FilePath, e.OldString, e.NewString)...)
		}
		return all, true

	default:
		content := env.WholeFileContent()
		if content == "" {
			return nil, false
		}
		res := h.gate.Check(ctx, gate.Input{
			FilePath:          env.FilePath,
			After:             content,
			IncludeDocstrings: h.includeDocstrings,
		})
		return res.Comments, true
	}
}

func (h *Handler) span(ctx context.Context, filePath, before, after string) []comments.Comment {
	res := h.gate.Check(ctx, gate.Input{
		FilePath:          filePath,
		Before:            &before,
		After:             after,
		IncludeDocstrings: h.includeDocstrings,
	})
	return res.Comments
}

func (h *Handler) skip(logger *slog.Logger, reason string) Decision {
	logger.Warn("skipping: " + reason)
	h.metrics.Decision("skip")
	return Decision{Reason: reason}
}
