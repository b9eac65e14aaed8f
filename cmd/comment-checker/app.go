package main

import (
	"io"
	"log/slog"
	"strings"

	"github.com/c360studio/comment-checker/config"
	"github.com/c360studio/comment-checker/metrics"
	"github.com/c360studio/comment-checker/processor/comments"
	"github.com/c360studio/comment-checker/processor/filter"
	"github.com/c360studio/comment-checker/processor/gate"
)

// App wires the configured components together.
type App struct {
	cfg     *config.Config
	logger  *slog.Logger
	metrics *metrics.Recorder
	gate    *gate.Gate
}

// NewApp creates an application instance from a loaded configuration.
func NewApp(cfg *config.Config, logger *slog.Logger) *App {
	rec := metrics.NewRecorder()
	pipeline := filter.Build(filter.Options{
		Disabled:         cfg.Filters.Disabled,
		ExtraBDDKeywords: cfg.Filters.ExtraBDDKeywords,
		ExtraDirectives:  cfg.Filters.ExtraDirectives,
	})
	return &App{
		cfg:     cfg,
		logger:  logger,
		metrics: rec,
		gate: gate.New(gate.Config{
			Extractor: comments.NewExtractor(comments.WithLogger(logger)),
			Pipeline:  pipeline,
			Metrics:   rec,
			Logger:    logger,
		}),
	}
}

// Close flushes metrics. Failures are logged, never returned.
func (a *App) Close() {
	if err := a.metrics.WriteTextfile(a.cfg.Metrics.Textfile); err != nil {
		a.logger.Warn("Failed to write metrics", "error", err)
	}
}

// setup loads configuration and builds the App. Flags override config.
func setup(opts *globalOptions, stderr io.Writer) (*App, error) {
	// Bootstrap logger until the configured level is known
	logger := newLogger(stderr, opts.logLevel)

	cfg, err := config.NewLoader(logger, config.WithConfigFile(opts.configPath)).Load()
	if err != nil {
		return nil, err
	}
	if opts.prompt != "" {
		cfg.Checker.Prompt = opts.prompt
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}

	logger = newLogger(stderr, cfg.Log.Level)
	slog.SetDefault(logger)
	return NewApp(cfg, logger), nil
}

// newLogger maps a level name to a text handler on w.
func newLogger(w io.Writer, logLevel string) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
