package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/c360studio/comment-checker/output/report"
	"github.com/c360studio/comment-checker/processor/hook"
)

// runHook reads one hook payload from stdin and returns the exit status.
// Every failure before a decision is a pass.
func runHook(cmd *cobra.Command, opts *globalOptions) int {
	stderr := cmd.ErrOrStderr()

	app, err := setup(opts, stderr)
	if err != nil {
		logger := newLogger(stderr, opts.logLevel)
		logger.Warn("skipping: invalid configuration", "error", err)
		return hook.ExitPass
	}
	defer app.Close()

	input, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		app.logger.Warn("skipping: failed to read stdin", "error", err)
		return hook.ExitPass
	}
	if len(input) == 0 {
		app.logger.Warn("skipping: no input provided")
		return hook.ExitPass
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	decision := newHookHandler(app).Handle(ctx, input)
	if decision.Block {
		_, _ = fmt.Fprint(stderr, decision.Message)
	}
	return decision.ExitCode()
}

func newHookHandler(app *App) *hook.Handler {
	cfg := app.cfg
	return hook.NewHandler(hook.Config{
		Gate:              app.gate,
		Formatter:         report.NewFormatter(),
		Metrics:           app.metrics,
		Logger:            app.logger,
		Prompt:            cfg.Checker.Prompt,
		IncludeDocstrings: cfg.IncludeDocstrings(),
		Ignored:           cfg.Ignored,
	})
}
