package main

import (
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/c360studio/comment-checker/output/report"
	"github.com/c360studio/comment-checker/processor/watch"
)

func watchCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [dir]",
		Short: "Report comments introduced by each save under a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := setup(opts, cmd.ErrOrStderr())
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			defer app.Close()

			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolve dir: %w", err)
			}

			w, err := watch.NewWatcher(watch.Config{
				Root:              absDir,
				Debounce:          app.cfg.Watch.Debounce,
				Gate:              app.gate,
				IncludeDocstrings: app.cfg.IncludeDocstrings(),
				Ignored:           app.cfg.Ignored,
				Logger:            app.logger,
			})
			if err != nil {
				return fmt.Errorf("create watcher: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			seeded, err := w.Seed(ctx)
			if err != nil {
				return fmt.Errorf("seed snapshots: %w", err)
			}
			if err := w.Start(ctx); err != nil {
				return fmt.Errorf("start watcher: %w", err)
			}
			defer w.Stop()
			app.logger.Info("Watching", "dir", absDir, "files", seeded)

			out := cmd.OutOrStdout()
			for event := range w.Events() {
				if event.Error != nil {
					app.logger.Warn("Failed to check file", "path", event.Path, "error", event.Error)
					continue
				}
				if len(event.Comments) == 0 {
					continue
				}
				app.logger.Info("New comments",
					"path", event.Path,
					"op", event.Operation,
					"comments", len(event.Comments),
					"agent_memos", len(event.AgentMemos))
				fmt.Fprint(out, report.CommentsXML(event.Comments, event.Path)+"\n")
			}
			return nil
		},
	}
}
