package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/c360studio/comment-checker/output/report"
	"github.com/c360studio/comment-checker/processor/scan"
)

func scanCmd(opts *globalOptions) *cobra.Command {
	var (
		root       string
		jsonOutput bool
		failFound  bool
	)

	cmd := &cobra.Command{
		Use:   "scan [patterns...]",
		Short: "Report every comment in files matching the patterns",
		Long: `Scan checks whole files instead of an edit. Patterns are doublestar
globs relative to --root (default "**/*"). Paths matching paths.ignore are
skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := setup(opts, cmd.ErrOrStderr())
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			defer app.Close()

			absRoot, err := filepath.Abs(root)
			if err != nil {
				return fmt.Errorf("resolve root: %w", err)
			}

			result, err := scan.Run(cmd.Context(), scan.Config{
				Root:              absRoot,
				Patterns:          args,
				Ignored:           app.cfg.Ignored,
				IncludeDocstrings: app.cfg.IncludeDocstrings(),
				Gate:              app.gate,
				Logger:            app.logger,
			})
			if err != nil {
				return fmt.Errorf("scan %s: %w", absRoot, err)
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(result); err != nil {
					return fmt.Errorf("encode result: %w", err)
				}
			} else {
				fmt.Fprint(out, report.AllCommentsXML(result.Comments()))
			}

			app.logger.Info("Scan finished",
				"root", absRoot,
				"scanned", result.Scanned,
				"files_with_comments", len(result.Files))

			if failFound && len(result.Files) > 0 {
				return &exitError{code: 1}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", ".", "Directory patterns are resolved against")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print JSON instead of comment blocks")
	cmd.Flags().BoolVar(&failFound, "fail", false, "Exit with status 1 when any comment is found")

	return cmd
}
