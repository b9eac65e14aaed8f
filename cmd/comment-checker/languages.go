package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/c360studio/comment-checker/processor/comments"
)

func languagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List supported languages",
		Run: func(cmd *cobra.Command, args []string) {
			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(writer, "LANGUAGE\tDOCSTRINGS\tEXTENSIONS\tFILENAMES")
			for _, id := range comments.Languages() {
				_, docs := comments.DocstringQuery(id)
				fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n",
					id,
					yesNo(docs),
					orDash(strings.Join(comments.Extensions(id), ", ")),
					orDash(strings.Join(comments.Filenames(id), ", ")))
			}
			writer.Flush()
		},
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
