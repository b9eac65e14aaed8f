// Package report renders detected comments for the editing agent.
package report

import (
	"fmt"
	"strings"

	"github.com/c360studio/comment-checker/processor/comments"
)

// CommentsXML renders the comments of one file as a <comments> block.
// Comment text is written verbatim.
func CommentsXML(cs []comments.Comment, filePath string) string {
	if len(cs) == 0 {
		return ""
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "<comments file=\"%s\">\n", filePath)
	for _, c := range cs {
		fmt.Fprintf(&sb, "\t<comment line-number=\"%d\">%s</comment>\n", c.Line(), c.Text())
	}
	sb.WriteString("</comments>")
	return sb.String()
}

// fileGroup holds the comments of one file.
type fileGroup struct {
	path     string
	comments []comments.Comment
}

// groupByFile groups comments by file path in first-seen order.
func groupByFile(cs []comments.Comment) []fileGroup {
	index := make(map[string]int)
	var groups []fileGroup
	for _, c := range cs {
		i, ok := index[c.FilePath()]
		if !ok {
			i = len(groups)
			index[c.FilePath()] = i
			groups = append(groups, fileGroup{path: c.FilePath()})
		}
		groups[i].comments = append(groups[i].comments, c)
	}
	return groups
}

// AllCommentsXML renders one block per file, each followed by a newline.
func AllCommentsXML(cs []comments.Comment) string {
	var sb strings.Builder
	for _, g := range groupByFile(cs) {
		sb.WriteString(CommentsXML(g.comments, g.path))
		sb.WriteString("\n")
	}
	return sb.String()
}
