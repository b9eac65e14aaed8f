package comments

import "strings"

// kindFromNode classifies by syntax node type. It reports false when the
// grammar uses a single undifferentiated comment node.
func kindFromNode(nodeType string) (Kind, bool) {
	switch nodeType {
	case "line_comment":
		return KindLine, true
	case "block_comment", "multiline_comment":
		return KindBlock, true
	default:
		return "", false
	}
}

// kindFromText classifies by the comment's leading delimiter.
func kindFromText(text string) Kind {
	s := strings.TrimSpace(text)
	switch {
	case strings.HasPrefix(s, `"""`), strings.HasPrefix(s, `'''`):
		return KindDocstring
	case strings.HasPrefix(s, "//"), strings.HasPrefix(s, "#"):
		return KindLine
	case strings.HasPrefix(s, "/*"), strings.HasPrefix(s, "<!--"), strings.HasPrefix(s, "--"):
		return KindBlock
	default:
		return KindLine
	}
}

// classify applies the structural tier first and falls back to the textual one.
func classify(text, nodeType string) Kind {
	if kind, ok := kindFromNode(nodeType); ok {
		return kind
	}
	return kindFromText(text)
}
