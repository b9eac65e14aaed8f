package filter

import (
	"regexp"

	"github.com/c360studio/comment-checker/processor/comments"
)

// lead tolerates leftover comment punctuation before the phrase.
const lead = `(?i)^[\s#/*-]*`

var agentMemoPatterns = compileAll(
	lead+`changed?\s+(from|to)\b`,
	lead+`modified?\s+(from|to)?\b`,
	lead+`updated?\s+(from|to)?\b`,
	lead+`refactor(ed|ing)?\b`,
	lead+`moved?\s+(from|to)\b`,
	lead+`renamed?\s+(from|to)?\b`,
	lead+`replaced?\b`,
	lead+`removed?\b`,
	lead+`deleted?\b`,
	lead+`added?\b`,
	lead+`implemented?\b`,
	lead+`this\s+(implements?|adds?|removes?|changes?|fixes?)\b`,
	lead+`here\s+we\b`,
	lead+`now\s+(we|this|it)\b`,
	lead+`previously\b`,
	lead+`before\s+this\b`,
	lead+`after\s+this\b`,
	lead+`was\s+changed\b`,
	lead+`implementation\s+(of|note)\b`,
	lead+`note:\s*\w`,
	lead+`[a-z]+\s*->\s*[a-z]+`,
	lead+`converted?\s+(from|to)\b`,
	lead+`migrated?\s+(from|to)?\b`,
	lead+`switched?\s+(from|to)\b`,

	// Korean phrasing.
	`여기(서|에서)\s*`,
	`(으로|로)\s*(바뀜|변경|변환)`,
	`구현(임|함|했|된|됨)`,
	`추가(함|했|된|됨)`,
	`삭제(함|했|된|됨)`,
	`수정(함|했|된|됨)`,
	`변경(함|했|된|됨)`,
	`리팩(터|토)링`,
	`이전(에는|엔)`,
	`기존(에는|엔|의)`,
	`에서\s+\S+\s*(으로|로)(\s|$|[[:punct:]])`,
)

func compileAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(p)
	}
	return out
}

// AgentMemo recognizes comments that narrate the edit itself ("changed from
// X to Y", "refactored", "this implements ..."). It only classifies; it never
// suppresses.
type AgentMemo struct{}

// NewAgentMemo creates an AgentMemo classifier.
func NewAgentMemo() AgentMemo { return AgentMemo{} }

// IsAgentMemo reports whether the comment reads as change narration.
func (AgentMemo) IsAgentMemo(c comments.Comment) bool {
	text := Normalize(c.Text())
	for _, re := range agentMemoPatterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// Memos returns the subset of in classified as agent memos, in input order.
func (m AgentMemo) Memos(in []comments.Comment) []comments.Comment {
	var out []comments.Comment
	for _, c := range in {
		if m.IsAgentMemo(c) {
			out = append(out, c)
		}
	}
	return out
}
