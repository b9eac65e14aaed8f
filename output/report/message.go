package report

import (
	"fmt"
	"strings"

	"github.com/c360studio/comment-checker/processor/comments"
	"github.com/c360studio/comment-checker/processor/filter"
)

// CommentsPlaceholder is replaced by the rendered comments in a custom prompt.
const CommentsPlaceholder = "{{comments}}"

// Formatter builds the message shown to the editing agent.
type Formatter struct {
	memo filter.AgentMemo
}

// NewFormatter creates a Formatter.
func NewFormatter() *Formatter {
	return &Formatter{memo: filter.NewAgentMemo()}
}

// Format renders the hook message. An empty slice renders nothing. A
// non-empty customPrompt replaces the built-in guidance; its
// CommentsPlaceholder is substituted with the per-file comment blocks.
func (f *Formatter) Format(cs []comments.Comment, customPrompt string) string {
	if len(cs) == 0 {
		return ""
	}

	xml := AllCommentsXML(cs)
	if customPrompt != "" {
		return strings.ReplaceAll(customPrompt, CommentsPlaceholder, xml)
	}

	memos := f.memo.Memos(cs)

	var sb strings.Builder
	if len(memos) > 0 {
		sb.WriteString("AGENT MEMO COMMENT DETECTED - CODE SMELL ALERT\n\n")
		f.writeMemoSection(&sb, memos)
	} else {
		sb.WriteString("COMMENT/DOCSTRING DETECTED - IMMEDIATE ACTION REQUIRED\n\n")
	}
	f.writeGuidance(&sb)
	sb.WriteString("Detected comments/docstrings:\n")
	sb.WriteString(xml)
	return sb.String()
}

func (f *Formatter) writeMemoSection(sb *strings.Builder, memos []comments.Comment) {
	sb.WriteString("AGENT MEMO COMMENTS DETECTED - THIS IS A CODE SMELL\n\n")
	sb.WriteString("You left \"memo-style\" comments that describe WHAT you changed or HOW you implemented something.\n")
	sb.WriteString("These are typically signs of an AI agent leaving notes for itself or the user.\n\n")
	sb.WriteString("Examples of agent memo patterns detected:\n")
	sb.WriteString("  - \"Changed from X to Y\", \"Modified to...\", \"Updated from...\"\n")
	sb.WriteString("  - \"Added new...\", \"Removed...\", \"Refactored...\"\n")
	sb.WriteString("  - \"This implements...\", \"Here we...\", \"Now this...\"\n")
	sb.WriteString("  - \"Note:\", \"Implementation of...\"\n")
	sb.WriteString("WHY THIS IS BAD:\n")
	sb.WriteString("  1. Code should be self-documenting - if you need to explain what changed, the code isn't clear enough\n")
	sb.WriteString("  2. These comments become outdated instantly and mislead future readers\n")
	sb.WriteString("  3. Git history already tracks what changed - comments duplicate this poorly\n")
	sb.WriteString("  4. It's a sign of rushing without proper refactoring\n\n")
	sb.WriteString("ACTION REQUIRED:\n")
	sb.WriteString("  -> REMOVE these memo comments immediately\n")
	sb.WriteString("  -> If the code needs explanation, refactor it to be clearer instead\n")
	sb.WriteString("  -> Use meaningful variable/function names that explain intent\n")
	sb.WriteString("  -> Let git commit messages document the \"what\" and \"why\"\n\n")
	sb.WriteString("Detected agent memo comments:\n")
	for _, m := range memos {
		fmt.Fprintf(sb, "  - Line %d: %s\n", m.Line(), strings.TrimSpace(m.Text()))
	}
	sb.WriteString("\n---\n\n")
}

func (f *Formatter) writeGuidance(sb *strings.Builder) {
	sb.WriteString("Your recent changes contain comments or docstrings, which triggered this hook.\n")
	sb.WriteString("You need to take immediate action. You must follow the conditions below.\n")
	sb.WriteString("(Listed in priority order - you must always act according to this priority order)\n\n")
	sb.WriteString("CRITICAL WARNING: This hook message MUST NEVER be ignored, even if you receive it multiple times.\n")
	sb.WriteString("You MUST provide corresponding explanation or action for EACH occurrence of this message.\n")
	sb.WriteString("Ignoring this message or failing to respond appropriately is strictly prohibited.\n\n")
	sb.WriteString("PRIORITY-BASED ACTION GUIDELINES:\n\n")
	sb.WriteString("1. This is a comment/docstring that already existed before\n")
	sb.WriteString("\t-> Explain to the user that this is an existing comment/docstring and proceed (justify it)\n\n")
	sb.WriteString("2. This is a newly written comment: but it's in given, when, then format\n")
	sb.WriteString("\t-> Tell the user it's a BDD comment and proceed (justify it)\n")
	sb.WriteString("\t-> Note: This applies to comments only, not docstrings\n\n")
	sb.WriteString("3. This is a newly written comment/docstring: but it's necessary\n")
	sb.WriteString("\t-> Tell the user why this comment/docstring is absolutely necessary and proceed (justify it)\n")
	sb.WriteString("\t-> Examples of necessary comments: complex algorithms, security-related, performance optimization, regex, mathematical formulas\n")
	sb.WriteString("\t-> Examples of necessary docstrings: public API documentation, complex module/class interfaces\n")
	sb.WriteString("\t-> IMPORTANT: Most docstrings are unnecessary if the code is self-explanatory. Only keep truly essential ones.\n\n")
	sb.WriteString("4. This is a newly written comment/docstring: but it's an unnecessary comment/docstring\n")
	sb.WriteString("\t-> Apologize to the user and remove the comment/docstring.\n")
	sb.WriteString("\t-> Make the code itself clearer so it can be understood without comments/docstrings.\n")
	sb.WriteString("\t-> For verbose docstrings: refactor code to be self-documenting instead of adding lengthy explanations.\n\n")
	sb.WriteString("MANDATORY REQUIREMENT: You must acknowledge this hook message and take one of the above actions.\n")
	sb.WriteString("Review in the above priority order and take the corresponding action EVERY TIME this appears.\n\n")
	sb.WriteString("REMINDER: These rules apply to ALL your future code, not just this specific edit. Always be deliberate and cautious when writing comments - only add them when absolutely necessary.\n\n")
}
