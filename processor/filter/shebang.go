package filter

import (
	"strings"

	"github.com/c360studio/comment-checker/processor/comments"
)

// Shebang suppresses interpreter lines such as "#!/usr/bin/env python".
type Shebang struct{}

// NewShebang creates a Shebang filter.
func NewShebang() Shebang { return Shebang{} }

func (Shebang) Name() string { return "shebang" }

// ShouldSuppress checks the trimmed text rather than the normalized text,
// since normalization would strip the leading "#".
func (Shebang) ShouldSuppress(c comments.Comment) bool {
	return strings.HasPrefix(strings.TrimSpace(c.Text()), "#!")
}
