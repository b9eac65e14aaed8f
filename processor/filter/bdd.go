package filter

import (
	"strings"

	"github.com/c360studio/comment-checker/processor/comments"
)

var defaultBDDKeywords = []string{
	"given",
	"when",
	"then",
	"arrange",
	"act",
	"assert",
	"when & then",
	"when&then",
}

// BDD suppresses comments that consist of a single test-structure keyword,
// such as "# given" or "// Arrange". Only exact matches count.
type BDD struct {
	keywords map[string]struct{}
}

// NewBDD creates a BDD filter. Extra keywords are matched case-insensitively.
func NewBDD(extra ...string) *BDD {
	keywords := make(map[string]struct{}, len(defaultBDDKeywords)+len(extra))
	for _, k := range defaultBDDKeywords {
		keywords[k] = struct{}{}
	}
	for _, k := range extra {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			keywords[k] = struct{}{}
		}
	}
	return &BDD{keywords: keywords}
}

func (*BDD) Name() string { return "bdd" }

func (f *BDD) ShouldSuppress(c comments.Comment) bool {
	_, ok := f.keywords[strings.ToLower(Normalize(c.Text()))]
	return ok
}
