package filter

import (
	"strings"

	"github.com/c360studio/comment-checker/processor/comments"
)

// defaultDirectives are prefixes of comments that configure a type checker,
// linter or formatter.
var defaultDirectives = []string{
	// Python
	"type:",
	"noqa",
	"pyright:",
	"ruff:",
	"mypy:",
	"pylint:",
	"flake8:",
	"pyre:",
	"pytype:",
	"fmt:",
	"pragma:",
	// JavaScript / TypeScript
	"eslint-disable",
	"eslint-enable",
	"eslint-ignore",
	"prettier-ignore",
	"ts-ignore",
	"ts-expect-error",
	"ts-nocheck",
	"istanbul ignore",
	"c8 ignore",
	// Rust attributes
	"clippy:",
	"allow",
	"deny",
	"warn",
	"forbid",
	// Go
	"nolint",
	"go:",
	"lint:ignore",
	// Ruby / shell
	"rubocop:",
	"shellcheck",
}

// Directive suppresses tool directives. Matching is by prefix since
// directives carry trailing arguments, e.g. "# type: ignore[arg-type]".
type Directive struct {
	prefixes []string
}

// NewDirective creates a Directive filter. Extra prefixes are matched
// case-insensitively.
func NewDirective(extra ...string) *Directive {
	prefixes := make([]string, 0, len(defaultDirectives)+len(extra))
	prefixes = append(prefixes, defaultDirectives...)
	for _, p := range extra {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			prefixes = append(prefixes, p)
		}
	}
	return &Directive{prefixes: prefixes}
}

func (*Directive) Name() string { return "directive" }

func (f *Directive) ShouldSuppress(c comments.Comment) bool {
	s := strings.ToLower(Normalize(c.Text()))
	if rest, ok := strings.CutPrefix(s, "@"); ok {
		s = strings.TrimSpace(rest)
	}
	for _, p := range f.prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
