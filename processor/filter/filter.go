// Package filter suppresses comment categories that are not worth reporting
// and classifies change-narration comments.
package filter

import (
	"slices"
	"strings"

	"github.com/c360studio/comment-checker/processor/comments"
)

// Filter decides whether a single comment should be dropped from the report.
type Filter interface {
	// Name identifies the filter in config and metrics.
	Name() string
	// ShouldSuppress reports whether the comment is benign.
	ShouldSuppress(c comments.Comment) bool
}

// delimiters are tried in order; the first match is stripped.
var delimiters = []string{"#", "//", "/*", "--", "*"}

// Normalize trims the text, strips at most one leading comment delimiter and
// trims again.
func Normalize(text string) string {
	s := strings.TrimSpace(text)
	for _, d := range delimiters {
		if rest, ok := strings.CutPrefix(s, d); ok {
			return strings.TrimSpace(rest)
		}
	}
	return s
}

// Pipeline applies filters in a fixed order. A comment is dropped when any
// filter matches; filters never see each other's output.
type Pipeline struct {
	filters []Filter
}

// NewPipeline creates a pipeline over the given filters.
func NewPipeline(filters ...Filter) *Pipeline {
	return &Pipeline{filters: filters}
}

// DefaultPipeline returns the shebang, BDD and directive filters in that order.
func DefaultPipeline() *Pipeline {
	return NewPipeline(NewShebang(), NewBDD(), NewDirective())
}

// Filters returns the filters in application order.
func (p *Pipeline) Filters() []Filter {
	out := make([]Filter, len(p.filters))
	copy(out, p.filters)
	return out
}

// Suppressor returns the name of the first filter that suppresses c.
func (p *Pipeline) Suppressor(c comments.Comment) (string, bool) {
	for _, f := range p.filters {
		if f.ShouldSuppress(c) {
			return f.Name(), true
		}
	}
	return "", false
}

// Apply returns the comments no filter suppresses, in input order, and a
// count of suppressions per filter name.
func (p *Pipeline) Apply(in []comments.Comment) ([]comments.Comment, map[string]int) {
	var kept []comments.Comment
	suppressed := make(map[string]int)
	for _, c := range in {
		if name, ok := p.Suppressor(c); ok {
			suppressed[name]++
			continue
		}
		kept = append(kept, c)
	}
	return kept, suppressed
}

// Options selects and extends the default filters.
type Options struct {
	// Disabled names filters to leave out.
	Disabled []string
	// ExtraBDDKeywords extends the BDD keyword set.
	ExtraBDDKeywords []string
	// ExtraDirectives extends the directive prefix list.
	ExtraDirectives []string
}

// Build returns the default pipeline with opts applied. Order is preserved.
func Build(opts Options) *Pipeline {
	candidates := []Filter{
		NewShebang(),
		NewBDD(opts.ExtraBDDKeywords...),
		NewDirective(opts.ExtraDirectives...),
	}
	var filters []Filter
	for _, f := range candidates {
		if slices.Contains(opts.Disabled, f.Name()) {
			continue
		}
		filters = append(filters, f)
	}
	return NewPipeline(filters...)
}
