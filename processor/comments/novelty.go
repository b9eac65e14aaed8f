package comments

import (
	"context"
	"slices"
)

// NewComments returns the comments of after whose text did not exist in
// before. Both sides are extracted with docstrings. Comparison is on
// normalized text only, so a relocated comment is not new while a reworded
// one is.
func (e *Extractor) NewComments(ctx context.Context, before, after, filePath string) []Comment {
	afterComments := e.Extract(ctx, after, filePath, true)
	if before == "" {
		return afterComments
	}
	beforeComments := e.Extract(ctx, before, filePath, true)
	return Novel(beforeComments, afterComments)
}

// Novel filters after down to the comments whose normalized text is absent
// from before. An empty before means everything is new.
func Novel(before, after []Comment) []Comment {
	if len(before) == 0 {
		return slices.Clone(after)
	}
	seen := make(map[string]struct{}, len(before))
	for _, c := range before {
		seen[c.Normalized()] = struct{}{}
	}
	var fresh []Comment
	for _, c := range after {
		if _, ok := seen[c.Normalized()]; !ok {
			fresh = append(fresh, c)
		}
	}
	return fresh
}
