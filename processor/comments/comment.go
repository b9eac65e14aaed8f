package comments

import (
	"encoding/json"
	"maps"
	"strings"
)

// Kind classifies a comment. The three kinds are mutually exclusive.
type Kind string

const (
	KindLine      Kind = "line"
	KindBlock     Kind = "block"
	KindDocstring Kind = "docstring"
)

// Comment is a single comment or docstring found in source text.
// Values are immutable; transformations always build new slices.
type Comment struct {
	text        string
	line        int
	filePath    string
	kind        Kind
	isDocstring bool
	metadata    map[string]string
}

// NewComment builds a Comment. Text is the verbatim node slice including its
// delimiters and line is 1-based.
func NewComment(text string, line int, filePath string, kind Kind, isDocstring bool) Comment {
	return Comment{
		text:        text,
		line:        line,
		filePath:    filePath,
		kind:        kind,
		isDocstring: isDocstring,
	}
}

func (c Comment) Text() string      { return c.text }
func (c Comment) Line() int         { return c.line }
func (c Comment) FilePath() string  { return c.filePath }
func (c Comment) Kind() Kind        { return c.kind }
func (c Comment) IsDocstring() bool { return c.isDocstring }

// Metadata returns a copy of the collaborator-owned metadata, or nil.
func (c Comment) Metadata() map[string]string {
	return maps.Clone(c.metadata)
}

// WithMetadata returns a copy of c carrying the given key/value pair.
func (c Comment) WithMetadata(key, value string) Comment {
	md := maps.Clone(c.metadata)
	if md == nil {
		md = make(map[string]string, 1)
	}
	md[key] = value
	c.metadata = md
	return c
}

// Normalized is the form used for novelty comparison: trimmed and lower-cased.
func (c Comment) Normalized() string {
	return strings.ToLower(strings.TrimSpace(c.text))
}

type commentJSON struct {
	Text        string            `json:"text"`
	Line        int               `json:"line"`
	FilePath    string            `json:"file_path"`
	Kind        Kind              `json:"kind"`
	IsDocstring bool              `json:"is_docstring"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (c Comment) MarshalJSON() ([]byte, error) {
	return json.Marshal(commentJSON{
		Text:        c.text,
		Line:        c.line,
		FilePath:    c.filePath,
		Kind:        c.kind,
		IsDocstring: c.isDocstring,
		Metadata:    c.metadata,
	})
}
