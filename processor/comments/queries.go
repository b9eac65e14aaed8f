package comments

import "regexp"

// fallbackQuery captures the conventional comment node most grammars define.
const fallbackQuery = `(comment) @comment`

var genericQueries = map[LanguageID]string{
	Rust: `
(line_comment) @comment
(block_comment) @comment`,
	Java: `
(line_comment) @comment
(block_comment) @comment`,
	Scala: `
(comment) @comment
(block_comment) @comment`,
	Kotlin: `
(line_comment) @comment
(multiline_comment) @comment`,
	Swift: `
(comment) @comment
(multiline_comment) @comment`,
}

const jsdocQuery = `
((comment) @jsdoc
 (#match? @jsdoc "^/\\*\\*"))`

var docstringQueries = map[LanguageID]string{
	Python: `
(module . (expression_statement (string) @docstring))
(class_definition body: (block . (expression_statement (string) @docstring)))
(function_definition body: (block . (expression_statement (string) @docstring)))`,
	JavaScript: jsdocQuery,
	TypeScript: jsdocQuery,
	TSX:        jsdocQuery,
	Java: `
((block_comment) @javadoc
 (#match? @javadoc "^/\\*\\*"))`,
}

// docMarker recognizes doc comments that are structurally plain block
// comments. A block comment that happens to start with the marker is always a
// docstring; there is no semantic disambiguation.
var docMarker = regexp.MustCompile(`^/\*\*`)

// GenericQuery returns the query capturing every comment node for a language.
func GenericQuery(id LanguageID) string {
	if q, ok := genericQueries[id]; ok {
		return q
	}
	return fallbackQuery
}

// DocstringQuery returns the docstring query for a language, if it has one.
func DocstringQuery(id LanguageID) (string, bool) {
	q, ok := docstringQueries[id]
	return q, ok
}

// DocMarker returns the textual doc-comment marker for languages whose
// docstrings are otherwise indistinguishable from block comments.
func DocMarker(id LanguageID) *regexp.Regexp {
	switch id {
	case JavaScript, TypeScript, TSX, Java:
		return docMarker
	default:
		return nil
	}
}
