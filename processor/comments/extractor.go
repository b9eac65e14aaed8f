package comments

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	sitter "github.com/smacker/go-tree-sitter"
)

type queryTier string

const (
	tierGeneric   queryTier = "generic"
	tierDocstring queryTier = "docstring"
)

// defaultQueryCacheSize holds both tiers for every supported language.
const defaultQueryCacheSize = 64

// Extractor finds comments and docstrings in source text.
// It is safe for concurrent use; each call parses independently and the only
// shared state is a cache of compiled queries.
type Extractor struct {
	logger  *slog.Logger
	queries *lru.Cache[string, *sitter.Query]
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the logger used for debug output on degraded extractions.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewExtractor creates an Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{logger: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	// lru.New only fails for a non-positive size.
	e.queries, _ = lru.New[string, *sitter.Query](defaultQueryCacheSize)
	return e
}

// Extract returns every comment in source, in extraction order: the generic
// pass in source order, then the docstring pass in source order.
//
// Nothing here fails loudly. Unsupported languages, query compilation errors,
// and parse failures all yield an empty result.
func (e *Extractor) Extract(ctx context.Context, source, filePath string, includeDocstrings bool) []Comment {
	id, ok := ResolvePath(filePath)
	if !ok {
		return nil
	}
	lang := Grammar(id)
	if lang == nil {
		e.logger.Debug("No grammar for language", "language", id, "path", filePath)
		return nil
	}

	src := []byte(source)
	comments, err := e.genericPass(ctx, id, lang, src, filePath, includeDocstrings)
	if err != nil {
		e.logger.Debug("Comment extraction skipped", "language", id, "path", filePath, "error", err)
		return nil
	}

	if includeDocstrings {
		docstrings, err := e.docstringPass(ctx, id, lang, src, filePath)
		if err != nil {
			e.logger.Debug("Docstring extraction skipped", "language", id, "path", filePath, "error", err)
		}
		comments = append(comments, docstrings...)
	}

	return comments
}

func (e *Extractor) genericPass(ctx context.Context, id LanguageID, lang *sitter.Language, src []byte, filePath string, includeDocstrings bool) ([]Comment, error) {
	tree, err := parse(ctx, lang, src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	query, err := e.query(id, tierGeneric, GenericQuery(id), lang)
	if err != nil {
		return nil, err
	}

	marker := DocMarker(id)
	var comments []Comment
	for _, node := range captures(query, tree.RootNode(), src) {
		text, line := commentSpan(node, src)
		if text == "" {
			continue
		}
		// Doc-marked block comments are reported by the docstring pass.
		if includeDocstrings && marker != nil && marker.MatchString(text) {
			continue
		}
		kind := classify(text, node.Type())
		if kind == KindDocstring && !includeDocstrings {
			continue
		}
		comments = append(comments, NewComment(text, line, filePath, kind, kind == KindDocstring))
	}
	return comments, nil
}

func (e *Extractor) docstringPass(ctx context.Context, id LanguageID, lang *sitter.Language, src []byte, filePath string) ([]Comment, error) {
	pattern, ok := DocstringQuery(id)
	if !ok {
		return nil, nil
	}

	tree, err := parse(ctx, lang, src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	query, err := e.query(id, tierDocstring, pattern, lang)
	if err != nil {
		return nil, err
	}

	marker := DocMarker(id)
	var docstrings []Comment
	for _, node := range captures(query, tree.RootNode(), src) {
		text, line := commentSpan(node, src)
		if text == "" {
			continue
		}
		if marker != nil && !marker.MatchString(text) {
			continue
		}
		docstrings = append(docstrings, NewComment(text, line, filePath, KindDocstring, true))
	}
	return docstrings, nil
}

// query returns a compiled query, compiling and caching it on first use.
func (e *Extractor) query(id LanguageID, tier queryTier, pattern string, lang *sitter.Language) (*sitter.Query, error) {
	key := string(id) + "/" + string(tier)
	if q, ok := e.queries.Get(key); ok {
		return q, nil
	}
	q, err := sitter.NewQuery([]byte(pattern), lang)
	if err != nil {
		return nil, fmt.Errorf("compile %s query for %s: %w", tier, id, err)
	}
	e.queries.Add(key, q)
	return q, nil
}

func parse(ctx context.Context, lang *sitter.Language, src []byte) (*sitter.Tree, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if tree == nil {
		return nil, fmt.Errorf("parse: no tree produced")
	}
	return tree, nil
}

// captures runs a query and returns the captured nodes of every match that
// satisfies the query's predicates, in match order.
func captures(query *sitter.Query, root *sitter.Node, src []byte) []*sitter.Node {
	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(query, root)

	var nodes []*sitter.Node
	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		m = qc.FilterPredicates(m, src)
		for _, c := range m.Captures {
			nodes = append(nodes, c.Node)
		}
	}
	return nodes
}

func startLine(node *sitter.Node) int {
	return int(node.StartPoint().Row) + 1
}

// commentSpan returns the comment text and the 1-based line of its first
// delimiter. Some grammars (lua) start the token at the whitespace before the
// delimiter; that prefix and any trailing line break are not part of the
// comment.
func commentSpan(node *sitter.Node, src []byte) (string, int) {
	return trimSpan(node.Content(src), startLine(node))
}

func trimSpan(text string, line int) (string, int) {
	visible := strings.TrimLeft(text, " \t\r\n\f\v")
	line += strings.Count(text[:len(text)-len(visible)], "\n")
	return strings.TrimRight(visible, "\r\n"), line
}
