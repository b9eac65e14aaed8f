package comments

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type wantComment struct {
	line int
	text string
	kind Kind
}

type commentFixture struct {
	path   string
	source string
	want   []wantComment
}

// commentFixtures holds a line and a block comment for every language that
// has both. Every language returned by Languages() must have an entry.
var commentFixtures = map[LanguageID]commentFixture{
	Python: {
		path:   "app.py",
		source: "x = 1\n# line\n",
		want:   []wantComment{{2, "# line", KindLine}},
	},
	JavaScript: {
		path:   "app.js",
		source: "const x = 1;\n// line\n/* block */\n",
		want:   []wantComment{{2, "// line", KindLine}, {3, "/* block */", KindBlock}},
	},
	TypeScript: {
		path:   "app.ts",
		source: "const x: number = 1;\n// line\n/* block */\n",
		want:   []wantComment{{2, "// line", KindLine}, {3, "/* block */", KindBlock}},
	},
	TSX: {
		path:   "App.tsx",
		source: "const x = <div />;\n// line\n/* block */\n",
		want:   []wantComment{{2, "// line", KindLine}, {3, "/* block */", KindBlock}},
	},
	Golang: {
		path:   "main.go",
		source: "package main\n// line\n/* block */\nfunc main() {}\n",
		want:   []wantComment{{2, "// line", KindLine}, {3, "/* block */", KindBlock}},
	},
	Java: {
		path:   "A.java",
		source: "class A {}\n// line\n/* block */\n",
		want:   []wantComment{{2, "// line", KindLine}, {3, "/* block */", KindBlock}},
	},
	Scala: {
		path:   "A.scala",
		source: "object A {}\n// line\n/* block */\n",
		want:   []wantComment{{2, "// line", KindLine}, {3, "/* block */", KindBlock}},
	},
	C: {
		path:   "main.c",
		source: "int x;\n// line\n/* block */\n",
		want:   []wantComment{{2, "// line", KindLine}, {3, "/* block */", KindBlock}},
	},
	Cpp: {
		path:   "main.cpp",
		source: "int x;\n// line\n/* block */\n",
		want:   []wantComment{{2, "// line", KindLine}, {3, "/* block */", KindBlock}},
	},
	Rust: {
		path:   "main.rs",
		source: "fn main() {}\n/* block */\n// line",
		want:   []wantComment{{2, "/* block */", KindBlock}, {3, "// line", KindLine}},
	},
	Ruby: {
		path:   "app.rb",
		source: "x = 1\n# line\n=begin\nblock\n=end\n",
		want:   []wantComment{{2, "# line", KindLine}, {3, "=begin\nblock\n=end", KindLine}},
	},
	Bash: {
		path:   "run.sh",
		source: "echo hi\n# line\n",
		want:   []wantComment{{2, "# line", KindLine}},
	},
	CSharp: {
		path:   "A.cs",
		source: "class A {}\n// line\n/* block */\n",
		want:   []wantComment{{2, "// line", KindLine}, {3, "/* block */", KindBlock}},
	},
	Swift: {
		path:   "main.swift",
		source: "let x = 1\n// line\n/* block */\n",
		want:   []wantComment{{2, "// line", KindLine}, {3, "/* block */", KindBlock}},
	},
	Elixir: {
		path:   "app.ex",
		source: "x = 1\n# line\n",
		want:   []wantComment{{2, "# line", KindLine}},
	},
	// Dashes classify as block text whether or not brackets follow.
	Lua: {
		path:   "init.lua",
		source: "local x = 1\n-- line\n--[[ block ]]\n",
		want:   []wantComment{{2, "-- line", KindBlock}, {3, "--[[ block ]]", KindBlock}},
	},
	PHP: {
		path:   "index.php",
		source: "<?php\n$x = 1;\n// line\n/* block */\n",
		want:   []wantComment{{3, "// line", KindLine}, {4, "/* block */", KindBlock}},
	},
	// No recognized delimiter, so OCaml comments fall through to line.
	OCaml: {
		path:   "main.ml",
		source: "let x = 1\n(* block *)\n",
		want:   []wantComment{{2, "(* block *)", KindLine}},
	},
	HTML: {
		path:   "index.html",
		source: "<p>x</p>\n<!-- block -->\n",
		want:   []wantComment{{2, "<!-- block -->", KindBlock}},
	},
	CSS: {
		path:   "site.css",
		source: "a { color: red; }\n/* block */\n",
		want:   []wantComment{{2, "/* block */", KindBlock}},
	},
	YAML: {
		path:   "config.yml",
		source: "a: 1\n# line\n",
		want:   []wantComment{{2, "# line", KindLine}},
	},
	Kotlin: {
		path:   "Main.kt",
		source: "val x = 1\n// line\n/* block */\n",
		want:   []wantComment{{2, "// line", KindLine}, {3, "/* block */", KindBlock}},
	},
	HCL: {
		path:   "main.tf",
		source: "a = 1\n# line\n/* block */\n",
		want:   []wantComment{{2, "# line", KindLine}, {3, "/* block */", KindBlock}},
	},
	Dockerfile: {
		path:   "build/Dockerfile",
		source: "FROM alpine\n# line\nRUN true\n",
		want:   []wantComment{{2, "# line", KindLine}},
	},
	TOML: {
		path:   "Cargo.toml",
		source: "a = 1\n# line\n",
		want:   []wantComment{{2, "# line", KindLine}},
	},
	Protobuf: {
		path:   "api.proto",
		source: "syntax = \"proto3\";\n// line\n/* block */\n",
		want:   []wantComment{{2, "// line", KindLine}, {3, "/* block */", KindBlock}},
	},
}

func TestExtract_GenericComments(t *testing.T) {
	e := NewExtractor()
	ctx := context.Background()

	for _, id := range Languages() {
		t.Run(string(id), func(t *testing.T) {
			fx, ok := commentFixtures[id]
			require.True(t, ok, "no comment fixture for %s", id)

			got := e.Extract(ctx, fx.source, fx.path, true)
			require.Len(t, got, len(fx.want))
			for i, w := range fx.want {
				assert.Equal(t, w.line, got[i].Line(), "line of %q", w.text)
				assert.Equal(t, w.text, got[i].Text())
				assert.Equal(t, w.kind, got[i].Kind())
				assert.False(t, got[i].IsDocstring())
				assert.Equal(t, fx.path, got[i].FilePath())
			}
		})
	}
}

func TestExtract_IndentedComments(t *testing.T) {
	e := NewExtractor()
	got := e.Extract(context.Background(), "local x = 1\n\n   -- note\n", "init.lua", true)
	require.Len(t, got, 1)
	assert.Equal(t, "-- note", got[0].Text())
	assert.Equal(t, 3, got[0].Line())
}

func TestTrimSpan(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		line     int
		wantText string
		wantLine int
	}{
		{"verbatim", "# note", 4, "# note", 4},
		{"leading newline", "\n-- note", 1, "-- note", 2},
		{"leading blank lines and indent", "\n\n\t-- note", 1, "-- note", 3},
		{"trailing newline", "=begin\nx\n=end\n", 2, "=begin\nx\n=end", 2},
		{"inner whitespace kept", "/*  a\n  b  */", 1, "/*  a\n  b  */", 1},
		{"blank", " \n ", 1, "", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, line := trimSpan(tt.text, tt.line)
			assert.Equal(t, tt.wantText, text)
			assert.Equal(t, tt.wantLine, line)
		})
	}
}

func TestExtract_UnsupportedLanguage(t *testing.T) {
	e := NewExtractor()
	assert.NotPanics(t, func() {
		got := e.Extract(context.Background(), "# a comment\n// another\n", "notes.xyz", true)
		assert.Empty(t, got)
	})
}

func TestExtract_EmptySource(t *testing.T) {
	e := NewExtractor()
	assert.Empty(t, e.Extract(context.Background(), "", "main.go", true))
}

func TestExtract_MalformedSourceDoesNotFail(t *testing.T) {
	e := NewExtractor()
	assert.NotPanics(t, func() {
		e.Extract(context.Background(), "def broken(:\n    # inside\n", "broken.py", true)
		e.Extract(context.Background(), "}}} /* dangling", "broken.js", true)
	})
}

func TestExtract_Idempotent(t *testing.T) {
	source := "/** Doc. */\nfunction f() {\n  // inner\n  return 1; /* trailing */\n}\n"
	e := NewExtractor()

	first := e.Extract(context.Background(), source, "f.js", true)
	second := e.Extract(context.Background(), source, "f.js", true)
	require.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

func TestExtract_PythonDocstrings(t *testing.T) {
	source := `"""Module doc."""

class User:
    """Class doc."""

    def greet(self):
        """Method doc."""
        # say hello
        return "hi"
`
	e := NewExtractor()

	t.Run("included", func(t *testing.T) {
		got := e.Extract(context.Background(), source, "user.py", true)
		require.Len(t, got, 4)

		// Generic pass first.
		assert.Equal(t, "# say hello", got[0].Text())
		assert.Equal(t, KindLine, got[0].Kind())
		assert.Equal(t, 8, got[0].Line())

		docs := got[1:]
		assert.Equal(t, `"""Module doc."""`, docs[0].Text())
		assert.Equal(t, 1, docs[0].Line())
		assert.Equal(t, `"""Class doc."""`, docs[1].Text())
		assert.Equal(t, 4, docs[1].Line())
		assert.Equal(t, `"""Method doc."""`, docs[2].Text())
		assert.Equal(t, 7, docs[2].Line())
		for _, d := range docs {
			assert.Equal(t, KindDocstring, d.Kind())
			assert.True(t, d.IsDocstring())
		}
	})

	t.Run("excluded", func(t *testing.T) {
		got := e.Extract(context.Background(), source, "user.py", false)
		require.Len(t, got, 1)
		assert.Equal(t, "# say hello", got[0].Text())
	})
}

func TestExtract_PythonOneLineFunctionDocstring(t *testing.T) {
	e := NewExtractor()
	got := e.Extract(context.Background(), `def f(): """Return nothing."""`+"\n", "f.py", true)

	require.Len(t, got, 1)
	assert.Equal(t, KindDocstring, got[0].Kind())
	assert.True(t, got[0].IsDocstring())
	assert.Equal(t, `"""Return nothing."""`, got[0].Text())
	assert.Equal(t, 1, got[0].Line())
}

func TestExtract_PythonStringNotFirstStatementIsIgnored(t *testing.T) {
	source := "def f():\n    x = 1\n    \"\"\"not a docstring\"\"\"\n"
	e := NewExtractor()
	assert.Empty(t, e.Extract(context.Background(), source, "f.py", true))
}

func TestExtract_JSDoc(t *testing.T) {
	source := "/** Adds numbers. */\nfunction add(a, b) {\n  // plain\n  return a + b;\n}\n"
	e := NewExtractor()

	t.Run("doc comments move to the docstring pass", func(t *testing.T) {
		got := e.Extract(context.Background(), source, "add.js", true)
		require.Len(t, got, 2)

		assert.Equal(t, "// plain", got[0].Text())
		assert.Equal(t, KindLine, got[0].Kind())
		assert.Equal(t, 3, got[0].Line())

		assert.Equal(t, "/** Adds numbers. */", got[1].Text())
		assert.Equal(t, KindDocstring, got[1].Kind())
		assert.True(t, got[1].IsDocstring())
		assert.Equal(t, 1, got[1].Line())
	})

	t.Run("without docstrings the doc comment is a plain block", func(t *testing.T) {
		got := e.Extract(context.Background(), source, "add.js", false)
		require.Len(t, got, 2)

		assert.Equal(t, "/** Adds numbers. */", got[0].Text())
		assert.Equal(t, KindBlock, got[0].Kind())
		assert.False(t, got[0].IsDocstring())
		assert.Equal(t, "// plain", got[1].Text())
	})
}

func TestExtract_Javadoc(t *testing.T) {
	source := "/** Greets. */\nclass Greeter {\n  /* impl */\n}\n"
	e := NewExtractor()

	got := e.Extract(context.Background(), source, "Greeter.java", true)
	require.Len(t, got, 2)
	assert.Equal(t, "/* impl */", got[0].Text())
	assert.Equal(t, KindBlock, got[0].Kind())
	assert.Equal(t, "/** Greets. */", got[1].Text())
	assert.Equal(t, KindDocstring, got[1].Kind())
}

func TestExtract_GoHasNoDocstringPass(t *testing.T) {
	source := "package main\n\n// Run starts the app.\nfunc Run() {}\n"
	e := NewExtractor()

	got := e.Extract(context.Background(), source, "main.go", true)
	require.Len(t, got, 1)
	assert.Equal(t, KindLine, got[0].Kind())
	assert.False(t, got[0].IsDocstring())
}

func TestExtractor_QueryCompileFailure(t *testing.T) {
	e := NewExtractor()
	_, err := e.query(Python, "broken", "(no_such_node) @x", Grammar(Python))
	assert.Error(t, err)
}

func TestExtractor_QueryCache(t *testing.T) {
	e := NewExtractor()
	first, err := e.query(Golang, tierGeneric, GenericQuery(Golang), Grammar(Golang))
	require.NoError(t, err)
	second, err := e.query(Golang, tierGeneric, GenericQuery(Golang), Grammar(Golang))
	require.NoError(t, err)
	assert.Same(t, first, second)
}
