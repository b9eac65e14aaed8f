package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/comment-checker/processor/comments"
)

func comment(text string) comments.Comment {
	return comments.NewComment(text, 1, "f.py", comments.KindLine, false)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"# hello", "hello"},
		{"  //  hello  ", "hello"},
		{"/* hello */", "hello */"},
		{"-- hello", "hello"},
		{"* hello", "hello"},
		{"## twice", "# twice"},
		{"/// triple", "/ triple"},
		{"plain", "plain"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestShebang(t *testing.T) {
	f := NewShebang()
	assert.Equal(t, "shebang", f.Name())
	assert.True(t, f.ShouldSuppress(comment("#!/usr/bin/env python")))
	assert.True(t, f.ShouldSuppress(comment("  #!/bin/bash\n")))
	assert.False(t, f.ShouldSuppress(comment("# !important")))
	assert.False(t, f.ShouldSuppress(comment("// #!not at start")))
}

func TestBDD(t *testing.T) {
	f := NewBDD()
	assert.Equal(t, "bdd", f.Name())

	suppressed := []string{
		"# when",
		"# Given",
		"// THEN",
		"-- arrange",
		"/* act",
		"* assert",
		"# when & then",
		"// When&Then",
	}
	for _, text := range suppressed {
		assert.True(t, f.ShouldSuppress(comment(text)), text)
	}

	kept := []string{
		"# when this happens",
		"# given a user",
		"# whenever",
		"/* when */",
		"# the end",
	}
	for _, text := range kept {
		assert.False(t, f.ShouldSuppress(comment(text)), text)
	}
}

func TestBDD_ExtraKeywords(t *testing.T) {
	f := NewBDD("Expect", "  ", "setup")
	assert.True(t, f.ShouldSuppress(comment("# expect")))
	assert.True(t, f.ShouldSuppress(comment("// Setup")))
	assert.True(t, f.ShouldSuppress(comment("# given")))
	assert.False(t, f.ShouldSuppress(comment("#")))
}

func TestDirective(t *testing.T) {
	f := NewDirective()
	assert.Equal(t, "directive", f.Name())

	suppressed := []string{
		"# type: ignore[arg-type]",
		"# noqa: E501",
		"# pyright: basic",
		"// eslint-disable-next-line no-console",
		"// @ts-ignore",
		"// @ts-expect-error wrong type",
		"/* prettier-ignore */",
		"// clippy::needless_return",
		"// nolint:errcheck",
		"//go:generate stringer -type=Kind",
		"# pragma: no cover",
		"# rubocop:disable Style/Foo",
		"# shellcheck disable=SC2086",
	}
	for _, text := range suppressed {
		assert.True(t, f.ShouldSuppress(comment(text)), text)
	}

	kept := []string{
		"# typewriter notes",
		"# the type: of thing",
		"// compute the total",
		"# no quarter",
	}
	for _, text := range kept {
		assert.False(t, f.ShouldSuppress(comment(text)), text)
	}
}

func TestDirective_ExtraPrefixes(t *testing.T) {
	f := NewDirective("CSpell:", "")
	assert.True(t, f.ShouldSuppress(comment("// cspell:disable")))
	assert.False(t, f.ShouldSuppress(comment("// spelling")))
}

func TestPipeline_Apply(t *testing.T) {
	p := DefaultPipeline()
	in := []comments.Comment{
		comment("#!/usr/bin/env python"),
		comment("# given"),
		comment("# type: ignore"),
		comment("# compute the checksum"),
		comment("# when this happens"),
	}

	kept, suppressed := p.Apply(in)

	require.Len(t, kept, 2)
	assert.Equal(t, "# compute the checksum", kept[0].Text())
	assert.Equal(t, "# when this happens", kept[1].Text())
	assert.Equal(t, map[string]int{"shebang": 1, "bdd": 1, "directive": 1}, suppressed)
	assert.Len(t, in, 5)
}

func TestPipeline_Empty(t *testing.T) {
	kept, suppressed := NewPipeline().Apply([]comments.Comment{comment("# x")})
	assert.Len(t, kept, 1)
	assert.Empty(t, suppressed)

	kept, _ = DefaultPipeline().Apply(nil)
	assert.Empty(t, kept)
}

func TestPipeline_FiltersIsACopy(t *testing.T) {
	p := DefaultPipeline()
	fs := p.Filters()
	require.Len(t, fs, 3)
	assert.Equal(t, "shebang", fs[0].Name())
	assert.Equal(t, "bdd", fs[1].Name())
	assert.Equal(t, "directive", fs[2].Name())

	fs[0] = nil
	assert.NotNil(t, p.Filters()[0])
}

func TestPipeline_Suppressor(t *testing.T) {
	p := DefaultPipeline()

	name, ok := p.Suppressor(comment("# noqa"))
	assert.True(t, ok)
	assert.Equal(t, "directive", name)

	_, ok = p.Suppressor(comment("# real prose"))
	assert.False(t, ok)
}

func TestBuild(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		fs := Build(Options{}).Filters()
		require.Len(t, fs, 3)
		assert.Equal(t, "shebang", fs[0].Name())
		assert.Equal(t, "directive", fs[2].Name())
	})

	t.Run("disabled", func(t *testing.T) {
		p := Build(Options{Disabled: []string{"bdd"}})
		require.Len(t, p.Filters(), 2)
		_, ok := p.Suppressor(comment("# given"))
		assert.False(t, ok)
	})

	t.Run("extras", func(t *testing.T) {
		p := Build(Options{ExtraBDDKeywords: []string{"expect"}, ExtraDirectives: []string{"cspell:"}})
		name, ok := p.Suppressor(comment("# Expect"))
		assert.True(t, ok)
		assert.Equal(t, "bdd", name)
		name, ok = p.Suppressor(comment("// cspell:ignore foo"))
		assert.True(t, ok)
		assert.Equal(t, "directive", name)
	})
}
