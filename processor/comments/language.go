// Package comments extracts comments and docstrings from source text using
// tree-sitter grammars and computes which of them are newly introduced by an
// edit.
package comments

import (
	"path/filepath"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/bash"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/cpp"
	"github.com/smacker/go-tree-sitter/csharp"
	"github.com/smacker/go-tree-sitter/css"
	"github.com/smacker/go-tree-sitter/dockerfile"
	"github.com/smacker/go-tree-sitter/elixir"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/hcl"
	"github.com/smacker/go-tree-sitter/html"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/kotlin"
	"github.com/smacker/go-tree-sitter/lua"
	"github.com/smacker/go-tree-sitter/ocaml"
	"github.com/smacker/go-tree-sitter/php"
	"github.com/smacker/go-tree-sitter/protobuf"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/ruby"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/scala"
	"github.com/smacker/go-tree-sitter/swift"
	"github.com/smacker/go-tree-sitter/toml"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
	"github.com/smacker/go-tree-sitter/yaml"
)

// LanguageID identifies one of the supported grammars.
type LanguageID string

const (
	Python     LanguageID = "python"
	JavaScript LanguageID = "javascript"
	TypeScript LanguageID = "typescript"
	TSX        LanguageID = "tsx"
	Golang     LanguageID = "golang"
	Java       LanguageID = "java"
	Scala      LanguageID = "scala"
	C          LanguageID = "c"
	Cpp        LanguageID = "cpp"
	Rust       LanguageID = "rust"
	Ruby       LanguageID = "ruby"
	Bash       LanguageID = "bash"
	CSharp     LanguageID = "csharp"
	Swift      LanguageID = "swift"
	Elixir     LanguageID = "elixir"
	Lua        LanguageID = "lua"
	PHP        LanguageID = "php"
	OCaml      LanguageID = "ocaml"
	HTML       LanguageID = "html"
	CSS        LanguageID = "css"
	YAML       LanguageID = "yaml"
	Kotlin     LanguageID = "kotlin"
	HCL        LanguageID = "hcl"
	Dockerfile LanguageID = "dockerfile"
	TOML       LanguageID = "toml"
	Protobuf   LanguageID = "protobuf"
)

// extensionToLanguage maps a lower-cased extension without the leading dot.
var extensionToLanguage = map[string]LanguageID{
	"py":         Python,
	"js":         JavaScript,
	"jsx":        JavaScript,
	"mjs":        JavaScript,
	"cjs":        JavaScript,
	"ts":         TypeScript,
	"mts":        TypeScript,
	"cts":        TypeScript,
	"tsx":        TSX,
	"go":         Golang,
	"java":       Java,
	"scala":      Scala,
	"sc":         Scala,
	"c":          C,
	"h":          C,
	"cpp":        Cpp,
	"cc":         Cpp,
	"cxx":        Cpp,
	"hpp":        Cpp,
	"hh":         Cpp,
	"rs":         Rust,
	"rb":         Ruby,
	"sh":         Bash,
	"bash":       Bash,
	"zsh":        Bash,
	"cs":         CSharp,
	"swift":      Swift,
	"ex":         Elixir,
	"exs":        Elixir,
	"lua":        Lua,
	"php":        PHP,
	"ml":         OCaml,
	"mli":        OCaml,
	"html":       HTML,
	"htm":        HTML,
	"css":        CSS,
	"yaml":       YAML,
	"yml":        YAML,
	"kt":         Kotlin,
	"kts":        Kotlin,
	"tf":         HCL,
	"hcl":        HCL,
	"toml":       TOML,
	"proto":      Protobuf,
	"dockerfile": Dockerfile,
}

// filenameToLanguage covers files recognized by their whole (lower-cased) name.
var filenameToLanguage = map[string]LanguageID{
	"dockerfile":    Dockerfile,
	"containerfile": Dockerfile,
	"gemfile":       Ruby,
	"rakefile":      Ruby,
	"bashrc":        Bash,
	"zshrc":         Bash,
	"profile":       Bash,
	"bash_profile":  Bash,
}

// Resolve maps a file extension, or failing that a bare file name, to a
// language. A single leading dot is ignored and the lookup is
// case-insensitive. The second return is false for anything unrecognized,
// which callers treat as "skip this file".
func Resolve(extOrName string) (LanguageID, bool) {
	key := strings.ToLower(strings.TrimPrefix(extOrName, "."))
	if key == "" {
		return "", false
	}
	if id, ok := extensionToLanguage[key]; ok {
		return id, true
	}
	id, ok := filenameToLanguage[key]
	return id, ok
}

// ResolvePath resolves the language of a logical file path. The extension is
// tried first; extensionless files fall back to their base name.
func ResolvePath(path string) (LanguageID, bool) {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext == "" || ext == base {
		return Resolve(base)
	}
	if id, ok := Resolve(ext); ok {
		return id, true
	}
	return "", false
}

// Grammar returns the tree-sitter grammar for a language, or nil.
func Grammar(id LanguageID) *sitter.Language {
	switch id {
	case Python:
		return python.GetLanguage()
	case JavaScript:
		return javascript.GetLanguage()
	case TypeScript:
		return typescript.GetLanguage()
	case TSX:
		return tsx.GetLanguage()
	case Golang:
		return golang.GetLanguage()
	case Java:
		return java.GetLanguage()
	case Scala:
		return scala.GetLanguage()
	case C:
		return c.GetLanguage()
	case Cpp:
		return cpp.GetLanguage()
	case Rust:
		return rust.GetLanguage()
	case Ruby:
		return ruby.GetLanguage()
	case Bash:
		return bash.GetLanguage()
	case CSharp:
		return csharp.GetLanguage()
	case Swift:
		return swift.GetLanguage()
	case Elixir:
		return elixir.GetLanguage()
	case Lua:
		return lua.GetLanguage()
	case PHP:
		return php.GetLanguage()
	case OCaml:
		return ocaml.GetLanguage()
	case HTML:
		return html.GetLanguage()
	case CSS:
		return css.GetLanguage()
	case YAML:
		return yaml.GetLanguage()
	case Kotlin:
		return kotlin.GetLanguage()
	case HCL:
		return hcl.GetLanguage()
	case Dockerfile:
		return dockerfile.GetLanguage()
	case TOML:
		return toml.GetLanguage()
	case Protobuf:
		return protobuf.GetLanguage()
	default:
		return nil
	}
}

// Languages returns every supported language, sorted by name.
func Languages() []LanguageID {
	seen := make(map[LanguageID]bool)
	for _, id := range extensionToLanguage {
		seen[id] = true
	}
	for _, id := range filenameToLanguage {
		seen[id] = true
	}
	ids := make([]LanguageID, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Extensions returns the sorted extension keys mapped to a language.
func Extensions(id LanguageID) []string {
	var exts []string
	for ext, lang := range extensionToLanguage {
		if lang == id {
			exts = append(exts, ext)
		}
	}
	sort.Strings(exts)
	return exts
}

// Filenames returns the sorted whole-name keys mapped to a language.
func Filenames(id LanguageID) []string {
	var names []string
	for name, lang := range filenameToLanguage {
		if lang == id {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
