package hook

import (
	"errors"

	"github.com/tidwall/gjson"
)

// Tool names that get span-level novelty checks.
const (
	ToolWrite     = "Write"
	ToolEdit      = "Edit"
	ToolMultiEdit = "MultiEdit"
)

// ErrInvalidEnvelope is returned for input that is not a JSON object.
var ErrInvalidEnvelope = errors.New("invalid hook envelope")

// Edit is a single replacement inside a MultiEdit call.
type Edit struct {
	OldString string
	NewString string
}

// Envelope is the subset of the editing agent's tool-call payload the
// checker reads. Absent fields decode as empty strings.
type Envelope struct {
	ToolName  string
	FilePath  string
	Content   string
	OldString string
	NewString string
	Edits     []Edit
}

// Decode reads an envelope from raw hook JSON.
func Decode(data []byte) (Envelope, error) {
	if !gjson.ValidBytes(data) {
		return Envelope{}, ErrInvalidEnvelope
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return Envelope{}, ErrInvalidEnvelope
	}

	input := root.Get("tool_input")
	env := Envelope{
		ToolName:  root.Get("tool_name").String(),
		FilePath:  input.Get("file_path").String(),
		Content:   input.Get("content").String(),
		OldString: input.Get("old_string").String(),
		NewString: input.Get("new_string").String(),
	}
	input.Get("edits").ForEach(func(_, e gjson.Result) bool {
		env.Edits = append(env.Edits, Edit{
			OldString: e.Get("old_string").String(),
			NewString: e.Get("new_string").String(),
		})
		return true
	})
	return env, nil
}

// WholeFileContent is what a non-Edit tool call proposes: Write uses content,
// other tools fall back to new_string when content is empty.
func (e Envelope) WholeFileContent() string {
	if e.ToolName == ToolWrite || e.Content != "" {
		return e.Content
	}
	return e.NewString
}
