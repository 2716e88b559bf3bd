// Package obj holds the plain-record side of the Wavefront OBJ format: the
// line tokenizer, a peekable line reader, 1-based indices, vertex records and
// the vertex buffer. It knows nothing about free-form definitions.
package obj

import (
	"strings"

	"github.com/mesh-intelligence/freeform/pkg/keywords"
)

// Line is one logical OBJ line split into its parts.
type Line struct {
	Keyword string   // First field; empty for blank and comment-only lines.
	Params  []string // Remaining whitespace-separated fields.
	Comment string   // Text after the first '#', empty when absent.
	Number  int      // 1-based physical line number where the line starts.
}

// HasKeyword reports whether the line carries a statement keyword.
func (l Line) HasKeyword() bool {
	return l.Keyword != ""
}

// String reassembles the statement part of the line.
func (l Line) String() string {
	if !l.HasKeyword() {
		return ""
	}
	if len(l.Params) == 0 {
		return l.Keyword
	}
	return l.Keyword + " " + strings.Join(l.Params, " ")
}

// ParseLine tokenizes a single logical line. Continuations must already be
// joined; see Reader.
func ParseLine(text string) Line {
	var line Line
	data := text
	if i := strings.Index(text, keywords.Comment); i >= 0 {
		data = text[:i]
		line.Comment = strings.TrimRight(text[i+len(keywords.Comment):], " \t\r\n")
	}
	fields := strings.Fields(data)
	if len(fields) == 0 {
		return line
	}
	line.Keyword = fields[0]
	line.Params = fields[1:]
	return line
}
