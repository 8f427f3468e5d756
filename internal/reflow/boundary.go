package reflow

import (
	"strings"
	"unicode"

	"github.com/cybersorcerer/cmtwidth/internal/classify"
	"github.com/cybersorcerer/cmtwidth/internal/commentline"
	"github.com/cybersorcerer/cmtwidth/internal/source"
)

// docLead returns the doc comment marker of a `//` line together with the
// whitespace after it, e.g. "/ " for `/// text` and "! " for `//! text`.
// Every line of such a comment repeats it, so it is never moved or split.
func docLead(m *commentline.Model) string {
	if m.Position != commentline.PosLine || m.Prefix != "" {
		return ""
	}
	mark := len(m.Content) - len(strings.TrimLeft(m.Content, "/!"))
	if mark == 0 {
		return ""
	}
	rest := m.Content[mark:]
	space := len(rest) - len(strings.TrimLeftFunc(rest, unicode.IsSpace))
	return m.Content[:mark+space]
}

// opensStructure reports whether content, placed at the start of a line of
// a comment of the given kind, would be read as a directive, markup or a
// fixme tag.
func opensStructure(kind source.Kind, firstLine, javadoc bool, content string) bool {
	if classify.Directive(content, firstLine, javadoc) != "" || classify.Fixme(content) != "" {
		return true
	}
	prefix := ""
	if javadoc {
		prefix = "*"
	}
	markup, _ := classify.Markup(kind, prefix, content)
	return markup != ""
}

// breakable reports whether m may be split so that the new line starts with
// rest. A split must not turn prose into structure.
func breakable(m *commentline.Model, rest string) bool {
	if m.Position == commentline.PosLine {
		return !opensStructure(m.Kind, true, false, docLead(m)+rest)
	}
	// continuation lines of a block are never first lines
	return !opensStructure(m.Kind, false, m.IsJavadoc(), rest)
}
