// Package commentline parses one physical source line covered by a comment
// into its regions: lead whitespace, open marker, prefix, content, suffix and
// close marker.
package commentline

import (
	"github.com/cybersorcerer/cmtwidth/internal/classify"
	"github.com/cybersorcerer/cmtwidth/internal/source"
)

// Position is where a line sits inside its comment
type Position int

const (
	PosLine          Position = iota + 1 // `//` comment
	PosBlockSingle                       // `/* ... */` on one line
	PosBlockFirst                        // opening line of a multi-line block
	PosBlockInterior                     // neither first nor last
	PosBlockLast                         // closing line of a multi-line block
)

func (p Position) String() string {
	switch p {
	case PosLine:
		return "line"
	case PosBlockSingle:
		return "block-single"
	case PosBlockFirst:
		return "block-first"
	case PosBlockInterior:
		return "block-interior"
	case PosBlockLast:
		return "block-last"
	default:
		return "unknown"
	}
}

// IsFirst reports whether the line opens its comment
func (p Position) IsFirst() bool {
	return p == PosLine || p == PosBlockSingle || p == PosBlockFirst
}

// Model is the parsed view of a single comment line. Every string field is a
// substring of Text and
//
//	Code + LeadWhitespace + Open + Prefix + Content + Suffix + Close + After == Text
type Model struct {
	Kind      source.Kind
	Position  Position
	LineIndex int
	Text      string

	Code           string // code before a trailing comment
	LeadWhitespace string
	Open           string
	Prefix         string
	Content        string
	Suffix         string
	Close          string
	After          string // code after the close marker

	Markup      string
	MarkupSpace string
	Directive   string
	Fixme       string
}

// Head returns everything on the line before Content
func (m *Model) Head() string {
	return m.Code + m.LeadWhitespace + m.Open + m.Prefix
}

// ContentStart is the byte offset of Content within Text
func (m *Model) ContentStart() int {
	return len(m.Head())
}

// ContentEnd is the byte offset just past Content within Text
func (m *Model) ContentEnd() int {
	return m.ContentStart() + len(m.Content)
}

// Tail returns everything on the line after Content
func (m *Model) Tail() string {
	return m.Suffix + m.Close + m.After
}

// Indent is the leading whitespace of the physical line. It differs from
// LeadWhitespace on lines where code precedes the comment.
func (m *Model) Indent() string {
	if m.Code == "" {
		return m.LeadWhitespace
	}
	return leadingSpace(m.Code)
}

// HasCode reports whether code shares the line with the comment
func (m *Model) HasCode() bool {
	return m.Code != "" || m.After != ""
}

// IsBlank reports whether the line carries no content
func (m *Model) IsBlank() bool {
	return m.Content == ""
}

// IsJavadoc reports whether the line uses a star prefix
func (m *Model) IsJavadoc() bool {
	return len(m.Prefix) > 0 && m.Prefix[0] == '*'
}

// IsTable reports whether the line is a markdown table row
func (m *Model) IsTable() bool {
	return classify.IsTable(m.Markup)
}

// String reassembles the regions, which always yields Text
func (m *Model) String() string {
	return m.Head() + m.Content + m.Tail()
}
