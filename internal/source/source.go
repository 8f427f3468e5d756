package source

import (
	"strings"
	"unicode/utf8"
)

// Kind is the syntactic kind of a comment
type Kind int

const (
	KindLine  Kind = iota + 1 // `//` comment, always a single line
	KindBlock                 // `/* ... */` comment, possibly multi-line
)

func (k Kind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindBlock:
		return "block"
	default:
		return "unknown"
	}
}

// Position is a location in a document.
// Line is 1-based, Column is a 0-based byte offset into the line.
type Position struct {
	Line   int
	Column int
}

// Comment is a discovered comment. Start points at the first byte of the
// open marker, End points just past the last byte of the comment (exclusive).
type Comment struct {
	Kind  Kind
	Start Position
	End   Position
}

// Lines returns the number of physical lines covered by the comment
func (c Comment) Lines() int {
	return c.End.Line - c.Start.Line + 1
}

// Source gives line-indexed access to the text a comment lives in
type Source interface {
	// Line returns the raw text of line n (1-based) without its terminator
	Line(n int) (string, bool)
	// LineOffset returns the absolute byte offset of the start of line n
	LineOffset(n int) int
	// LineCount returns the number of lines
	LineCount() int
	// Newline returns the line terminator used by the document
	Newline() string
}

// Document is an in-memory Source over a string
type Document struct {
	text    string
	lines   []string
	offsets []int
	newline string
}

// NewDocument splits text into lines, accepting both \n and \r\n endings
func NewDocument(text string) *Document {
	d := &Document{text: text, newline: "\n"}
	if strings.Contains(text, "\r\n") {
		d.newline = "\r\n"
	}

	start := 0
	for {
		idx := strings.IndexByte(text[start:], '\n')
		if idx < 0 {
			d.lines = append(d.lines, text[start:])
			d.offsets = append(d.offsets, start)
			break
		}
		line := text[start : start+idx]
		line = strings.TrimSuffix(line, "\r")
		d.lines = append(d.lines, line)
		d.offsets = append(d.offsets, start)
		start += idx + 1
	}
	return d
}

// Text returns the full document text
func (d *Document) Text() string {
	return d.text
}

// Line returns line n (1-based)
func (d *Document) Line(n int) (string, bool) {
	if n < 1 || n > len(d.lines) {
		return "", false
	}
	return d.lines[n-1], true
}

// LineOffset returns the byte offset of line n, or -1 when out of range
func (d *Document) LineOffset(n int) int {
	if n < 1 || n > len(d.offsets) {
		return -1
	}
	return d.offsets[n-1]
}

// LineCount returns the number of lines
func (d *Document) LineCount() int {
	return len(d.lines)
}

// Newline returns the detected line terminator
func (d *Document) Newline() string {
	return d.newline
}

// PositionAt converts an absolute byte offset into a 0-based line and a
// 0-based character (rune) column, which is what editors expect.
func (d *Document) PositionAt(offset int) (line, character int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(d.text) {
		offset = len(d.text)
	}
	// offsets is sorted, find the last line starting at or before offset
	lo, hi := 0, len(d.offsets)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if d.offsets[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo, utf8.RuneCountInString(d.text[d.offsets[lo]:offset])
}
