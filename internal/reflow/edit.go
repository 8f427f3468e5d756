package reflow

import (
	"github.com/mattn/go-runewidth"

	"github.com/cybersorcerer/cmtwidth/internal/commentline"
)

// EditKind tells what an edit does to the comment
type EditKind int

const (
	EditSplit EditKind = iota + 1 // breaks a line in two
	EditJoin                      // pulls words up from the next line
	EditTrim                      // drops trailing whitespace
)

func (k EditKind) String() string {
	switch k {
	case EditSplit:
		return "split"
	case EditJoin:
		return "join"
	case EditTrim:
		return "trim"
	default:
		return "unknown"
	}
}

// Edit replaces the bytes [Start, End) of the source with Text.
// Offsets are absolute byte offsets into the document.
type Edit struct {
	Kind  EditKind
	Line  int // 1-based line the edit was produced for
	Start int
	End   int
	Text  string
}

// Overlaps reports whether two edits touch the same bytes. Adjacent edits
// count as overlapping.
func (e Edit) Overlaps(o Edit) bool {
	return e.Start <= o.End && o.Start <= e.End
}

// Line is a parsed comment line anchored at the absolute offset of its first
// byte.
type Line struct {
	*commentline.Model
	Offset int
}

// Width returns the rendered width of s. Tabs count as tabSize columns and
// wide runes as two.
func Width(s string, tabSize int) int {
	w := 0
	for _, r := range s {
		if r == '\t' {
			w += tabSize
			continue
		}
		w += runewidth.RuneWidth(r)
	}
	return w
}
