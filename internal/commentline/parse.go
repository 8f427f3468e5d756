package commentline

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/cybersorcerer/cmtwidth/internal/classify"
	"github.com/cybersorcerer/cmtwidth/internal/source"
)

const (
	lineOpen  = "//"
	blockOpen = "/*"
	blockEnd  = "*/"
)

// ErrContract is returned when the comment metadata handed to Parse does not
// describe the text. It signals a bug in the caller, not bad input data.
var ErrContract = errors.New("comment contract violation")

// Parse builds the Model of line (1-based) of comment c, whose raw text is
// text.
func Parse(text string, c source.Comment, line int) (*Model, error) {
	pos, err := PositionOf(c, line)
	if err != nil {
		return nil, err
	}

	m := &Model{
		Kind:      c.Kind,
		Position:  pos,
		LineIndex: line,
		Text:      text,
	}

	switch pos {
	case PosLine:
		err = m.parseLine(c)
	case PosBlockSingle:
		err = m.parseBlockSingle(c)
	case PosBlockFirst:
		err = m.parseBlockFirst(c)
	case PosBlockLast:
		err = m.parseBlockLast(c)
	case PosBlockInterior:
		m.parseBlockInterior()
	}
	if err != nil {
		return nil, err
	}

	m.Markup, m.MarkupSpace = classify.Markup(m.Kind, m.Prefix, m.Content)
	m.Directive = classify.Directive(m.Content, pos.IsFirst(), m.IsJavadoc())
	m.Fixme = classify.Fixme(m.Content)
	return m, nil
}

// PositionOf tells where line sits in comment c
func PositionOf(c source.Comment, line int) (Position, error) {
	if line < c.Start.Line || line > c.End.Line {
		return 0, fmt.Errorf("%w: line %d outside comment lines %d-%d",
			ErrContract, line, c.Start.Line, c.End.Line)
	}

	switch c.Kind {
	case source.KindLine:
		if c.Start.Line != c.End.Line {
			return 0, fmt.Errorf("%w: line comment spans lines %d-%d",
				ErrContract, c.Start.Line, c.End.Line)
		}
		return PosLine, nil
	case source.KindBlock:
		switch {
		case c.Start.Line == c.End.Line:
			return PosBlockSingle, nil
		case line == c.Start.Line:
			return PosBlockFirst, nil
		case line == c.End.Line:
			return PosBlockLast, nil
		default:
			return PosBlockInterior, nil
		}
	default:
		return 0, fmt.Errorf("%w: unknown comment kind %d", ErrContract, int(c.Kind))
	}
}

// parseLine: `//` + whitespace prefix + content, always up to end of line
func (m *Model) parseLine(c source.Comment) error {
	rest, err := m.splitOpen(c.Start.Column, lineOpen)
	if err != nil {
		return err
	}
	m.Prefix = leadingSpace(rest)
	m.Content, m.Suffix = trimContent(rest[len(m.Prefix):])
	return nil
}

// parseBlockSingle: `/*` + stars and whitespace + content + `*/`
func (m *Model) parseBlockSingle(c source.Comment) error {
	closeAt, err := m.splitClose(c.End.Column)
	if err != nil {
		return err
	}
	if closeAt < c.Start.Column+len(blockOpen) {
		return fmt.Errorf("%w: close marker at column %d overlaps open marker at column %d",
			ErrContract, closeAt, c.Start.Column)
	}
	rest, err := m.splitOpen(c.Start.Column, blockOpen)
	if err != nil {
		return err
	}
	inner := rest[:closeAt-c.Start.Column-len(blockOpen)]
	m.Prefix = openingPrefix(inner)
	m.Content, m.Suffix = trimContent(inner[len(m.Prefix):])
	return nil
}

// parseBlockFirst: `/*` + stars and whitespace + content up to end of line
func (m *Model) parseBlockFirst(c source.Comment) error {
	rest, err := m.splitOpen(c.Start.Column, blockOpen)
	if err != nil {
		return err
	}
	m.Prefix = openingPrefix(rest)
	m.Content, m.Suffix = trimContent(rest[len(m.Prefix):])
	return nil
}

// parseBlockLast: whitespace + optional `* ` + content + `*/`
func (m *Model) parseBlockLast(c source.Comment) error {
	closeAt, err := m.splitClose(c.End.Column)
	if err != nil {
		return err
	}
	m.parseContinuation(m.Text[:closeAt])
	return nil
}

// parseBlockInterior: whitespace + optional `* ` + content
func (m *Model) parseBlockInterior() {
	m.parseContinuation(m.Text)
}

func (m *Model) parseContinuation(region string) {
	m.LeadWhitespace = leadingSpace(region)
	rest := region[len(m.LeadWhitespace):]
	m.Prefix = continuationPrefix(rest)
	m.Content, m.Suffix = trimContent(rest[len(m.Prefix):])
}

// splitOpen checks the open marker at col, fills Code, LeadWhitespace and
// Open, and returns the text after the marker.
func (m *Model) splitOpen(col int, open string) (string, error) {
	if col < 0 || col+len(open) > len(m.Text) || m.Text[col:col+len(open)] != open {
		return "", fmt.Errorf("%w: no %q at line %d column %d", ErrContract, open, m.LineIndex, col)
	}
	before := m.Text[:col]
	m.Code = strings.TrimRightFunc(before, unicode.IsSpace)
	m.LeadWhitespace = before[len(m.Code):]
	m.Open = open
	return m.Text[col+len(open):], nil
}

// splitClose checks the close marker ending at endCol, fills Close and After,
// and returns the column the marker starts at.
func (m *Model) splitClose(endCol int) (int, error) {
	closeAt := endCol - len(blockEnd)
	if closeAt < 0 || endCol > len(m.Text) || m.Text[closeAt:endCol] != blockEnd {
		return 0, fmt.Errorf("%w: no %q ending at line %d column %d", ErrContract, blockEnd, m.LineIndex, endCol)
	}
	m.Close = blockEnd
	m.After = m.Text[endCol:]
	return closeAt, nil
}

// openingPrefix is a run of stars followed by a run of whitespace
func openingPrefix(s string) string {
	stars := len(s) - len(strings.TrimLeft(s, "*"))
	return s[:stars+len(leadingSpace(s[stars:]))]
}

// continuationPrefix is a single star followed by whitespace, or a lone
// star with nothing after it.
func continuationPrefix(s string) string {
	if !strings.HasPrefix(s, "*") {
		return ""
	}
	if len(s) == 1 {
		return s
	}
	space := leadingSpace(s[1:])
	if space == "" {
		return ""
	}
	return s[:1+len(space)]
}

func trimContent(s string) (content, suffix string) {
	content = strings.TrimRightFunc(s, unicode.IsSpace)
	return content, s[len(content):]
}

func leadingSpace(s string) string {
	for i, r := range s {
		if !unicode.IsSpace(r) {
			return s[:i]
		}
	}
	return s
}
