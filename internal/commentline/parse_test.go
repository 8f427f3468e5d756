package commentline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybersorcerer/cmtwidth/internal/source"
)

func lineComment(line, col int, text string) source.Comment {
	return source.Comment{
		Kind:  source.KindLine,
		Start: source.Position{Line: line, Column: col},
		End:   source.Position{Line: line, Column: len(text)},
	}
}

func blockComment(startLine, startCol, endLine, endCol int) source.Comment {
	return source.Comment{
		Kind:  source.KindBlock,
		Start: source.Position{Line: startLine, Column: startCol},
		End:   source.Position{Line: endLine, Column: endCol},
	}
}

func TestParseLineComment(t *testing.T) {
	text := "    //  hello world  "
	m, err := Parse(text, lineComment(3, 4, text), 3)
	require.NoError(t, err)

	assert.Equal(t, PosLine, m.Position)
	assert.Equal(t, 3, m.LineIndex)
	assert.Equal(t, "", m.Code)
	assert.Equal(t, "    ", m.LeadWhitespace)
	assert.Equal(t, "//", m.Open)
	assert.Equal(t, "  ", m.Prefix)
	assert.Equal(t, "hello world", m.Content)
	assert.Equal(t, "  ", m.Suffix)
	assert.Equal(t, "", m.Close)
	assert.Equal(t, "", m.Markup)
	assert.Equal(t, text, m.String())
	assert.Equal(t, 8, m.ContentStart())
	assert.Equal(t, 19, m.ContentEnd())
}

func TestParseTrailingLineComment(t *testing.T) {
	text := "\tx := 1 // set x"
	m, err := Parse(text, lineComment(1, 8, text), 1)
	require.NoError(t, err)

	assert.Equal(t, "\tx := 1", m.Code)
	assert.Equal(t, " ", m.LeadWhitespace)
	assert.Equal(t, "set x", m.Content)
	assert.Equal(t, "\t", m.Indent())
	assert.True(t, m.HasCode())
	assert.Equal(t, text, m.String())
}

func TestParseLineCommentMarkupIgnored(t *testing.T) {
	text := "// - not a bullet"
	m, err := Parse(text, lineComment(1, 0, text), 1)
	require.NoError(t, err)
	assert.Equal(t, "", m.Markup)
	assert.Equal(t, "- not a bullet", m.Content)
}

func TestParseBlockSingle(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		start   int
		prefix  string
		content string
		suffix  string
		after   string
	}{
		{"tight", "/*01234567890123456789*/", 0, "", "01234567890123456789", "", ""},
		{"spaced", "  /* hello */", 2, " ", "hello", " ", ""},
		{"javadoc", "/** @type {number} */", 0, "* ", "@type {number}", " ", ""},
		{"empty", "/**/", 0, "", "", "", ""},
		{"code after", "/* a */ int x;", 0, " ", "a", " ", " int x;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			end := len(tt.text) - len(tt.after)
			m, err := Parse(tt.text, blockComment(1, tt.start, 1, end), 1)
			require.NoError(t, err)

			assert.Equal(t, PosBlockSingle, m.Position)
			assert.Equal(t, "/*", m.Open)
			assert.Equal(t, "*/", m.Close)
			assert.Equal(t, tt.prefix, m.Prefix)
			assert.Equal(t, tt.content, m.Content)
			assert.Equal(t, tt.suffix, m.Suffix)
			assert.Equal(t, tt.after, m.After)
			assert.Equal(t, tt.text, m.String())
		})
	}
}

func TestParseBlockMultiLine(t *testing.T) {
	lines := []string{
		"  /**",
		"   * Summary line.",
		"   *",
		"   * - first item",
		"   no star here",
		"   * | a | b |",
		"   * @param x value */",
	}
	c := blockComment(10, 2, 16, len(lines[6]))

	first, err := Parse(lines[0], c, 10)
	require.NoError(t, err)
	assert.Equal(t, PosBlockFirst, first.Position)
	assert.Equal(t, "  ", first.LeadWhitespace)
	assert.Equal(t, "/*", first.Open)
	assert.Equal(t, "*", first.Prefix)
	assert.True(t, first.IsBlank())

	summary, err := Parse(lines[1], c, 11)
	require.NoError(t, err)
	assert.Equal(t, PosBlockInterior, summary.Position)
	assert.Equal(t, "   ", summary.LeadWhitespace)
	assert.Equal(t, "", summary.Open)
	assert.Equal(t, "* ", summary.Prefix)
	assert.Equal(t, "Summary line.", summary.Content)

	blank, err := Parse(lines[2], c, 12)
	require.NoError(t, err)
	assert.Equal(t, "*", blank.Prefix)
	assert.True(t, blank.IsBlank())

	item, err := Parse(lines[3], c, 13)
	require.NoError(t, err)
	assert.Equal(t, "-", item.Markup)
	assert.Equal(t, " ", item.MarkupSpace)

	bare, err := Parse(lines[4], c, 14)
	require.NoError(t, err)
	assert.Equal(t, "", bare.Prefix)
	assert.Equal(t, "no star here", bare.Content)
	assert.Equal(t, "", bare.Markup)

	table, err := Parse(lines[5], c, 15)
	require.NoError(t, err)
	assert.Equal(t, "| a | b |", table.Markup)
	assert.Equal(t, "", table.MarkupSpace)
	assert.True(t, table.IsTable())

	last, err := Parse(lines[6], c, 16)
	require.NoError(t, err)
	assert.Equal(t, PosBlockLast, last.Position)
	assert.Equal(t, "* ", last.Prefix)
	assert.Equal(t, "@param x value", last.Content)
	assert.Equal(t, " ", last.Suffix)
	assert.Equal(t, "*/", last.Close)
	assert.Equal(t, "@param", last.Markup)

	for i, text := range lines {
		m, err := Parse(text, c, 10+i)
		require.NoError(t, err)
		assert.Equal(t, text, m.String(), "line %d", 10+i)
	}
}

func TestParseBlockLastCloseOnly(t *testing.T) {
	text := "   */"
	m, err := Parse(text, blockComment(1, 0, 3, len(text)), 3)
	require.NoError(t, err)
	assert.Equal(t, "   ", m.LeadWhitespace)
	assert.Equal(t, "", m.Prefix)
	assert.True(t, m.IsBlank())
	assert.Equal(t, "*/", m.Close)
}

func TestParseClassifiesDirectivesAndFixme(t *testing.T) {
	text := "// eslint-disable-next-line no-console"
	m, err := Parse(text, lineComment(1, 0, text), 1)
	require.NoError(t, err)
	assert.Equal(t, "eslint-disable-next-line", m.Directive)

	text = "/* eslint-env node */"
	m, err = Parse(text, blockComment(1, 0, 1, len(text)), 1)
	require.NoError(t, err)
	assert.Equal(t, "eslint-env", m.Directive)

	text = " * eslint-env node"
	m, err = Parse(text, blockComment(1, 0, 3, 3), 2)
	require.NoError(t, err)
	assert.Equal(t, "", m.Directive, "first-line directives are not recognised later")

	text = "// TODO: fix me"
	m, err = Parse(text, lineComment(1, 0, text), 1)
	require.NoError(t, err)
	assert.Equal(t, "todo", m.Fixme)
}

func TestParseContractViolations(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		comment source.Comment
		line    int
	}{
		{"unknown kind", "// x", source.Comment{Kind: source.Kind(9), Start: source.Position{Line: 1}, End: source.Position{Line: 1, Column: 4}}, 1},
		{"line before comment", "// x", lineComment(2, 0, "// x"), 1},
		{"line after comment", " * x", blockComment(1, 0, 3, 2), 4},
		{"multi-line line comment", "// x", source.Comment{Kind: source.KindLine, Start: source.Position{Line: 1}, End: source.Position{Line: 2}}, 1},
		{"open marker missing", "x // y", lineComment(1, 0, "x // y"), 1},
		{"column out of range", "//", lineComment(1, 5, "//"), 1},
		{"close marker missing", "/* x", blockComment(1, 0, 1, 4), 1},
		{"close overlaps open", "/*/", blockComment(1, 0, 1, 3), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Parse(tt.text, tt.comment, tt.line)
			assert.Nil(t, m)
			assert.ErrorIs(t, err, ErrContract)
		})
	}
}
