package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cybersorcerer/cmtwidth/internal/source"
)

func pos(line, col int) source.Position {
	return source.Position{Line: line, Column: col}
}

func TestComments(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []source.Comment
	}{
		{
			name:  "line comment",
			input: "// hello\nx := 1",
			want:  []source.Comment{{Kind: source.KindLine, Start: pos(1, 0), End: pos(1, 8)}},
		},
		{
			name:  "trailing line comment at end of input",
			input: "x := 1 // set",
			want:  []source.Comment{{Kind: source.KindLine, Start: pos(1, 7), End: pos(1, 13)}},
		},
		{
			name:  "crlf terminator is not part of the comment",
			input: "// a\r\n// b\r\n",
			want: []source.Comment{
				{Kind: source.KindLine, Start: pos(1, 0), End: pos(1, 4)},
				{Kind: source.KindLine, Start: pos(2, 0), End: pos(2, 4)},
			},
		},
		{
			name:  "single line block",
			input: "int x; /* note */ int y;",
			want:  []source.Comment{{Kind: source.KindBlock, Start: pos(1, 7), End: pos(1, 17)}},
		},
		{
			name:  "multi line block",
			input: "  /**\n   * doc\n   */\nfunc f() {}",
			want:  []source.Comment{{Kind: source.KindBlock, Start: pos(1, 2), End: pos(3, 5)}},
		},
		{
			name:  "markers inside strings are ignored",
			input: "s := \"// not\" + '/*' + `/* raw\n */` // real",
			want:  []source.Comment{{Kind: source.KindLine, Start: pos(2, 5), End: pos(2, 12)}},
		},
		{
			name:  "escaped quote stays inside the string",
			input: `s := "a\"// b" // c`,
			want:  []source.Comment{{Kind: source.KindLine, Start: pos(1, 15), End: pos(1, 19)}},
		},
		{
			name:  "line comment inside block is part of the block",
			input: "/* a // b */",
			want:  []source.Comment{{Kind: source.KindBlock, Start: pos(1, 0), End: pos(1, 12)}},
		},
		{
			name:  "unterminated block is dropped",
			input: "// ok\n/* never closed",
			want:  []source.Comment{{Kind: source.KindLine, Start: pos(1, 0), End: pos(1, 5)}},
		},
		{
			name:  "no comments",
			input: "a / b * c",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Comments(tt.input))
		})
	}
}

func TestCommentsMatchDocumentLines(t *testing.T) {
	input := "package p\n\n// Doc for f.\n/*\n * body\n */\nfunc f() {}\n"
	doc := source.NewDocument(input)

	for _, c := range Comments(input) {
		first, ok := doc.Line(c.Start.Line)
		assert.True(t, ok)
		assert.Equal(t, "/", first[c.Start.Column:c.Start.Column+1])

		last, ok := doc.Line(c.End.Line)
		assert.True(t, ok)
		assert.LessOrEqual(t, c.End.Column, len(last))
	}
}
