package fix

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybersorcerer/cmtwidth/internal/reflow"
)

func TestApply(t *testing.T) {
	text := "0123456789"
	edits := []reflow.Edit{
		{Start: 8, End: 9, Text: "X"},
		{Start: 1, End: 3, Text: "ab"},
		{Start: 2, End: 4, Text: "conflict"},
		{Start: 5, End: 5, Text: "+"},
	}

	out, n := Apply(text, edits)
	assert.Equal(t, "0ab34+567X9", out)
	assert.Equal(t, 3, n)
}

func TestApplyIgnoresOutOfRangeEdits(t *testing.T) {
	out, n := Apply("abc", []reflow.Edit{{Start: 2, End: 10, Text: "x"}, {Start: 2, End: 1}})
	assert.Equal(t, "abc", out)
	assert.Equal(t, 0, n)
}

func newEngine(t *testing.T, width int) *reflow.Engine {
	t.Helper()
	cfg := reflow.DefaultConfig()
	cfg.MaxWidth = width
	e, err := reflow.NewEngine(cfg)
	require.NoError(t, err)
	return e
}

func TestRun(t *testing.T) {
	input := strings.Join([]string{
		"package main",
		"",
		"// Run starts the server and blocks until the context is cancelled or the",
		"// listener fails.",
		"func Run() {}",
		"",
	}, "\n")
	want := strings.Join([]string{
		"package main",
		"",
		"// Run starts the server and blocks until the context is",
		"// cancelled or the listener fails.",
		"func Run() {}",
		"",
	}, "\n")

	res, err := Run(input, newEngine(t, 60))
	require.NoError(t, err)
	assert.Equal(t, want, res.Text)
	assert.Equal(t, 2, res.Passes)

	again, err := Run(res.Text, newEngine(t, 60))
	require.NoError(t, err)
	assert.Equal(t, res.Text, again.Text)
	assert.Equal(t, 0, again.Passes)
}

func TestRunJoinsBlockLines(t *testing.T) {
	input := "/**\n * short\n * line\n */\n"

	res, err := Run(input, newEngine(t, 80))
	require.NoError(t, err)
	assert.Equal(t, "/**\n * short line\n */\n", res.Text)
	assert.Equal(t, 1, res.Applied)
}

func TestRunKeepsCRLF(t *testing.T) {
	input := "// alpha beta gamma\r\nx := 1\r\n"

	res, err := Run(input, newEngine(t, 14))
	require.NoError(t, err)
	assert.Equal(t, "// alpha beta\r\n// gamma\r\nx := 1\r\n", res.Text)
}

func TestRunConverges(t *testing.T) {
	input := strings.Join([]string{
		"/**",
		" * Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod",
		" * tempor",
		" * incididunt ut labore et dolore magna aliqua.",
		" *",
		" * - Ut enim ad minim veniam, quis nostrud exercitation ullamco laboris",
		" * @param value the value to reflow, which is described at length here */",
		"// nisi ut aliquip ex ea commodo consequat. Duis aute irure dolor in reprehenderit",
		"// in voluptate",
	}, "\n")

	for _, width := range []int{12, 20, 33, 47, 80} {
		res, err := Run(input, newEngine(t, width))
		require.NoError(t, err, "width %d", width)

		edits, err := Edits(res.Text, newEngine(t, width))
		require.NoError(t, err)
		assert.Empty(t, edits, "width %d", width)
	}
}
