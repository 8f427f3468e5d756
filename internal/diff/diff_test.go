package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnified(t *testing.T) {
	before := "package p\n\n// alpha beta gamma\nvar x int\n"
	after := "package p\n\n// alpha beta\n// gamma\nvar x int\n"

	out, err := Unified("p.go", before, after, 1)
	require.NoError(t, err)
	assert.Contains(t, out, "--- a/p.go\n+++ b/p.go\n")
	assert.Contains(t, out, "-// alpha beta gamma\n")
	assert.Contains(t, out, "+// alpha beta\n+// gamma\n")
	assert.Contains(t, out, " var x int\n")
	assert.NotContains(t, out, "package p")
}

func TestUnifiedNoChange(t *testing.T) {
	out, err := Unified("p.go", "same\n", "same\n", 0)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestSplitLinesKeepNL(t *testing.T) {
	assert.Equal(t, []string{}, splitLinesKeepNL(""))
	assert.Equal(t, []string{"a\n", "b"}, splitLinesKeepNL("a\nb"))
	assert.Equal(t, []string{"a\n", "b\n"}, splitLinesKeepNL("a\nb\n"))
}
