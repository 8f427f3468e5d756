package diagnostics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybersorcerer/cmtwidth/internal/reflow"
	"github.com/cybersorcerer/cmtwidth/pkg/lsp"
)

func newProvider(t *testing.T, width int) *Provider {
	t.Helper()
	cfg := reflow.DefaultConfig()
	cfg.MaxWidth = width
	engine, err := reflow.NewEngine(cfg)
	require.NoError(t, err)
	return NewProvider(engine)
}

func TestAnalyzeOverflow(t *testing.T) {
	p := newProvider(t, 16)
	diags, err := p.Analyze("x := 1\n// alpha beta gamma delta\n")
	require.NoError(t, err)
	require.Len(t, diags, 1)

	d := diags[0]
	assert.Equal(t, CodeOverflow, d.Code)
	assert.Equal(t, Source, d.Source)
	assert.Equal(t, lsp.SeverityWarning, d.Severity)
	assert.Equal(t, lsp.Position{Line: 1, Character: 16}, d.Range.Start)
	assert.Equal(t, lsp.Position{Line: 1, Character: 25}, d.Range.End)
	assert.Contains(t, d.Message, "25 columns")
}

func TestAnalyzeUnfixable(t *testing.T) {
	p := newProvider(t, 20)
	diags, err := p.Analyze("// 01234567890123456789\n")
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, CodeUnfixable, diags[0].Code)
	assert.Contains(t, diags[0].Message, "cannot be wrapped")
}

func TestAnalyzeUnderflow(t *testing.T) {
	p := newProvider(t, 80)
	diags, err := p.Analyze("/**\n   * short\n   * line\n   */\n")
	require.NoError(t, err)
	require.Len(t, diags, 1)

	d := diags[0]
	assert.Equal(t, CodeUnderflow, d.Code)
	assert.Equal(t, lsp.SeverityInformation, d.Severity)
	assert.Equal(t, lsp.Position{Line: 1, Character: 3}, d.Range.Start)
}

func TestAnalyzeRespectsConfig(t *testing.T) {
	p := newProvider(t, 80)
	p.SetConfig(&Config{CommentOverflow: true, UnfixableOverflow: true})

	diags, err := p.Analyze("/**\n * short\n * line\n */\n")
	require.NoError(t, err)
	assert.Empty(t, diags)

	p.SetConfig(nil)
	assert.False(t, p.GetConfig().CommentUnderflow)
}

func TestConfigIsEnabled(t *testing.T) {
	cfg := DefaultConfig()
	for _, code := range []string{CodeOverflow, CodeUnderflow, CodeUnfixable, "unknown"} {
		assert.True(t, cfg.IsEnabled(code), code)
	}
	cfg.UnfixableOverflow = false
	assert.False(t, cfg.IsEnabled(CodeUnfixable))
}

func TestCode(t *testing.T) {
	fix := &reflow.Edit{}
	assert.Equal(t, CodeUnderflow, Code(reflow.Finding{Kind: reflow.FindingUnderflow, Fix: fix}))
	assert.Equal(t, CodeOverflow, Code(reflow.Finding{Kind: reflow.FindingOverflow, Fix: fix}))
	assert.Equal(t, CodeOverflow, Code(reflow.Finding{Kind: reflow.FindingOverflow, Deferred: true}))
	assert.Equal(t, CodeUnfixable, Code(reflow.Finding{Kind: reflow.FindingOverflow}))
}

func TestOverflowColumn(t *testing.T) {
	assert.Equal(t, 3, overflowColumn("abcdef", 3, 4))
	assert.Equal(t, 2, overflowColumn("\tabc", 5, 4))
	assert.Equal(t, 2, overflowColumn("日本語", 4, 4))
	assert.Equal(t, 2, overflowColumn("ab", 10, 4))
}
