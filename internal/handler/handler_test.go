package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybersorcerer/cmtwidth/internal/diagnostics"
	"github.com/cybersorcerer/cmtwidth/internal/reflow"
	"github.com/cybersorcerer/cmtwidth/pkg/lsp"
)

type recorder struct {
	published []lsp.PublishDiagnosticsParams
}

func (r *recorder) SendNotification(method string, params any) error {
	if method == "textDocument/publishDiagnostics" {
		r.published = append(r.published, params.(lsp.PublishDiagnosticsParams))
	}
	return nil
}

func (r *recorder) last() lsp.PublishDiagnosticsParams {
	return r.published[len(r.published)-1]
}

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func newHandler(t *testing.T) (*Handler, *recorder) {
	t.Helper()
	cfg := reflow.DefaultConfig()
	cfg.MaxWidth = 20
	h, err := New("test", cfg)
	require.NoError(t, err)
	rec := &recorder{}
	h.SetServer(rec)
	return h, rec
}

const uri = "file:///tmp/a.go"

func open(t *testing.T, h *Handler, text string) {
	t.Helper()
	require.NoError(t, h.TextDocumentDidOpen(lsp.DidOpenTextDocumentParams{
		TextDocument: lsp.TextDocumentItem{URI: uri, Text: text},
	}))
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	_, err := New("test", reflow.Config{})
	assert.ErrorIs(t, err, reflow.ErrInvalidConfig)
}

func TestInitializeAppliesOptions(t *testing.T) {
	h, rec := newHandler(t)
	res, err := h.Initialize(lsp.InitializeParams{
		InitializationOptions: &lsp.CmtwidthSettings{
			Reflow: &lsp.ReflowOptions{MaxWidth: intPtr(100)},
		},
	})
	require.NoError(t, err)
	assert.True(t, res.Capabilities.DocumentFormattingProvider)
	assert.Equal(t, lsp.TextDocumentSyncFull, res.Capabilities.TextDocumentSync)
	assert.Equal(t, "cmtwidth_ls", res.ServerInfo.Name)

	open(t, h, "// alpha beta gamma delta\n")
	assert.Empty(t, rec.last().Diagnostics)
}

func TestDiagnosticsFollowDocumentChanges(t *testing.T) {
	h, rec := newHandler(t)

	open(t, h, "// alpha beta gamma delta\n")
	require.Len(t, rec.last().Diagnostics, 1)
	assert.Equal(t, diagnostics.CodeOverflow, rec.last().Diagnostics[0].Code)

	require.NoError(t, h.TextDocumentDidChange(lsp.DidChangeTextDocumentParams{
		TextDocument:   lsp.VersionedTextDocumentIdentifier{TextDocumentIdentifier: lsp.TextDocumentIdentifier{URI: uri}},
		ContentChanges: []lsp.TextDocumentContentChangeEvent{{Text: "// fine\n"}},
	}))
	assert.Empty(t, rec.last().Diagnostics)

	require.NoError(t, h.TextDocumentDidClose(lsp.DidCloseTextDocumentParams{
		TextDocument: lsp.TextDocumentIdentifier{URI: uri},
	}))
	assert.Equal(t, uri, rec.last().URI)
	assert.Empty(t, rec.last().Diagnostics)
}

func TestFormatting(t *testing.T) {
	h, _ := newHandler(t)
	open(t, h, "// alpha beta gamma delta\n")

	edits, err := h.TextDocumentFormatting(lsp.DocumentFormattingParams{
		TextDocument: lsp.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)
	require.Len(t, edits, 1)
	assert.Equal(t, "// alpha beta gamma\n// delta\n", edits[0].NewText)

	edits, err = h.TextDocumentFormatting(lsp.DocumentFormattingParams{
		TextDocument: lsp.TextDocumentIdentifier{URI: "file:///unknown"},
	})
	require.NoError(t, err)
	assert.Nil(t, edits)
}

func TestConfigurationChangeRepublishes(t *testing.T) {
	h, rec := newHandler(t)
	open(t, h, "// alpha beta gamma delta\n")
	require.Len(t, rec.last().Diagnostics, 1)

	require.NoError(t, h.WorkspaceDidChangeConfiguration(lsp.DidChangeConfigurationParams{
		Settings: &lsp.SettingsPayload{Cmtwidth: &lsp.CmtwidthSettings{
			Diagnostics: &lsp.DiagnosticsOptions{CommentOverflow: boolPtr(false)},
		}},
	}))
	assert.Empty(t, rec.last().Diagnostics)

	count := len(rec.published)
	require.NoError(t, h.WorkspaceDidChangeConfiguration(lsp.DidChangeConfigurationParams{}))
	assert.Len(t, rec.published, count)
}

func TestInvalidReflowSettingsIgnored(t *testing.T) {
	h, _ := newHandler(t)
	h.applySettings(&lsp.CmtwidthSettings{Reflow: &lsp.ReflowOptions{MaxWidth: intPtr(-5)}})
	assert.Equal(t, 20, h.reflowConfig.MaxWidth)
}

func TestMergeReflowOptions(t *testing.T) {
	cfg := mergeReflowOptions(reflow.DefaultConfig(), &lsp.ReflowOptions{
		TabSize:        intPtr(8),
		BreakLongWords: boolPtr(true),
		JoinShortLines: boolPtr(false),
	})
	assert.Equal(t, 80, cfg.MaxWidth)
	assert.Equal(t, 8, cfg.TabSize)
	assert.True(t, cfg.BreakLongWords)
	assert.False(t, cfg.JoinShortLines)
	assert.True(t, cfg.IgnoreURLs)
}
