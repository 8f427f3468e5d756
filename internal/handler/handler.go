package handler

import (
	"sort"
	"sync"

	"github.com/cybersorcerer/cmtwidth/internal/diagnostics"
	"github.com/cybersorcerer/cmtwidth/internal/formatting"
	"github.com/cybersorcerer/cmtwidth/internal/logger"
	"github.com/cybersorcerer/cmtwidth/internal/reflow"
	"github.com/cybersorcerer/cmtwidth/pkg/lsp"
)

// Notifier sends notifications to the client
type Notifier interface {
	SendNotification(method string, params any) error
}

// Handler implements the LSP handler interface
type Handler struct {
	version        string
	documents      map[string]string
	documentsMutex sync.RWMutex

	// guards the configuration and the providers built from it
	configMutex         sync.RWMutex
	reflowConfig        reflow.Config
	diagnosticsProvider *diagnostics.Provider
	formattingProvider  *formatting.Provider

	server Notifier
}

// New creates a new handler
func New(version string, cfg reflow.Config) (*Handler, error) {
	engine, err := reflow.NewEngine(cfg)
	if err != nil {
		return nil, err
	}

	return &Handler{
		version:             version,
		documents:           make(map[string]string),
		reflowConfig:        cfg,
		diagnosticsProvider: diagnostics.NewProvider(engine),
		formattingProvider:  formatting.NewProvider(engine),
	}, nil
}

// SetServer sets the LSP server (for sending notifications)
func (h *Handler) SetServer(server Notifier) {
	h.server = server
}

// Initialize handles the initialize request
func (h *Handler) Initialize(params lsp.InitializeParams) (*lsp.InitializeResult, error) {
	logger.Info("Initializing LSP server")

	if params.InitializationOptions != nil {
		h.applySettings(params.InitializationOptions)
	}

	return &lsp.InitializeResult{
		Capabilities: lsp.ServerCapabilities{
			TextDocumentSync:           lsp.TextDocumentSyncFull,
			DocumentFormattingProvider: true,
		},
		ServerInfo: &lsp.ServerInfo{
			Name:    "cmtwidth_ls",
			Version: h.version,
		},
	}, nil
}

// TextDocumentDidOpen handles document open notification
func (h *Handler) TextDocumentDidOpen(params lsp.DidOpenTextDocumentParams) error {
	logger.Info("Document opened: %s", params.TextDocument.URI)

	h.documentsMutex.Lock()
	h.documents[params.TextDocument.URI] = params.TextDocument.Text
	h.documentsMutex.Unlock()

	h.publishDiagnostics(params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

// TextDocumentDidChange handles document change notification
func (h *Handler) TextDocumentDidChange(params lsp.DidChangeTextDocumentParams) error {
	logger.Debug("Document changed: %s", params.TextDocument.URI)

	h.documentsMutex.Lock()
	// Full sync mode - the last change holds the entire document
	if n := len(params.ContentChanges); n > 0 {
		h.documents[params.TextDocument.URI] = params.ContentChanges[n-1].Text
	}
	text := h.documents[params.TextDocument.URI]
	h.documentsMutex.Unlock()

	h.publishDiagnostics(params.TextDocument.URI, text)
	return nil
}

// TextDocumentDidClose handles document close notification
func (h *Handler) TextDocumentDidClose(params lsp.DidCloseTextDocumentParams) error {
	logger.Info("Document closed: %s", params.TextDocument.URI)

	h.documentsMutex.Lock()
	delete(h.documents, params.TextDocument.URI)
	h.documentsMutex.Unlock()

	// clear what the client still shows for the document
	h.sendDiagnostics(params.TextDocument.URI, []lsp.Diagnostic{})
	return nil
}

// TextDocumentFormatting reflows all comments of a document
func (h *Handler) TextDocumentFormatting(params lsp.DocumentFormattingParams) ([]lsp.TextEdit, error) {
	logger.Debug("Formatting requested for %s", params.TextDocument.URI)

	h.documentsMutex.RLock()
	text, ok := h.documents[params.TextDocument.URI]
	h.documentsMutex.RUnlock()

	if !ok {
		logger.Debug("Document not found: %s", params.TextDocument.URI)
		return nil, nil
	}

	h.configMutex.RLock()
	defer h.configMutex.RUnlock()
	return h.formattingProvider.FormatDocument(text)
}

// WorkspaceDidChangeConfiguration applies new settings and re-validates all
// open documents
func (h *Handler) WorkspaceDidChangeConfiguration(params lsp.DidChangeConfigurationParams) error {
	logger.Info("Configuration changed")
	if params.Settings == nil || params.Settings.Cmtwidth == nil {
		return nil
	}
	h.applySettings(params.Settings.Cmtwidth)

	h.documentsMutex.RLock()
	uris := make([]string, 0, len(h.documents))
	texts := make(map[string]string, len(h.documents))
	for uri, text := range h.documents {
		uris = append(uris, uri)
		texts[uri] = text
	}
	h.documentsMutex.RUnlock()

	sort.Strings(uris)
	for _, uri := range uris {
		h.publishDiagnostics(uri, texts[uri])
	}
	return nil
}

// applySettings merges settings into the current configuration. Invalid
// reflow options are logged and leave the configuration unchanged.
func (h *Handler) applySettings(settings *lsp.CmtwidthSettings) {
	h.configMutex.Lock()
	defer h.configMutex.Unlock()

	if settings.Reflow != nil {
		cfg := mergeReflowOptions(h.reflowConfig, settings.Reflow)
		engine, err := reflow.NewEngine(cfg)
		if err != nil {
			logger.Error("Ignoring reflow settings: %v", err)
		} else {
			h.reflowConfig = cfg
			h.diagnosticsProvider.SetEngine(engine)
			h.formattingProvider.SetEngine(engine)
			logger.Info("Reflow max width set to %d", cfg.MaxWidth)
		}
	}

	if settings.Diagnostics != nil {
		current := *h.diagnosticsProvider.GetConfig()
		setBool(&current.CommentOverflow, settings.Diagnostics.CommentOverflow)
		setBool(&current.CommentUnderflow, settings.Diagnostics.CommentUnderflow)
		setBool(&current.UnfixableOverflow, settings.Diagnostics.UnfixableOverflow)
		h.diagnosticsProvider.SetConfig(&current)
	}
}

func mergeReflowOptions(cfg reflow.Config, opts *lsp.ReflowOptions) reflow.Config {
	if opts.MaxWidth != nil {
		cfg.MaxWidth = *opts.MaxWidth
	}
	if opts.TabSize != nil {
		cfg.TabSize = *opts.TabSize
	}
	setBool(&cfg.IgnoreURLs, opts.IgnoreURLs)
	setBool(&cfg.IgnoreCommentsWithCode, opts.IgnoreCommentsWithCode)
	setBool(&cfg.BreakLongWords, opts.BreakLongWords)
	setBool(&cfg.SplitAtHyphens, opts.SplitAtHyphens)
	setBool(&cfg.JoinShortLines, opts.JoinShortLines)
	setBool(&cfg.OpaqueFencedCode, opts.OpaqueFencedCode)
	setBool(&cfg.OpaqueExamples, opts.OpaqueExamples)
	return cfg
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

// publishDiagnostics publishes diagnostics for a document
func (h *Handler) publishDiagnostics(uri string, text string) {
	if h.server == nil {
		return
	}

	h.configMutex.RLock()
	diags, err := h.diagnosticsProvider.Analyze(text)
	h.configMutex.RUnlock()
	if err != nil {
		logger.Error("Failed to analyze %s: %v", uri, err)
		return
	}
	if diags == nil {
		diags = []lsp.Diagnostic{}
	}
	h.sendDiagnostics(uri, diags)
}

func (h *Handler) sendDiagnostics(uri string, diags []lsp.Diagnostic) {
	if h.server == nil {
		return
	}
	params := lsp.PublishDiagnosticsParams{URI: uri, Diagnostics: diags}
	if err := h.server.SendNotification("textDocument/publishDiagnostics", params); err != nil {
		logger.Error("Failed to publish diagnostics: %v", err)
	}
}
