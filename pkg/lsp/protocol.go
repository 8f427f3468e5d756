package lsp

// LSP Protocol types and structures
// Based on Language Server Protocol Specification

// Position represents a position in a text document.
// Line and Character are zero-based, Character counts runes.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Range represents a range in a text document
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Diagnostic represents a diagnostic (error, warning, etc.)
type Diagnostic struct {
	Range    Range  `json:"range"`
	Severity int    `json:"severity"`
	Code     string `json:"code,omitempty"`
	Source   string `json:"source,omitempty"`
	Message  string `json:"message"`
}

// DiagnosticSeverity levels
const (
	SeverityError       = 1
	SeverityWarning     = 2
	SeverityInformation = 3
	SeverityHint        = 4
)

// TextDocumentIdentifier identifies a text document
type TextDocumentIdentifier struct {
	URI string `json:"uri"`
}

// VersionedTextDocumentIdentifier identifies a versioned text document
type VersionedTextDocumentIdentifier struct {
	TextDocumentIdentifier
	Version int `json:"version"`
}

// TextDocumentItem represents a text document
type TextDocumentItem struct {
	URI        string `json:"uri"`
	LanguageID string `json:"languageId"`
	Version    int    `json:"version"`
	Text       string `json:"text"`
}

// TextDocumentContentChangeEvent describes a change to a text document.
// Only full-text changes are requested from the client.
type TextDocumentContentChangeEvent struct {
	Text string `json:"text"`
}

// TextEdit represents a text edit
type TextEdit struct {
	Range   Range  `json:"range"`
	NewText string `json:"newText"`
}

// TextDocumentSyncKind values
const (
	TextDocumentSyncNone = 0
	TextDocumentSyncFull = 1
)

// ServerCapabilities describes the capabilities of the server
type ServerCapabilities struct {
	TextDocumentSync           int  `json:"textDocumentSync,omitempty"`
	DocumentFormattingProvider bool `json:"documentFormattingProvider,omitempty"`
}

// InitializeParams represents the initialize request parameters
type InitializeParams struct {
	ProcessID             int               `json:"processId"`
	RootURI               string            `json:"rootUri,omitempty"`
	Capabilities          struct{}          `json:"capabilities"`
	InitializationOptions *CmtwidthSettings `json:"initializationOptions,omitempty"`
}

// InitializeResult represents the initialize response
type InitializeResult struct {
	Capabilities ServerCapabilities `json:"capabilities"`
	ServerInfo   *ServerInfo        `json:"serverInfo,omitempty"`
}

// ServerInfo contains server information
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

// DidChangeConfigurationParams represents workspace/didChangeConfiguration params
type DidChangeConfigurationParams struct {
	Settings *SettingsPayload `json:"settings"`
}

// SettingsPayload represents the settings sent from the client
type SettingsPayload struct {
	Cmtwidth *CmtwidthSettings `json:"cmtwidth,omitempty"`
}

// CmtwidthSettings represents the cmtwidth.* settings from the editor
type CmtwidthSettings struct {
	Reflow      *ReflowOptions      `json:"reflow,omitempty"`
	Diagnostics *DiagnosticsOptions `json:"diagnostics,omitempty"`
}

// ReflowOptions configures the reflow engine. Unset fields keep their
// current value.
type ReflowOptions struct {
	MaxWidth               *int  `json:"maxWidth,omitempty"`
	TabSize                *int  `json:"tabSize,omitempty"`
	IgnoreURLs             *bool `json:"ignoreUrls,omitempty"`
	IgnoreCommentsWithCode *bool `json:"ignoreCommentsWithCode,omitempty"`
	BreakLongWords         *bool `json:"breakLongWords,omitempty"`
	SplitAtHyphens         *bool `json:"splitAtHyphens,omitempty"`
	JoinShortLines         *bool `json:"joinShortLines,omitempty"`
	OpaqueFencedCode       *bool `json:"opaqueFencedCode,omitempty"`
	OpaqueExamples         *bool `json:"opaqueExamples,omitempty"`
}

// DiagnosticsOptions configures which diagnostics are enabled
type DiagnosticsOptions struct {
	CommentOverflow   *bool `json:"commentOverflow,omitempty"`
	CommentUnderflow  *bool `json:"commentUnderflow,omitempty"`
	UnfixableOverflow *bool `json:"unfixableOverflow,omitempty"`
}

// DocumentFormattingParams represents textDocument/formatting request params
type DocumentFormattingParams struct {
	TextDocument TextDocumentIdentifier   `json:"textDocument"`
	Options      FormattingRequestOptions `json:"options"`
}

// FormattingRequestOptions contains formatting options from the client
type FormattingRequestOptions struct {
	TabSize      int  `json:"tabSize"`
	InsertSpaces bool `json:"insertSpaces"`
}

// PublishDiagnosticsParams is sent with textDocument/publishDiagnostics
type PublishDiagnosticsParams struct {
	URI         string       `json:"uri"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// Notification parameter types

type DidOpenTextDocumentParams struct {
	TextDocument TextDocumentItem `json:"textDocument"`
}

type DidChangeTextDocumentParams struct {
	TextDocument   VersionedTextDocumentIdentifier  `json:"textDocument"`
	ContentChanges []TextDocumentContentChangeEvent `json:"contentChanges"`
}

type DidCloseTextDocumentParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}
