package diagnostics

import (
	"fmt"
	"unicode"

	"github.com/cybersorcerer/cmtwidth/internal/logger"
	"github.com/cybersorcerer/cmtwidth/internal/reflow"
	"github.com/cybersorcerer/cmtwidth/internal/scanner"
	"github.com/cybersorcerer/cmtwidth/internal/source"
	"github.com/cybersorcerer/cmtwidth/pkg/lsp"
)

// Diagnostic codes, also used as keys in the lint configuration
const (
	CodeOverflow  = "comment_overflow"
	CodeUnderflow = "comment_underflow"
	CodeUnfixable = "unfixable_overflow"
)

// Source is reported as the origin of every diagnostic
const Source = "cmtwidth"

// Config holds which diagnostics are enabled
type Config struct {
	CommentOverflow   bool
	CommentUnderflow  bool
	UnfixableOverflow bool
}

// DefaultConfig enables all diagnostics
func DefaultConfig() *Config {
	return &Config{
		CommentOverflow:   true,
		CommentUnderflow:  true,
		UnfixableOverflow: true,
	}
}

// IsEnabled reports whether diagnostics with code are produced
func (c *Config) IsEnabled(code string) bool {
	switch code {
	case CodeOverflow:
		return c.CommentOverflow
	case CodeUnderflow:
		return c.CommentUnderflow
	case CodeUnfixable:
		return c.UnfixableOverflow
	default:
		return true
	}
}

// Provider provides diagnostics
type Provider struct {
	engine *reflow.Engine
	config *Config
}

// NewProvider creates a new diagnostics provider
func NewProvider(engine *reflow.Engine) *Provider {
	return &Provider{
		engine: engine,
		config: DefaultConfig(),
	}
}

// SetConfig updates the diagnostics configuration
func (p *Provider) SetConfig(config *Config) {
	if config != nil {
		p.config = config
	}
}

// GetConfig returns the current diagnostics configuration
func (p *Provider) GetConfig() *Config {
	return p.config
}

// SetEngine replaces the engine used for analysis
func (p *Provider) SetEngine(engine *reflow.Engine) {
	if engine != nil {
		p.engine = engine
	}
}

// Analyze analyzes the text and returns diagnostics
func (p *Provider) Analyze(text string) ([]lsp.Diagnostic, error) {
	logger.Debug("Analyzing text for diagnostics")

	doc := source.NewDocument(text)
	findings, err := p.engine.AnalyzeAll(doc, scanner.Comments(text))
	if err != nil {
		return nil, err
	}

	maxWidth := p.engine.Config().MaxWidth
	tabSize := p.engine.Config().TabSize

	var diagnostics []lsp.Diagnostic
	for _, f := range findings {
		line, _ := doc.Line(f.Line)
		code := Code(f)
		if !p.config.IsEnabled(code) {
			continue
		}

		switch code {
		case CodeOverflow, CodeUnfixable:
			message := fmt.Sprintf("Comment line is %d columns wide, maximum is %d", f.Width, maxWidth)
			if code == CodeUnfixable {
				message += "; it cannot be wrapped"
			}
			diagnostics = append(diagnostics, p.createDiagnostic(
				f.Line-1, overflowColumn(line, maxWidth, tabSize),
				f.Line-1, runeLen(line),
				lsp.SeverityWarning,
				code,
				message,
			))
		case CodeUnderflow:
			diagnostics = append(diagnostics, p.createDiagnostic(
				f.Line-1, firstNonSpace(line),
				f.Line-1, runeLen(line),
				lsp.SeverityInformation,
				code,
				"Comment line can take words from the next line",
			))
		}
	}

	logger.Debug("Found %d diagnostics", len(diagnostics))
	return diagnostics, nil
}

// Code returns the diagnostic code a finding is reported under
func Code(f reflow.Finding) string {
	switch {
	case f.Kind == reflow.FindingUnderflow:
		return CodeUnderflow
	case f.Fix == nil && !f.Deferred:
		return CodeUnfixable
	default:
		return CodeOverflow
	}
}

func (p *Provider) createDiagnostic(startLine, startCol, endLine, endCol, severity int, code, message string) lsp.Diagnostic {
	return lsp.Diagnostic{
		Range: lsp.Range{
			Start: lsp.Position{Line: startLine, Character: startCol},
			End:   lsp.Position{Line: endLine, Character: endCol},
		},
		Severity: severity,
		Code:     code,
		Source:   Source,
		Message:  message,
	}
}

// overflowColumn returns the rune index of the first character rendered
// past maxWidth
func overflowColumn(line string, maxWidth, tabSize int) int {
	width, col := 0, 0
	for _, r := range line {
		width += reflow.Width(string(r), tabSize)
		if width > maxWidth {
			return col
		}
		col++
	}
	return col
}

func firstNonSpace(line string) int {
	for i, r := range []rune(line) {
		if !unicode.IsSpace(r) {
			return i
		}
	}
	return 0
}

func runeLen(s string) int {
	return len([]rune(s))
}
