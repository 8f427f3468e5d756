package formatting

import (
	"errors"
	"strings"

	"github.com/cybersorcerer/cmtwidth/internal/fix"
	"github.com/cybersorcerer/cmtwidth/internal/logger"
	"github.com/cybersorcerer/cmtwidth/internal/reflow"
	"github.com/cybersorcerer/cmtwidth/internal/source"
	"github.com/cybersorcerer/cmtwidth/pkg/lsp"
)

// Config holds formatting configuration options
type Config struct {
	Enabled bool
}

// DefaultConfig returns the default formatting configuration
func DefaultConfig() *Config {
	return &Config{Enabled: true}
}

// Provider provides document formatting functionality
type Provider struct {
	engine *reflow.Engine
	config *Config
}

// NewProvider creates a new formatting provider
func NewProvider(engine *reflow.Engine) *Provider {
	return &Provider{
		engine: engine,
		config: DefaultConfig(),
	}
}

// SetConfig updates the formatting configuration
func (p *Provider) SetConfig(config *Config) {
	if config != nil {
		p.config = config
	}
}

// SetEngine replaces the engine used for reflowing
func (p *Provider) SetEngine(engine *reflow.Engine) {
	if engine != nil {
		p.engine = engine
	}
}

// FormatDocument reflows every comment of text. The result is a single edit
// replacing the changed lines, or nil when nothing changes.
func (p *Provider) FormatDocument(text string) ([]lsp.TextEdit, error) {
	if !p.config.Enabled {
		return nil, nil
	}

	res, err := fix.Run(text, p.engine)
	if err != nil {
		if !errors.Is(err, fix.ErrNoFixpoint) {
			return nil, err
		}
		// keep what the passes so far produced
		logger.Error("Formatting stopped early: %v", err)
	}
	if res.Text == text {
		return nil, nil
	}
	logger.Debug("Formatting applied %d edits in %d passes", res.Applied, res.Passes)

	return []lsp.TextEdit{changedLines(text, res.Text)}, nil
}

// changedLines returns the edit that replaces the lines differing between
// before and after, keeping the common leading and trailing lines.
func changedLines(before, after string) lsp.TextEdit {
	prefix := 0
	for prefix < len(before) && prefix < len(after) && before[prefix] == after[prefix] {
		prefix++
	}
	prefix = strings.LastIndexByte(before[:prefix], '\n') + 1

	suffix := 0
	for suffix < len(before)-prefix && suffix < len(after)-prefix &&
		before[len(before)-1-suffix] == after[len(after)-1-suffix] {
		suffix++
	}
	// the kept tail has to start on a line of its own
	if i := strings.IndexByte(before[len(before)-suffix:], '\n'); i >= 0 {
		suffix -= i + 1
	} else {
		suffix = 0
	}

	doc := source.NewDocument(before)
	return lsp.TextEdit{
		Range: lsp.Range{
			Start: position(doc, prefix),
			End:   position(doc, len(before)-suffix),
		},
		NewText: after[prefix : len(after)-suffix],
	}
}

func position(d *source.Document, offset int) lsp.Position {
	l, c := d.PositionAt(offset)
	return lsp.Position{Line: l, Character: c}
}
