package reflow

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned for configurations the engine cannot honour
var ErrInvalidConfig = errors.New("invalid reflow configuration")

// Config holds the resolved reflow options
type Config struct {
	MaxWidth int // maximum rendered line width (default: 80)
	TabSize  int // width of a tab character (default: 4)

	IgnoreURLs             bool // never split lines whose content holds a URL (default: true)
	IgnoreCommentsWithCode bool // leave comments sharing a line with code alone (default: true)
	BreakLongWords         bool // break a single overlong token at the limit (default: false)
	SplitAtHyphens         bool // fall back to breaking after a hyphen (default: false)
	JoinShortLines         bool // pull words up from the next line (default: true)
	OpaqueFencedCode       bool // never reflow ``` fenced code in block comments (default: true)
	OpaqueExamples         bool // never reflow jsdoc @example bodies (default: true)
}

// DefaultConfig returns the default reflow configuration
func DefaultConfig() Config {
	return Config{
		MaxWidth:               80,
		TabSize:                4,
		IgnoreURLs:             true,
		IgnoreCommentsWithCode: true,
		BreakLongWords:         false,
		SplitAtHyphens:         false,
		JoinShortLines:         true,
		OpaqueFencedCode:       true,
		OpaqueExamples:         true,
	}
}

// Validate checks the numeric options
func (c Config) Validate() error {
	if c.MaxWidth <= 0 {
		return fmt.Errorf("%w: max width must be positive, got %d", ErrInvalidConfig, c.MaxWidth)
	}
	if c.TabSize <= 0 {
		return fmt.Errorf("%w: tab size must be positive, got %d", ErrInvalidConfig, c.TabSize)
	}
	return nil
}
