// Package reflow decides where comment lines have to be split or joined to
// fit a maximum width and describes those changes as edits.
package reflow

import (
	"fmt"
	"slices"
	"strings"

	"github.com/cybersorcerer/cmtwidth/internal/classify"
	"github.com/cybersorcerer/cmtwidth/internal/commentline"
	"github.com/cybersorcerer/cmtwidth/internal/logger"
	"github.com/cybersorcerer/cmtwidth/internal/source"
)

// FindingKind tells which width problem a finding reports
type FindingKind int

const (
	FindingOverflow FindingKind = iota + 1
	FindingUnderflow
)

func (k FindingKind) String() string {
	switch k {
	case FindingOverflow:
		return "overflow"
	case FindingUnderflow:
		return "underflow"
	default:
		return "unknown"
	}
}

// Finding is one width problem on a comment line.
// Fix is nil for overflows that cannot be fixed, and for fixes deferred to
// a later pass because they touch an edit already accepted in this one.
type Finding struct {
	Kind     FindingKind
	Line     int
	Width    int
	Fix      *Edit
	Deferred bool
}

// Engine analyzes comments against a fixed configuration
type Engine struct {
	cfg Config
}

// NewEngine creates an engine, rejecting invalid configurations
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg}, nil
}

// Config returns the configuration the engine was created with
func (e *Engine) Config() Config {
	return e.cfg
}

// Analyze reports the width problems of a single comment
func (e *Engine) Analyze(src source.Source, c source.Comment) ([]Finding, error) {
	switch c.Kind {
	case source.KindLine:
		return e.analyzeLine(src, c)
	case source.KindBlock:
		return e.analyzeBlock(src, c)
	default:
		return nil, fmt.Errorf("%w: unknown comment kind %d", commentline.ErrContract, c.Kind)
	}
}

// AnalyzeAll analyzes comments in source order. Fixes that touch an edit
// already accepted during this pass are deferred.
func (e *Engine) AnalyzeAll(src source.Source, comments []source.Comment) ([]Finding, error) {
	sorted := slices.Clone(comments)
	slices.SortFunc(sorted, func(a, b source.Comment) int {
		if a.Start.Line != b.Start.Line {
			return a.Start.Line - b.Start.Line
		}
		return a.Start.Column - b.Start.Column
	})

	var findings []Finding
	var last *Edit
	for _, c := range sorted {
		found, err := e.Analyze(src, c)
		if err != nil {
			return nil, fmt.Errorf("comment at line %d: %w", c.Start.Line, err)
		}
		for _, f := range found {
			if f.Fix != nil {
				if last != nil && f.Fix.Overlaps(*last) {
					logger.Debug("deferring %s fix on line %d", f.Kind, f.Line)
					f.Fix = nil
					f.Deferred = true
				} else {
					last = f.Fix
				}
			}
			findings = append(findings, f)
		}
	}
	return findings, nil
}

func (e *Engine) analyzeLine(src source.Source, c source.Comment) ([]Finding, error) {
	cur, err := load(src, c, c.Start.Line)
	if err != nil {
		return nil, err
	}
	if f, ok := e.overflow(cur, src.Newline()); ok {
		return []Finding{f}, nil
	}
	if cur.Code != "" {
		return nil, nil
	}

	nc, ok := followingLineComment(src, c.Start.Line+1)
	if !ok {
		return nil, nil
	}
	next, err := load(src, nc, nc.Start.Line)
	if err != nil {
		return nil, err
	}
	if edit, ok := Underflow(cur, next, e.cfg, src.Newline()); ok {
		return []Finding{e.underflow(cur, edit)}, nil
	}
	return nil, nil
}

func (e *Engine) analyzeBlock(src source.Source, c source.Comment) ([]Finding, error) {
	var findings []Finding
	lines := &cursor{src: src, comment: c, line: c.Start.Line, cfg: e.cfg}

	cur, curOpaque, err := lines.next()
	if err != nil {
		return nil, err
	}
	for cur != nil {
		next, nextOpaque, err := lines.next()
		if err != nil {
			return nil, err
		}

		joined := false
		if f, ok := e.overflow(cur, src.Newline()); ok {
			if curOpaque {
				f.Fix = nil
			}
			findings = append(findings, f)
		} else if !curOpaque && !nextOpaque {
			if edit, ok := Underflow(cur, next, e.cfg, src.Newline()); ok {
				findings = append(findings, e.underflow(cur, edit))
				joined = true
			}
		}

		if joined {
			// next has been merged into cur, skip it
			if cur, curOpaque, err = lines.next(); err != nil {
				return nil, err
			}
			continue
		}
		cur, curOpaque = next, nextOpaque
	}
	return findings, nil
}

// overflow reports an overlong line and the edit that fixes it, if any
func (e *Engine) overflow(l *Line, newline string) (Finding, bool) {
	width := Width(l.Text, e.cfg.TabSize)
	if width <= e.cfg.MaxWidth {
		return Finding{}, false
	}
	if e.cfg.IgnoreCommentsWithCode && l.HasCode() {
		return Finding{}, false
	}

	f := Finding{Kind: FindingOverflow, Line: l.LineIndex, Width: width}
	if edit, ok := Overflow(l, e.cfg, newline); ok {
		f.Fix = &edit
	} else {
		logger.Debug("line %d overflows (%d > %d) and cannot be split", l.LineIndex, width, e.cfg.MaxWidth)
	}
	return f, true
}

func (e *Engine) underflow(l *Line, edit Edit) Finding {
	return Finding{
		Kind:  FindingUnderflow,
		Line:  l.LineIndex,
		Width: Width(l.Text, e.cfg.TabSize),
		Fix:   &edit,
	}
}

func load(src source.Source, c source.Comment, n int) (*Line, error) {
	text, ok := src.Line(n)
	if !ok {
		return nil, fmt.Errorf("%w: line %d is outside the source", commentline.ErrContract, n)
	}
	m, err := commentline.Parse(text, c, n)
	if err != nil {
		return nil, err
	}
	return &Line{Model: m, Offset: src.LineOffset(n)}, nil
}

// followingLineComment returns the whole-line `//` comment on line n
func followingLineComment(src source.Source, n int) (source.Comment, bool) {
	text, ok := src.Line(n)
	if !ok {
		return source.Comment{}, false
	}
	trimmed := strings.TrimLeft(text, " \t")
	if !strings.HasPrefix(trimmed, "//") {
		return source.Comment{}, false
	}
	return source.Comment{
		Kind:  source.KindLine,
		Start: source.Position{Line: n, Column: len(text) - len(trimmed)},
		End:   source.Position{Line: n, Column: len(text)},
	}, true
}

// cursor parses the lines of a block comment one at a time and tracks the
// regions whose content must be kept verbatim.
type cursor struct {
	src     source.Source
	comment source.Comment
	line    int
	cfg     Config

	fence   bool
	example bool
}

// next returns the following line and whether it is opaque, or nil past
// the end of the comment.
func (c *cursor) next() (*Line, bool, error) {
	if c.line > c.comment.End.Line {
		return nil, false, nil
	}
	l, err := load(c.src, c.comment, c.line)
	if err != nil {
		return nil, false, err
	}
	c.line++
	return l, c.opaque(l), nil
}

func (c *cursor) opaque(l *Line) bool {
	if c.cfg.OpaqueFencedCode && strings.HasPrefix(l.Content, "```") {
		c.fence = !c.fence
		return true
	}
	if c.fence {
		return true
	}
	if c.cfg.OpaqueExamples && l.IsJavadoc() {
		if tag := classify.Tag(l.Content); tag != "" {
			c.example = tag == "@example"
		}
	}
	return c.example
}
