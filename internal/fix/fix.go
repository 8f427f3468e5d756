// Package fix applies reflow edits to source text and repeats analysis until
// the text no longer changes.
package fix

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/cybersorcerer/cmtwidth/internal/logger"
	"github.com/cybersorcerer/cmtwidth/internal/reflow"
	"github.com/cybersorcerer/cmtwidth/internal/scanner"
	"github.com/cybersorcerer/cmtwidth/internal/source"
)

// MaxPasses bounds Run. Reflowing converges long before that.
const MaxPasses = 100

// ErrNoFixpoint is returned when edits are still produced after MaxPasses
var ErrNoFixpoint = errors.New("reflow did not reach a fixed point")

// Result is the outcome of Run
type Result struct {
	Text    string
	Passes  int // analysis passes that applied at least one edit
	Applied int // edits applied over all passes
}

// Changed reports whether any edit was applied
func (r Result) Changed() bool {
	return r.Applied > 0
}

// Apply applies edits to text in offset order. An edit overlapping one that
// was already applied is skipped. It returns the new text and the number of
// edits applied.
func Apply(text string, edits []reflow.Edit) (string, int) {
	sorted := slices.Clone(edits)
	slices.SortStableFunc(sorted, func(a, b reflow.Edit) int {
		return a.Start - b.Start
	})

	var sb strings.Builder
	sb.Grow(len(text))
	pos, applied := 0, 0
	var last *reflow.Edit
	for i := range sorted {
		e := sorted[i]
		if e.Start < pos || e.End < e.Start || e.End > len(text) {
			logger.Debug("skipping %s edit [%d,%d) on line %d", e.Kind, e.Start, e.End, e.Line)
			continue
		}
		if last != nil && e.Overlaps(*last) {
			logger.Debug("skipping overlapping %s edit on line %d", e.Kind, e.Line)
			continue
		}
		sb.WriteString(text[pos:e.Start])
		sb.WriteString(e.Text)
		pos = e.End
		last = &sorted[i]
		applied++
	}
	sb.WriteString(text[pos:])
	return sb.String(), applied
}

// Edits scans text and returns the fixes the engine proposes for one pass
func Edits(text string, engine *reflow.Engine) ([]reflow.Edit, error) {
	doc := source.NewDocument(text)
	findings, err := engine.AnalyzeAll(doc, scanner.Comments(text))
	if err != nil {
		return nil, err
	}

	var edits []reflow.Edit
	for _, f := range findings {
		if f.Fix != nil {
			edits = append(edits, *f.Fix)
		}
	}
	return edits, nil
}

// Run reflows every comment in text until no more edits are produced
func Run(text string, engine *reflow.Engine) (Result, error) {
	res := Result{Text: text}
	for pass := 0; pass < MaxPasses; pass++ {
		edits, err := Edits(res.Text, engine)
		if err != nil {
			return res, err
		}
		if len(edits) == 0 {
			return res, nil
		}

		var n int
		res.Text, n = Apply(res.Text, edits)
		res.Passes++
		res.Applied += n
		logger.Debug("pass %d applied %d of %d edits", res.Passes, n, len(edits))
	}
	return res, fmt.Errorf("%w after %d passes", ErrNoFixpoint, MaxPasses)
}
