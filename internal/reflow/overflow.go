package reflow

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cybersorcerer/cmtwidth/internal/commentline"
	"github.com/cybersorcerer/cmtwidth/internal/tokenizer"
)

var urlPattern = regexp.MustCompile(`\b[a-zA-Z][a-zA-Z0-9+.-]*://\S`)

// Overflow returns the edit that brings an overlong line back under
// cfg.MaxWidth. It reports false when the line fits or must be left as is:
// directives, table rows, and single tokens wider than the limit.
func Overflow(l *Line, cfg Config, newline string) (Edit, bool) {
	m := l.Model
	if Width(m.Text, cfg.TabSize) <= cfg.MaxWidth {
		return Edit{}, false
	}
	if m.Directive != "" || m.IsTable() || m.IsBlank() {
		return Edit{}, false
	}
	if cfg.IgnoreCommentsWithCode && m.HasCode() {
		return Edit{}, false
	}
	if cfg.IgnoreURLs && urlPattern.MatchString(m.Content) {
		return Edit{}, false
	}

	headWidth := Width(m.Head(), cfg.TabSize)
	fits := func(contentEnd int) bool {
		return headWidth+Width(m.Content[:contentEnd], cfg.TabSize) <= cfg.MaxWidth
	}
	contentAt := l.Offset + m.ContentStart()

	// Content fits, only the tail is in the way
	if fits(len(m.Content)) {
		if m.Close != "" {
			return Edit{
				Kind:  EditSplit,
				Line:  m.LineIndex,
				Start: contentAt + len(m.Content),
				End:   contentAt + len(m.Content) + len(m.Suffix),
				Text:  newline + closeIndent(m),
			}, true
		}
		if m.After == "" && m.Suffix != "" {
			return Edit{
				Kind:  EditTrim,
				Line:  m.LineIndex,
				Start: contentAt + len(m.Content),
				End:   contentAt + len(m.Content) + len(m.Suffix),
			}, true
		}
		return Edit{}, false
	}

	tokens := tokenizer.Split(m.Content)
	// never break between a markup token or doc marker and the text it
	// introduces
	markupEnd := max(len(m.Markup)+len(m.MarkupSpace), len(docLead(m)))
	accept := func(at int) bool { return breakable(m, m.Content[at:]) }

	spaceStart := func(t tokenizer.Token) int { return t.Offset }
	spaceEnd := func(t tokenizer.Token) int { return t.End() }
	if tok, ok := lastFitting(tokens, tokenizer.Space, markupEnd, fits, spaceStart, spaceEnd, accept); ok {
		return Edit{
			Kind:  EditSplit,
			Line:  m.LineIndex,
			Start: contentAt + tok.Offset,
			End:   contentAt + tok.End(),
			Text:  newline + continuation(m, false),
		}, true
	}

	if cfg.SplitAtHyphens {
		hyphenEnd := func(t tokenizer.Token) int { return t.End() }
		if tok, ok := lastFitting(tokens, tokenizer.Hyphen, markupEnd, fits, hyphenEnd, hyphenEnd, accept); ok && tok.End() < len(m.Content) {
			return insertBreak(l, tok.End(), newline), true
		}
	}

	if cfg.BreakLongWords {
		if at, ok := forcedBreak(tokens, markupEnd, fits); ok && accept(at) {
			return insertBreak(l, at, newline), true
		}
	}

	// A single token wider than the limit stays overflowing
	return Edit{}, false
}

// lastFitting returns the rightmost token of kind whose break offset (as
// given by at) lies past markupEnd and keeps the first fragment within the
// limit. The text from resume on must be accepted as the start of the new
// line.
func lastFitting(tokens []tokenizer.Token, kind tokenizer.Kind, markupEnd int, fits func(int) bool, at, resume func(tokenizer.Token) int, accept func(int) bool) (tokenizer.Token, bool) {
	var found tokenizer.Token
	ok := false
	for _, tok := range tokens {
		if tok.Kind != kind || at(tok) <= markupEnd {
			continue
		}
		if !fits(at(tok)) {
			break
		}
		if accept(resume(tok)) {
			found, ok = tok, true
		}
	}
	return found, ok
}

// forcedBreak finds the offset inside the first overflowing token where the
// content has to be cut to stay within the limit.
func forcedBreak(tokens []tokenizer.Token, markupEnd int, fits func(int) bool) (int, bool) {
	for _, tok := range tokens {
		if fits(tok.End()) {
			continue
		}
		at := tok.Offset
		for i := range tok.Text {
			if i == 0 {
				continue
			}
			if !fits(tok.Offset + i) {
				break
			}
			at = tok.Offset + i
		}
		if at <= markupEnd {
			return 0, false
		}
		return at, true
	}
	return 0, false
}

func insertBreak(l *Line, at int, newline string) Edit {
	m := l.Model
	offset := l.Offset + m.ContentStart() + at
	return Edit{
		Kind:  EditSplit,
		Line:  m.LineIndex,
		Start: offset,
		End:   offset,
		Text:  newline + continuation(m, startsWithSpace(m.Content[at:])),
	}
}

// continuation is the syntax that starts the line created by a split, so the
// new line is a valid continuation of the same comment.
func continuation(m *commentline.Model, nextIsSpace bool) string {
	switch m.Position {
	case commentline.PosLine:
		// repeat a doc marker and keep the prefix width
		open, gap := m.Open, m.Prefix
		if lead := docLead(m); lead != "" {
			mark := strings.TrimRightFunc(lead, unicode.IsSpace)
			open, gap = open+mark, lead[len(mark):]
		}
		if nextIsSpace {
			return m.Indent() + open
		}
		if gap == "" {
			gap = " "
		}
		return m.Indent() + open + gap
	case commentline.PosBlockSingle, commentline.PosBlockFirst:
		if m.IsJavadoc() {
			gap := strings.TrimLeft(m.Prefix, "*")
			if gap == "" {
				gap = " "
			}
			return m.Indent() + " *" + gap
		}
		return m.Indent() + m.Prefix
	default:
		return m.LeadWhitespace + m.Prefix
	}
}

// closeIndent is what precedes a close marker moved onto its own line
func closeIndent(m *commentline.Model) string {
	if m.Open != "" && m.IsJavadoc() {
		return m.Indent() + " "
	}
	return m.Indent()
}

func startsWithSpace(s string) bool {
	r, size := utf8.DecodeRuneInString(s)
	return size > 0 && unicode.IsSpace(r)
}
