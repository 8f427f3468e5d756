package reflow

import (
	"github.com/cybersorcerer/cmtwidth/internal/classify"
	"github.com/cybersorcerer/cmtwidth/internal/source"
	"github.com/cybersorcerer/cmtwidth/internal/tokenizer"
)

// Underflow returns the edit that pulls the leading words of next up onto
// cur, as many as fit within cfg.MaxWidth. It reports false when nothing can
// move or the lines must not be merged.
func Underflow(cur, next *Line, cfg Config, newline string) (Edit, bool) {
	if !cfg.JoinShortLines || cur == nil || next == nil || !sameComment(cur, next) {
		return Edit{}, false
	}
	if next.IsBlank() || next.Directive != "" || next.Markup != "" || next.Fixme != "" {
		return Edit{}, false
	}
	if cur.IsBlank() || cur.Directive != "" || unmergeable(cur) || cur.Close != "" {
		return Edit{}, false
	}
	if cfg.IgnoreCommentsWithCode && (cur.HasCode() || next.HasCode()) {
		return Edit{}, false
	}
	if Width(cur.Text, cfg.TabSize) >= cfg.MaxWidth {
		return Edit{}, false
	}

	base := Width(cur.Text[:cur.ContentEnd()], cfg.TabSize) + 1
	// a moved close marker brings the tail of the last line along
	tail := 0
	if next.Close != "" {
		tail = Width(next.Tail(), cfg.TabSize)
	}

	// a doc marker stays on next
	lead := docLead(next.Model)
	words := next.Content[len(lead):]

	runs := tokenizer.Runs(words)
	taken := 0
	for i, run := range runs {
		w := base + Width(words[:run.End()], cfg.TabSize)
		if i == len(runs)-1 {
			w += tail
		}
		if w > cfg.MaxWidth {
			break
		}
		taken = i + 1
	}
	// what stays behind must not start with structure
	for taken > 0 && taken < len(runs) && !remainderSafe(next, lead+words[runs[taken].Offset:]) {
		taken--
	}
	if taken == 0 {
		return Edit{}, false
	}

	moved := words[:runs[taken-1].End()]
	edit := Edit{
		Kind:  EditJoin,
		Line:  cur.LineIndex,
		Start: cur.Offset + cur.ContentEnd(),
		Text:  " " + moved,
	}

	switch {
	case taken < len(runs):
		// next keeps its head, its doc marker and the remaining words
		edit.End = next.Offset + next.ContentStart() + len(lead) + runs[taken].Offset
		edit.Text += newline + next.Head() + lead
	case next.Close != "":
		edit.End = next.Offset + next.ContentEnd()
	default:
		// next is emptied, drop the whole line
		edit.End = next.Offset + len(next.Text)
	}
	return edit, true
}

// sameComment reports whether next directly continues the comment cur is
// part of. Consecutive whole-line `//` comments with the same indentation
// and prefix count as one comment.
func sameComment(cur, next *Line) bool {
	if next.LineIndex != cur.LineIndex+1 || next.Kind != cur.Kind {
		return false
	}
	switch cur.Kind {
	case source.KindLine:
		return cur.Code == "" && next.Code == "" &&
			cur.LeadWhitespace == next.LeadWhitespace &&
			cur.Prefix == next.Prefix &&
			docLead(cur.Model) == docLead(next.Model)
	case source.KindBlock:
		return cur.Close == "" && next.Open == ""
	default:
		return false
	}
}

// remainderSafe reports whether content can start next once the words in
// front of it moved up
func remainderSafe(next *Line, content string) bool {
	return !opensStructure(next.Kind, next.Position.IsFirst(), next.IsJavadoc(), content)
}

// unmergeable markup never absorbs words from the following line
func unmergeable(l *Line) bool {
	return l.IsTable() || classify.IsHeading(l.Markup)
}
