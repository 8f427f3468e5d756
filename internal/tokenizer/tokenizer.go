// Package tokenizer splits comment text into the units word-wrap works on:
// words, whitespace runs and single hyphens.
package tokenizer

import (
	"iter"
	"unicode"
	"unicode/utf8"
)

// Kind classifies a token
type Kind int

const (
	Word   Kind = iota // maximal run without whitespace or hyphen
	Space              // maximal run of whitespace
	Hyphen             // exactly one '-'
)

func (k Kind) String() string {
	switch k {
	case Word:
		return "word"
	case Space:
		return "space"
	case Hyphen:
		return "hyphen"
	default:
		return "unknown"
	}
}

// Token is one unit of a tokenized string
type Token struct {
	Kind   Kind
	Text   string
	Offset int // byte offset of Text in the input
}

// End returns the byte offset just past the token
func (t Token) End() int {
	return t.Offset + len(t.Text)
}

// Tokens returns the token sequence of s. The sequence is lazy and can be
// ranged over any number of times.
func Tokens(s string) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		pos := 0
		for pos < len(s) {
			r, size := utf8.DecodeRuneInString(s[pos:])
			kind := classOf(r)
			end := pos + size
			if kind != Hyphen {
				for end < len(s) {
					next, nsize := utf8.DecodeRuneInString(s[end:])
					if classOf(next) != kind {
						break
					}
					end += nsize
				}
			}
			if !yield(Token{Kind: kind, Text: s[pos:end], Offset: pos}) {
				return
			}
			pos = end
		}
	}
}

// Split collects Tokens(s) into a slice
func Split(s string) []Token {
	var tokens []Token
	for tok := range Tokens(s) {
		tokens = append(tokens, tok)
	}
	return tokens
}

// Run is a maximal group of adjacent non-space tokens, e.g. "well-known"
type Run struct {
	Text   string
	Offset int
}

// End returns the byte offset just past the run
func (r Run) End() int {
	return r.Offset + len(r.Text)
}

// Runs groups the tokens of s into word runs, dropping whitespace
func Runs(s string) []Run {
	var runs []Run
	start := -1
	for tok := range Tokens(s) {
		if tok.Kind == Space {
			if start >= 0 {
				runs = append(runs, Run{Text: s[start:tok.Offset], Offset: start})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = tok.Offset
		}
	}
	if start >= 0 {
		runs = append(runs, Run{Text: s[start:], Offset: start})
	}
	return runs
}

func classOf(r rune) Kind {
	switch {
	case r == '-':
		return Hyphen
	case unicode.IsSpace(r):
		return Space
	default:
		return Word
	}
}
