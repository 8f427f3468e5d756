// Package scanner finds the `//` and `/* */` comments of C-family source
// text, skipping over string, character and template literals.
package scanner

import (
	"github.com/cybersorcerer/cmtwidth/internal/logger"
	"github.com/cybersorcerer/cmtwidth/internal/source"
)

// Scanner walks source text one byte at a time
type Scanner struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
	line         int  // current line number (1-based)
	lineStart    int  // offset of the first byte of the current line
}

// New creates a new Scanner instance
func New(input string) *Scanner {
	s := &Scanner{input: input, line: 1}
	s.readChar()
	return s
}

// Comments returns all comments of text in source order
func Comments(text string) []source.Comment {
	return New(text).Comments()
}

// Comments scans the rest of the input. Unterminated block comments are
// dropped.
func (s *Scanner) Comments() []source.Comment {
	var comments []source.Comment
	for s.ch != 0 {
		switch {
		case s.ch == '/' && s.peekChar() == '/':
			comments = append(comments, s.readLineComment())
		case s.ch == '/' && s.peekChar() == '*':
			c, ok := s.readBlockComment()
			if !ok {
				logger.Debug("unterminated block comment at line %d, column %d", c.Start.Line, c.Start.Column)
				return comments
			}
			comments = append(comments, c)
		case s.ch == '"' || s.ch == '\'' || s.ch == '`':
			s.skipString(s.ch)
		default:
			s.readChar()
		}
	}
	return comments
}

// readChar advances the position and reads the next character
func (s *Scanner) readChar() {
	if s.ch == '\n' {
		s.line++
		s.lineStart = s.readPosition
	}
	if s.readPosition >= len(s.input) {
		s.ch = 0
	} else {
		s.ch = s.input[s.readPosition]
	}
	s.position = s.readPosition
	s.readPosition++
}

// peekChar returns the next character without advancing the position
func (s *Scanner) peekChar() byte {
	if s.readPosition >= len(s.input) {
		return 0
	}
	return s.input[s.readPosition]
}

func (s *Scanner) here() source.Position {
	return source.Position{Line: s.line, Column: s.position - s.lineStart}
}

// readLineComment reads up to, not including, the line terminator
func (s *Scanner) readLineComment() source.Comment {
	c := source.Comment{Kind: source.KindLine, Start: s.here()}
	for s.ch != '\n' && s.ch != 0 {
		s.readChar()
	}
	end := s.here()
	// a \r belongs to the terminator
	if end.Column > 0 && s.input[s.position-1] == '\r' {
		end.Column--
	}
	c.End = end
	return c
}

func (s *Scanner) readBlockComment() (source.Comment, bool) {
	c := source.Comment{Kind: source.KindBlock, Start: s.here()}
	s.readChar()
	s.readChar()
	for s.ch != 0 {
		if s.ch == '*' && s.peekChar() == '/' {
			s.readChar()
			s.readChar()
			c.End = source.Position{Line: s.line, Column: s.position - s.lineStart}
			return c, true
		}
		s.readChar()
	}
	return c, false
}

// skipString skips a literal delimited by quote. Backslash escapes are
// honoured except in backtick strings; quoted literals end at a newline.
func (s *Scanner) skipString(quote byte) {
	s.readChar()
	for s.ch != 0 {
		switch {
		case s.ch == quote:
			s.readChar()
			return
		case s.ch == '\\' && quote != '`':
			s.readChar()
		case s.ch == '\n' && quote != '`':
			return
		}
		s.readChar()
	}
}
