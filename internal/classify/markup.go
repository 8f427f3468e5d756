// Package classify recognises structure inside the content of a comment
// line: markdown/jsdoc markup, tool directives and fixme tags.
package classify

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/cybersorcerer/cmtwidth/internal/source"
)

var (
	// bullet, ordered marker, jsdoc tag or heading, followed by whitespace
	markerPattern = regexp.MustCompile(`^(\*|-|\d+\.|@[A-Za-z]+|#{1,6})(\s+)`)
	tablePattern  = regexp.MustCompile(`^\|.*\|$`)
	tagPattern    = regexp.MustCompile(`^@[A-Za-z]+(\s|$)`)
)

// Markup returns the leading markup token of content and the whitespace
// after it. Markup only exists in javadoc style block comments, i.e. block
// comments whose prefix starts with '*'. A markdown table row is returned
// whole, with an empty space.
func Markup(kind source.Kind, prefix, content string) (markup, space string) {
	if kind != source.KindBlock || !strings.HasPrefix(prefix, "*") || content == "" {
		return "", ""
	}

	if m := markerPattern.FindStringSubmatch(content); m != nil {
		return m[1], m[2]
	}
	if tablePattern.MatchString(content) {
		return content, ""
	}
	return "", ""
}

// IsTable reports whether markup is a markdown table row
func IsTable(markup string) bool {
	return len(markup) >= 2 && tablePattern.MatchString(markup)
}

// IsHeading reports whether markup is a markdown heading marker
func IsHeading(markup string) bool {
	return markup != "" && strings.Trim(markup, "#") == ""
}

// IsTag reports whether markup is a jsdoc tag such as @param
func IsTag(markup string) bool {
	return strings.HasPrefix(markup, "@") && !IsTable(markup)
}

// Tag returns the jsdoc tag content starts with, bare tags included
func Tag(content string) string {
	m := tagPattern.FindString(content)
	return strings.TrimRightFunc(m, unicode.IsSpace)
}
