package classify

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type directiveRule struct {
	literal  string
	name     string
	anyLine  bool // recognised on every line, not only the first one
	boundary bool // literal must be followed by whitespace or end of content
}

// Longer literals sharing a stem come first, the first match wins.
var directiveRules = []directiveRule{
	{literal: "eslint-disable-next-line", name: "eslint-disable-next-line", anyLine: true, boundary: true},
	{literal: "eslint-disable-line", name: "eslint-disable-line", anyLine: true, boundary: true},
	{literal: "eslint-disable", name: "eslint-disable", boundary: true},
	{literal: "eslint-enable", name: "eslint-enable", boundary: true},
	{literal: "eslint-env", name: "eslint-env", boundary: true},
	{literal: "eslint", name: "eslint", boundary: true},
	{literal: "globals", name: "globals", boundary: true},
	{literal: "global", name: "global", boundary: true},
	{literal: "exported", name: "exported", boundary: true},
	{literal: "jshint", name: "jshint", boundary: true},
	{literal: "jslint", name: "jslint", boundary: true},
	{literal: "istanbul ignore", name: "istanbul", boundary: true},
	{literal: "c8 ignore", name: "c8", boundary: true},
	{literal: "@ts-nocheck", name: "ts-nocheck", boundary: true},
	{literal: "@ts-check", name: "ts-check", boundary: true},
	{literal: "@ts-expect-error", name: "ts-expect-error", anyLine: true, boundary: true},
	{literal: "@ts-ignore", name: "ts-ignore", anyLine: true, boundary: true},
	{literal: "/ <reference", name: "triple-slash-reference"},
	{literal: "+build", name: "build-constraint", boundary: true},
	{literal: "prettier-ignore", name: "prettier-ignore", anyLine: true, boundary: true},
	{literal: "#region", name: "region", anyLine: true, boundary: true},
	{literal: "#endregion", name: "endregion", anyLine: true, boundary: true},
	{literal: "go:", name: "go", anyLine: true},
	{literal: "nolint", name: "nolint", anyLine: true},
	{literal: "lint:ignore", name: "lint-ignore", anyLine: true, boundary: true},
	{literal: "webpackChunkName:", name: "webpack", anyLine: true},
}

// Directive returns the canonical name of the directive content starts
// with, or "". firstLine tells whether the line opens its comment and
// javadoc whether the line is star-prefixed; first-line directives are only
// recognised on a non-javadoc first line.
func Directive(content string, firstLine, javadoc bool) string {
	for _, rule := range directiveRules {
		if !rule.anyLine && (!firstLine || javadoc) {
			continue
		}
		if !strings.HasPrefix(content, rule.literal) {
			continue
		}
		if rule.boundary && !atBoundary(content[len(rule.literal):]) {
			continue
		}
		return rule.name
	}
	return ""
}

func atBoundary(rest string) bool {
	if rest == "" {
		return true
	}
	r, _ := utf8.DecodeRuneInString(rest)
	return unicode.IsSpace(r)
}
