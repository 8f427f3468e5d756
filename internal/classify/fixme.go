package classify

import "strings"

var fixmeTags = []struct {
	literal string
	name    string
}{
	{"TODO:", "todo"},
	{"TODO(", "todo"},
	{"FIXME:", "fixme"},
	{"FIXME(", "fixme"},
	{"BUG:", "bug"},
	{"BUG(", "bug"},
	{"NOTE:", "note"},
	{"WARNING:", "warning"},
	{"HACK:", "hack"},
	{"XXX:", "xxx"},
}

// Fixme returns the canonical tag content starts with, or ""
func Fixme(content string) string {
	for _, tag := range fixmeTags {
		if strings.HasPrefix(content, tag.literal) {
			return tag.name
		}
	}
	return ""
}
