// Package render turns a validated page schema and resolved design tokens
// into a complete HTML document plus an audit manifest. Rendering is a pure
// function of its inputs; the only allowed non-determinism is the
// copyright-year substitution, which is isolated behind an injectable clock.
package render

import "strings"

// Escape HTML-entity-escapes user-supplied text before interpolation.
// Every renderer must pass block text through here; interpolating raw text
// is a security defect.
func Escape(text string) string {
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text) + len(text)/4)

	for _, r := range text {
		switch r {
		case '&':
			result.WriteString("&amp;")
		case '<':
			result.WriteString("&lt;")
		case '>':
			result.WriteString("&gt;")
		case '"':
			result.WriteString("&#34;")
		case '\'':
			result.WriteString("&#39;")
		default:
			result.WriteRune(r)
		}
	}

	return result.String()
}
