package markdown

import "regexp"

// Footnote references look like [^1], definitions like [^1]:.
var footnoteRe = regexp.MustCompile(`\[\^[^\]]+\]`)

// HasFootnotes reports whether the body contains footnote references or
// definitions.
func HasFootnotes(body []byte) bool {
	return footnoteRe.Match(body)
}
