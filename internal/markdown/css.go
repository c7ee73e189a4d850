package markdown

import (
	"regexp"
	"strings"
)

var cssURLRe = regexp.MustCompile(`url\s*\(\s*['"]?([^'")]+)['"]?\s*\)`)

// ExtractCSSImageRefs returns the url(...) references in a CSS body,
// quotes optional, with data URIs and external URLs dropped.
func ExtractCSSImageRefs(css string) []string {
	out := make([]string, 0)
	for _, m := range cssURLRe.FindAllStringSubmatch(css, -1) {
		ref := strings.TrimSpace(m[1])
		if ref == "" || isExternalRef(ref) {
			continue
		}
		out = append(out, ref)
	}
	return out
}
