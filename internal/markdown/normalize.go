package markdown

import (
	"path"
	"strings"
)

// NormalizeLinks prepares raw link destinations for resolution:
//
//   - page-internal anchors are stripped first
//   - external (http/https) and mailto links are dropped, never checked
//   - a trailing "/" becomes ".md" (a rendered directory URL names a page)
//   - a non-markdown extension drops the link
//   - a missing extension gets ".md" appended
//
// Normalization is idempotent: re-normalizing the output is a no-op.
func NormalizeLinks(links []string) []string {
	out := make([]string, 0, len(links))
	for _, raw := range links {
		link, _, _ := strings.Cut(raw, "#")
		link = strings.TrimSpace(link)
		if link == "" {
			continue
		}

		if strings.HasPrefix(link, "http") || strings.HasPrefix(link, "mailto:") {
			continue
		}

		if strings.HasSuffix(link, "/") {
			link = strings.TrimRight(link, "/")
			if link == "" {
				continue
			}
			out = append(out, link+".md")
			continue
		}

		switch ext := path.Ext(link); ext {
		case ".md":
			out = append(out, link)
		case "":
			out = append(out, link+".md")
		default:
			// non-markdown target, not ours to check
		}
	}
	return out
}

// NormalizeImageRefs filters out external and data-URI image references.
func NormalizeImageRefs(refs []string) []string {
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		if isExternalRef(r) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func isExternalRef(r string) bool {
	return strings.HasPrefix(r, "http://") ||
		strings.HasPrefix(r, "https://") ||
		strings.HasPrefix(r, "data:")
}
