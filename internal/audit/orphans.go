package audit

import (
	"strings"

	"git.home.luguber.info/inful/docaudit/internal/util/sets"
)

// Orphans returns the on-disk markdown files not named by any nav entry.
// Print variants (*-print.md) are generated companions of real pages and
// are never considered orphans. Transitive references are subtracted by
// the engine afterwards.
func Orphans(navPages sets.Set[string], files []string) []string {
	var out []string
	for _, f := range files {
		if navPages.Has(f) {
			continue
		}
		if strings.HasSuffix(f, "-print.md") {
			continue
		}
		out = append(out, f)
	}
	return out
}
