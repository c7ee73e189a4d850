// Package audit implements the documentation audit: nav-vs-disk checks,
// link and image resolution, transitive reference scanning, and ghost
// detection.
package audit

import (
	"strings"

	"git.home.luguber.info/inful/docaudit/internal/util/paths"
)

// BrokenLink is a link that no resolution strategy could map to a file.
type BrokenLink struct {
	From        string // file containing the link
	Link        string // normalized link text
	FromHelpURL bool   // true when the source page was seeded by the help index
}

// BrokenImage is a markdown image reference without a target on disk.
type BrokenImage struct {
	From  string
	Image string
}

// Result is the product of one audit run. All lists are ordered; paths are
// absolute and normalized. Findings are data, never errors.
type Result struct {
	NavMissing         []string
	Ghost              []string
	HelpMissing        []string
	BrokenLinks        []BrokenLink
	MissingImages      []BrokenImage
	OrphanImages       []string
	PagesWithFootnotes []string
}

// Counts summarizes a result for display and history rows.
type Counts struct {
	NavMissing    int
	Ghost         int
	HelpMissing   int
	BrokenLinks   int
	MissingImages int
	OrphanImages  int
	Footnotes     int
	Total         int
}

// Counts returns per-list totals. Footnote pages are informational and not
// counted as issues.
func (r *Result) Counts() Counts {
	c := Counts{
		NavMissing:    len(r.NavMissing),
		Ghost:         len(r.Ghost),
		HelpMissing:   len(r.HelpMissing),
		BrokenLinks:   len(r.BrokenLinks),
		MissingImages: len(r.MissingImages),
		OrphanImages:  len(r.OrphanImages),
		Footnotes:     len(r.PagesWithFootnotes),
	}
	c.Total = c.NavMissing + c.Ghost + c.HelpMissing + c.BrokenLinks + c.MissingImages + c.OrphanImages
	return c
}

// FilterExcluded returns a copy of the result with every entry whose path
// lies in one of the named subsites removed. Findings are computed
// unfiltered; exclusion is a presentation concern.
func (r *Result) FilterExcluded(root string, excluded []string) *Result {
	if len(excluded) == 0 {
		return r
	}

	keep := func(p string) bool { return !IsExcluded(p, root, excluded) }

	out := &Result{}
	for _, p := range r.NavMissing {
		if keep(p) {
			out.NavMissing = append(out.NavMissing, p)
		}
	}
	for _, p := range r.Ghost {
		if keep(p) {
			out.Ghost = append(out.Ghost, p)
		}
	}
	for _, p := range r.HelpMissing {
		if keep(p) {
			out.HelpMissing = append(out.HelpMissing, p)
		}
	}
	for _, bl := range r.BrokenLinks {
		if keep(bl.From) {
			out.BrokenLinks = append(out.BrokenLinks, bl)
		}
	}
	for _, bi := range r.MissingImages {
		if keep(bi.From) {
			out.MissingImages = append(out.MissingImages, bi)
		}
	}
	for _, p := range r.OrphanImages {
		if keep(p) {
			out.OrphanImages = append(out.OrphanImages, p)
		}
	}
	for _, p := range r.PagesWithFootnotes {
		if keep(p) {
			out.PagesWithFootnotes = append(out.PagesWithFootnotes, p)
		}
	}
	return out
}

// IsExcluded reports whether p's first component below root names one of
// the excluded subsites.
func IsExcluded(p, root string, excluded []string) bool {
	rel, ok := strings.CutPrefix(paths.Normalize(p), paths.Normalize(root)+"/")
	if !ok {
		return false
	}
	subsite, _ := paths.FirstSegment(rel)
	for _, ex := range excluded {
		if subsite == ex {
			return true
		}
	}
	return false
}
