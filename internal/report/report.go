// Package report renders an audit result for the terminal. The audit
// itself never prints; this is the presentation layer the engine's result
// is handed to.
package report

import (
	"fmt"
	"io"
	"strings"

	"git.home.luguber.info/inful/docaudit/internal/audit"
	"git.home.luguber.info/inful/docaudit/internal/gitinfo"
	"git.home.luguber.info/inful/docaudit/internal/util/paths"
)

// Show selects which report sections to render. The zero value shows
// nothing; use ShowAll for the default.
type Show struct {
	NavMissing    bool
	Ghost         bool
	HelpMissing   bool
	BrokenLinks   bool
	MissingImages bool
	OrphanImages  bool
	Footnotes     bool
}

// ShowAll enables every section.
func ShowAll() Show {
	return Show{
		NavMissing:    true,
		Ghost:         true,
		HelpMissing:   true,
		BrokenLinks:   true,
		MissingImages: true,
		OrphanImages:  true,
	}
}

// Any reports whether at least one section is enabled.
func (s Show) Any() bool {
	return s.NavMissing || s.Ghost || s.HelpMissing || s.BrokenLinks || s.MissingImages || s.OrphanImages
}

// Formatter renders results as human-readable text.
type Formatter struct {
	Root    string // monorepo root; paths render relative to it
	Summary bool   // counts only, no individual items
}

// Header prints the audit context line when git metadata is available.
func (f *Formatter) Header(w io.Writer, info gitinfo.Info, ok bool) {
	if !ok {
		return
	}
	if info.Branch != "" {
		fmt.Fprintf(w, "Auditing %s @ %s (%s)\n", f.Root, info.Branch, info.ShortHash)
	} else {
		fmt.Fprintf(w, "Auditing %s @ %s\n", f.Root, info.ShortHash)
	}
}

// Format renders the selected sections and returns the number of issues
// shown. Broken links carry an [H] marker when their source page was
// seeded by the help index.
func (f *Formatter) Format(w io.Writer, result *audit.Result, show Show) int {
	total := 0

	if show.NavMissing {
		total += len(result.NavMissing)
		f.pathSection(w, "Missing nav entries", result.NavMissing)
	}
	if show.Ghost {
		total += len(result.Ghost)
		f.pathSection(w, "Ghost files (orphans)", result.Ghost)
	}
	if show.HelpMissing {
		total += len(result.HelpMissing)
		f.pathSection(w, "Missing help URLs", result.HelpMissing)
	}
	if show.BrokenLinks {
		total += len(result.BrokenLinks)
		f.section(w, "Broken links", len(result.BrokenLinks), func() {
			for _, bl := range result.BrokenLinks {
				marker := ""
				if bl.FromHelpURL {
					marker = "[H] "
				}
				fmt.Fprintf(w, "  %s%s -> %s\n", marker, f.rel(bl.From), bl.Link)
			}
		})
	}
	if show.MissingImages {
		total += len(result.MissingImages)
		f.section(w, "Missing images", len(result.MissingImages), func() {
			for _, bi := range result.MissingImages {
				fmt.Fprintf(w, "  %s -> %s\n", f.rel(bi.From), bi.Image)
			}
		})
	}
	if show.OrphanImages {
		total += len(result.OrphanImages)
		f.pathSection(w, "Orphan images", result.OrphanImages)
	}
	if show.Footnotes {
		// Informational only, never counted as issues.
		f.pathSection(w, "Pages with footnotes", result.PagesWithFootnotes)
	}

	if !f.Summary {
		fmt.Fprintf(w, "\nTotal issues: %d\n", total)
	}
	return total
}

func (f *Formatter) pathSection(w io.Writer, title string, items []string) {
	f.section(w, title, len(items), func() {
		for _, p := range items {
			fmt.Fprintf(w, "  %s\n", f.rel(p))
		}
	})
}

func (f *Formatter) section(w io.Writer, title string, n int, body func()) {
	if f.Summary {
		fmt.Fprintf(w, "%s: %d\n", title, n)
		return
	}
	fmt.Fprintf(w, "\n%s:\n", title)
	if n == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	body()
}

// rel renders p relative to the monorepo root when possible.
func (f *Formatter) rel(p string) string {
	if f.Root == "" {
		return p
	}
	if rel, ok := strings.CutPrefix(paths.Normalize(p), paths.Normalize(f.Root)+"/"); ok {
		return rel
	}
	return p
}
