package audit

import (
	"log/slog"
	"os"

	"git.home.luguber.info/inful/docaudit/internal/logfields"
	"git.home.luguber.info/inful/docaudit/internal/markdown"
	"git.home.luguber.info/inful/docaudit/internal/util/sets"
)

// Scanner performs the fixed-point transitive link scan: newly resolved
// targets are read and scanned in turn until an iteration discovers no new
// file. Termination is guaranteed because the scanned set only grows and
// is bounded by the number of on-disk markdown files.
type Scanner struct {
	Resolver  *Resolver
	HelpFiles sets.Set[string] // marks broken links found in help-seeded pages
}

// Run scans from the seed files and returns the set of files read, the set
// of link targets they reference (directly or transitively), and every
// broken link found along the way.
func (s *Scanner) Run(seed []string) (scanned, referenced sets.Set[string], broken []BrokenLink) {
	scanned = sets.New[string]()
	referenced = sets.New[string]()

	toScan := append([]string(nil), seed...)
	for len(toScan) > 0 {
		frontier := make([]string, 0, len(toScan))
		contents := make(map[string][]byte, len(toScan))
		for _, p := range toScan {
			if scanned.Has(p) {
				continue
			}
			content, err := os.ReadFile(p)
			if err != nil {
				continue
			}
			scanned.Add(p)
			frontier = append(frontier, p)
			contents[p] = content
		}

		if len(frontier) == 0 {
			break
		}

		newRefs := sets.New[string]()
		for _, p := range frontier {
			fromHelp := s.HelpFiles.Has(p)
			links := markdown.NormalizeLinks(markdown.ExtractLinks(contents[p]))
			slog.Debug("scanning links", logfields.File(p), logfields.Count(len(links)))
			for _, link := range links {
				target, ok := s.Resolver.Resolve(p, link)
				if !ok {
					slog.Debug("link did not resolve", logfields.File(p), logfields.Link(link))
					broken = append(broken, BrokenLink{From: p, Link: link, FromHelpURL: fromHelp})
					continue
				}
				newRefs.Add(target)
			}
		}

		toScan = toScan[:0]
		for _, target := range sets.Sorted(newRefs) {
			if !scanned.Has(target) && isFile(target) {
				toScan = append(toScan, target)
			}
		}
		referenced.AddAll(newRefs)
	}

	return scanned, referenced, broken
}
