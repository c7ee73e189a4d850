package audit

import (
	"context"
	"log/slog"
	"os"
	"sort"

	"git.home.luguber.info/inful/docaudit/internal/errors"
	"git.home.luguber.info/inful/docaudit/internal/helpindex"
	"git.home.luguber.info/inful/docaudit/internal/logfields"
	"git.home.luguber.info/inful/docaudit/internal/markdown"
	"git.home.luguber.info/inful/docaudit/internal/nav"
	"git.home.luguber.info/inful/docaudit/internal/scan"
	"git.home.luguber.info/inful/docaudit/internal/util/paths"
	"git.home.luguber.info/inful/docaudit/internal/util/sets"
)

// Engine runs one full audit. Everything is rebuilt from scratch per run;
// nothing is cached between invocations.
type Engine struct {
	MkDocsPath   string // site root nav configuration
	HelpURLsPath string // help index header
}

// New creates an audit engine for the given nav config and help index.
func New(mkdocsPath, helpURLsPath string) *Engine {
	return &Engine{MkDocsPath: mkdocsPath, HelpURLsPath: helpURLsPath}
}

// Run executes the audit. Configuration errors (unreadable or malformed
// nav, bad include) abort with no partial result; everything else is a
// finding.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	mkdocsPath := paths.Normalize(e.MkDocsPath)
	root := paths.Parent(mkdocsPath)
	if root == "" {
		return nil, errors.New(errors.CategoryConfig, errors.SeverityFatal, "nav file must reside within a directory").
			WithContext("path", e.MkDocsPath)
	}

	cfg, err := nav.Load(mkdocsPath)
	if err != nil {
		return nil, err
	}

	pages, err := nav.CollectPages(cfg.Nav, root)
	if err != nil {
		return nil, err
	}
	navMissing := missingFiles(sets.Sorted(pages))

	// The monorepo root itself is never walked; only include roots bound
	// the ghost scan.
	includeRoots := nav.IncludeRoots(cfg.Nav, root)
	files, err := scan.Markdown(includeRoots)
	if err != nil {
		return nil, err
	}
	filesSet := sets.New(files...)
	slog.Debug("markdown discovered", logfields.Count(len(files)))

	maps, err := nav.BuildLinkMaps(cfg.Nav, root)
	if err != nil {
		return nil, err
	}

	helpFiles, err := helpindex.Extract(e.HelpURLsPath, root)
	if err != nil {
		return nil, err
	}
	helpMissing := missingFiles(helpFiles)
	helpSet := sets.New(helpFiles...)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Transitive scan: nav pages and help-index pages seed the worklist;
	// every file a resolved link lands on is scanned in turn.
	resolver := &Resolver{
		Maps:         maps,
		MonorepoRoot: root,
		IncludeRoots: includeRoots,
		Files:        filesSet,
	}
	seedSet := pages.Clone()
	seedSet.AddAll(helpSet)
	var seed []string
	for _, p := range sets.Sorted(seedSet) {
		if isFile(p) {
			seed = append(seed, p)
		}
	}

	scanner := &Scanner{Resolver: resolver, HelpFiles: helpSet}
	scannedSet, referenced, brokenLinks := scanner.Run(seed)
	referenced.AddAll(helpSet)

	ghost := make([]string, 0)
	for _, p := range Orphans(pages, files) {
		if !referenced.Has(p) {
			ghost = append(ghost, p)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Image audit: assets under the include roots, stylesheets under the
	// include roots plus the shared asset directory beside the nav file.
	allImages := sets.New(scan.Images(includeRoots)...)
	cssDirs := append(append([]string(nil), includeRoots...), paths.Join(root, "documentation-assets"))
	cssFiles := scan.CSS(cssDirs)
	scanned := sets.Sorted(scannedSet)
	missingImages, referencedImages := AnalyzeImageRefs(scanned, cssFiles, allImages, includeRoots)

	var orphanImages []string
	for _, img := range sets.Sorted(allImages) {
		if !referencedImages.Has(img) {
			orphanImages = append(orphanImages, img)
		}
	}

	var footnotePages []string
	for _, p := range scanned {
		content, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		if markdown.HasFootnotes(content) {
			footnotePages = append(footnotePages, p)
		}
	}

	result := &Result{
		NavMissing:         navMissing,
		Ghost:              ghost,
		HelpMissing:        helpMissing,
		BrokenLinks:        brokenLinks,
		MissingImages:      missingImages,
		OrphanImages:       orphanImages,
		PagesWithFootnotes: footnotePages,
	}
	sortResult(result)

	c := result.Counts()
	slog.Debug("audit complete", logfields.Count(c.Total))
	return result, nil
}

// missingFiles filters the entries that are not files at audit time.
// Preserves input order.
func missingFiles(pages []string) []string {
	var out []string
	for _, p := range pages {
		if !isFile(p) {
			out = append(out, p)
		}
	}
	return out
}

// sortResult orders every list for stable output. Ordering is
// display-only; nothing downstream depends on it semantically.
func sortResult(r *Result) {
	sort.Strings(r.NavMissing)
	sort.Strings(r.Ghost)
	sort.Strings(r.HelpMissing)
	sort.Strings(r.OrphanImages)
	sort.Strings(r.PagesWithFootnotes)
	sort.Slice(r.BrokenLinks, func(i, j int) bool {
		if r.BrokenLinks[i].From != r.BrokenLinks[j].From {
			return r.BrokenLinks[i].From < r.BrokenLinks[j].From
		}
		return r.BrokenLinks[i].Link < r.BrokenLinks[j].Link
	})
	sort.Slice(r.MissingImages, func(i, j int) bool {
		if r.MissingImages[i].From != r.MissingImages[j].From {
			return r.MissingImages[i].From < r.MissingImages[j].From
		}
		return r.MissingImages[i].Image < r.MissingImages[j].Image
	})
}
