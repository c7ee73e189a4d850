package audit

import (
	"os"
	"slices"
	"strings"

	"git.home.luguber.info/inful/docaudit/internal/nav"
	"git.home.luguber.info/inful/docaudit/internal/util/paths"
	"git.home.luguber.info/inful/docaudit/internal/util/sets"
)

// Resolver maps a normalized link found in a source file to a filesystem
// target. Strategies are tried in priority order, stopping at the first
// hit; a link is broken only when every strategy misses.
//
// The maps and file set are immutable for the lifetime of the resolver.
type Resolver struct {
	Maps         *nav.LinkMaps
	MonorepoRoot string
	IncludeRoots []string
	Files        sets.Set[string] // precomputed on-disk markdown set
}

type strategy func(src, link string) (string, bool)

// Resolve returns the filesystem target of link as seen from src, or
// false when the link is broken.
func (r *Resolver) Resolve(src, link string) (string, bool) {
	strategies := []strategy{
		r.resolveNav,
		r.resolveURLSpace,
		r.resolveUnderRoots,
		r.resolveFilesystem,
		r.resolveParent,
	}
	for _, try := range strategies {
		if target, ok := try(src, link); ok {
			return target, true
		}
	}
	return "", false
}

// resolveNav resolves through the nav's rendered-URL space: the source's
// own canonical URL is looked up, the link joined onto it, and the result
// mapped back through the URL map (with the server's /index retry).
func (r *Resolver) resolveNav(src, link string) (string, bool) {
	return r.Maps.Resolve(src, link)
}

// resolveURLSpace handles the page-as-directory ambiguity. A page
// dir/page.md serves at dir/page/, so ../sibling.md from it can mean
// either dir/sibling (sibling of the rendered directory) or sibling one
// level up in plain filesystem terms. Both candidate bases are tried, and
// each result is mapped back to disk with cross-subsite awareness.
func (r *Resolver) resolveURLSpace(src, link string) (string, bool) {
	for _, candidate := range r.urlSpaceCandidates(src, link) {
		if resolved, ok := r.checkWithIndexFallback(candidate); ok {
			return resolved, true
		}
	}
	return "", false
}

func (r *Resolver) urlSpaceCandidates(src, link string) []string {
	docsDir, ok := docsDirFor(src)
	if !ok {
		return nil
	}
	subsiteDir := paths.Parent(docsDir)
	name := baseName(subsiteDir)
	if name == "" {
		return nil
	}
	within, ok := strings.CutPrefix(src, docsDir+"/")
	if !ok {
		return nil
	}

	// Source page's URL: subsite name + path within docs, extension stripped.
	srcURL := paths.StripExt(name + "/" + within)
	linkPath := paths.StripExt(link)

	if strings.HasPrefix(link, "/") {
		resolved := paths.URL(strings.TrimPrefix(linkPath, "/"))
		if fsPath, ok := r.urlToFilesystem(resolved, name, docsDir); ok {
			return []string{fsPath}
		}
		return nil
	}

	var candidates []string
	for _, base := range []string{srcURL, urlParent(srcURL)} {
		resolved := paths.URL(base + "/" + linkPath)
		if resolved == "" {
			continue
		}
		fsPath, ok := r.urlToFilesystem(resolved, name, docsDir)
		if !ok {
			continue
		}
		if !slices.Contains(candidates, fsPath) {
			candidates = append(candidates, fsPath)
		}
	}
	return candidates
}

// urlToFilesystem maps a normalized URL back to a filesystem path. When
// the URL's first segment names a different subsite (a directory with its
// own docs/ under the monorepo root), "docs" is inserted after it;
// otherwise the URL resolves within the current subsite's docs root.
func (r *Resolver) urlToFilesystem(normalizedURL, subsiteName, docsDir string) (string, bool) {
	first, rest := paths.FirstSegment(normalizedURL)
	if first == "" {
		return "", false
	}

	candidateDocs := paths.Join(r.MonorepoRoot, first, "docs")
	var fsPath string
	if first != subsiteName && isDir(candidateDocs) {
		fsPath = paths.Join(candidateDocs, rest)
	} else {
		fsPath = paths.Join(docsDir, strings.TrimPrefix(normalizedURL, subsiteName+"/"))
	}
	return paths.StripExt(fsPath) + ".md", true
}

// resolveUnderRoots recomputes the link's rendered URL and tests it with
// .md appended, first under the source's own doc root, then under every
// known include root.
func (r *Resolver) resolveUnderRoots(src, link string) (string, bool) {
	rendered, ok := r.Maps.RenderedURL(src, link)
	if !ok {
		return "", false
	}

	if docRoot, ok := docsRootFor(src); ok {
		candidate := paths.StripExt(paths.Join(docRoot, "docs", rendered)) + ".md"
		if resolved, ok := r.checkWithIndexFallback(candidate); ok {
			return resolved, true
		}
	}

	for _, root := range r.IncludeRoots {
		candidate := paths.StripExt(paths.Join(root, "docs", rendered)) + ".md"
		if resolved, ok := r.checkWithIndexFallback(candidate); ok {
			return resolved, true
		}
	}
	return "", false
}

// resolveFilesystem falls back to raw link text: absolute links join onto
// the source's doc root docs/, relative links onto the source's parent.
func (r *Resolver) resolveFilesystem(src, link string) (string, bool) {
	var candidate string
	if strings.HasPrefix(link, "/") {
		docRoot, ok := docsRootFor(src)
		if !ok {
			return "", false
		}
		candidate = paths.Join(docRoot, "docs", strings.TrimPrefix(link, "/"))
	} else {
		candidate = paths.Join(paths.Parent(src), link)
	}
	return r.checkWithIndexFallback(candidate)
}

// resolveParent is the last resort: the link joined onto the source's
// immediate parent with no URL interpretation at all.
func (r *Resolver) resolveParent(src, link string) (string, bool) {
	return r.checkWithIndexFallback(paths.Join(paths.Parent(src), link))
}

// checkWithIndexFallback tests a candidate against the known markdown set
// and disk, retrying with the MkDocs convention that foo.md can also live
// at foo/index.md.
func (r *Resolver) checkWithIndexFallback(candidate string) (string, bool) {
	normalized := paths.Normalize(candidate)
	if r.Files.Has(normalized) || isFile(normalized) {
		return normalized, true
	}

	indexCandidate := paths.StripExt(normalized) + "/index.md"
	if r.Files.Has(indexCandidate) || isFile(indexCandidate) {
		return indexCandidate, true
	}
	return "", false
}

// docsDirFor finds the ancestor directory of p literally named "docs".
func docsDirFor(p string) (string, bool) {
	for dir := paths.Parent(p); dir != "" && dir != "/"; dir = paths.Parent(dir) {
		if baseName(dir) == "docs" {
			return dir, true
		}
	}
	return "", false
}

// docsRootFor returns the parent of the "docs" ancestor: the subsite root.
func docsRootFor(p string) (string, bool) {
	docsDir, ok := docsDirFor(p)
	if !ok {
		return "", false
	}
	return paths.Parent(docsDir), true
}

func baseName(p string) string {
	if idx := strings.LastIndex(p, "/"); idx >= 0 {
		return p[idx+1:]
	}
	return p
}

func urlParent(url string) string {
	if idx := strings.LastIndex(url, "/"); idx >= 0 {
		return url[:idx]
	}
	return ""
}

func isFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}

func isDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}
