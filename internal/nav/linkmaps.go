package nav

import (
	"regexp"
	"strings"

	"git.home.luguber.info/inful/docaudit/internal/util/paths"
	"git.home.luguber.info/inful/docaudit/internal/util/sets"
)

// LinkMaps is the central resolution structure: the virtual hierarchy the
// nav defines, mapped both ways between rendered URLs and filesystem
// paths. Built once per run, read-only afterwards.
//
// Both maps are first-write-wins; a later duplicate insertion is silently
// ignored, which makes rebuilds idempotent.
type LinkMaps struct {
	URLToSrc map[string]string
	SrcToURL map[string]string
}

// BuildLinkMaps walks the nav tree rooted at mkdocsDir and produces the
// URL<->source maps. Section titles become slugged URL segments; included
// subsites contribute their directory name relative to the site root as a
// literal URL segment instead.
func BuildLinkMaps(items []Item, mkdocsDir string) (*LinkMaps, error) {
	maps := &LinkMaps{
		URLToSrc: make(map[string]string),
		SrcToURL: make(map[string]string),
	}
	root := paths.Normalize(mkdocsDir)
	if err := buildLinkMaps(items, root, root, "", maps, sets.New[string]()); err != nil {
		return nil, err
	}
	return maps, nil
}

func buildLinkMaps(items []Item, mkdocsDir, siteRoot, urlPrefix string, maps *LinkMaps, entered sets.Set[string]) error {
	for _, it := range items {
		switch it.Kind {
		case KindPage:
			if target, ok := IncludeTarget(it.Path); ok {
				cfg, includeDir, branch, err := loadInclude(target, mkdocsDir, entered)
				if err != nil {
					return err
				}
				childPrefix := urlPrefix
				if rel, ok := relativeTo(includeDir, siteRoot); ok && rel != "" {
					childPrefix = joinURL(urlPrefix, rel)
				}
				if err := buildLinkMaps(cfg.Nav, includeDir, siteRoot, childPrefix, maps, branch); err != nil {
					return err
				}
				continue
			}
			maps.insert(it.Path, mkdocsDir, urlPrefix)
		case KindSection:
			if err := buildLinkMaps(it.Children, mkdocsDir, siteRoot, joinURL(urlPrefix, Slugify(it.Title)), maps, entered); err != nil {
				return err
			}
		case KindPlainPath:
			maps.insert(it.Path, mkdocsDir, urlPrefix)
		}
	}
	return nil
}

func (m *LinkMaps) insert(navPath, mkdocsDir, urlPrefix string) {
	fsPath := paths.Join(mkdocsDir, "docs", navPath)

	var rendered string
	if urlPrefix == "" {
		rendered = paths.URL(paths.StripExt(navPath))
	} else {
		rendered = paths.URL(joinURL(urlPrefix, paths.Stem(navPath)))
	}

	if _, ok := m.URLToSrc[rendered]; !ok {
		m.URLToSrc[rendered] = fsPath
	}
	if _, ok := m.SrcToURL[fsPath]; !ok {
		m.SrcToURL[fsPath] = rendered
	}
}

// RenderedURL computes the canonical URL a link from the given source file
// points at: absolute links resolve against the site root, relative links
// against the source page's URL parent. Returns false when the source is
// not a nav page.
func (m *LinkMaps) RenderedURL(fromSrc, link string) (string, bool) {
	fromURL, ok := m.SrcToURL[fromSrc]
	if !ok {
		return "", false
	}

	target := strings.TrimPrefix(link, "/")
	var joined string
	if strings.HasPrefix(link, "/") {
		joined = target
	} else {
		joined = joinURL(urlParent(fromURL), target)
	}
	return paths.URL(paths.StripExt(joined)), true
}

// Lookup finds the source file serving a rendered URL, retrying with an
// "/index" suffix on miss to mirror server-side directory-index behavior.
func (m *LinkMaps) Lookup(rendered string) (string, bool) {
	if src, ok := m.URLToSrc[rendered]; ok {
		return src, true
	}
	alt := strings.TrimRight(rendered, "/")
	if src, ok := m.URLToSrc[alt]; ok {
		return src, true
	}
	src, ok := m.URLToSrc[alt+"/index"]
	return src, ok
}

// Resolve maps a link found in fromSrc to its target source file through
// the rendered-URL space.
func (m *LinkMaps) Resolve(fromSrc, link string) (string, bool) {
	rendered, ok := m.RenderedURL(fromSrc, link)
	if !ok {
		return "", false
	}
	return m.Lookup(rendered)
}

var nonAlnumRe = regexp.MustCompile(`[^A-Za-z0-9]+`)

// Slugify turns a section title into a URL segment: non-alphanumeric runs
// become a single hyphen, trimmed, lower-cased.
func Slugify(title string) string {
	slug := nonAlnumRe.ReplaceAllString(title, "-")
	return strings.ToLower(strings.Trim(slug, "-"))
}

func joinURL(prefix, rest string) string {
	if prefix == "" {
		return rest
	}
	if rest == "" {
		return prefix
	}
	return prefix + "/" + rest
}

func urlParent(url string) string {
	if idx := strings.LastIndex(url, "/"); idx >= 0 {
		return url[:idx]
	}
	return ""
}

// relativeTo strips base from p when p lives under it.
func relativeTo(p, base string) (string, bool) {
	if p == base {
		return "", true
	}
	rel, ok := strings.CutPrefix(p, base+"/")
	return rel, ok
}
