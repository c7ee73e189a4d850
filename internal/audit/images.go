package audit

import (
	"os"
	"strings"

	"git.home.luguber.info/inful/docaudit/internal/markdown"
	"git.home.luguber.info/inful/docaudit/internal/util/paths"
	"git.home.luguber.info/inful/docaudit/internal/util/sets"
)

// AnalyzeImageRefs checks every image reference in the scanned markdown
// files and the discovered stylesheets. It returns the markdown-sourced
// misses and the set of images referenced from anywhere.
//
// Unresolved CSS references are never reported: stylesheets may point at
// build artifacts outside the scanned tree. They still count as
// "referenced" when they do resolve, so a CSS-only image is not an orphan.
func AnalyzeImageRefs(markdownFiles []string, cssFiles []string, allImages sets.Set[string], includeRoots []string) ([]BrokenImage, sets.Set[string]) {
	var missing []BrokenImage
	referenced := sets.New[string]()

	for _, src := range markdownFiles {
		content, err := os.ReadFile(src)
		if err != nil {
			continue
		}
		refs := markdown.NormalizeImageRefs(markdown.ExtractImageRefs(content))
		for _, ref := range refs {
			if resolved, ok := resolveImageRef(src, ref, allImages, includeRoots); ok {
				referenced.Add(resolved)
			} else {
				missing = append(missing, BrokenImage{From: src, Image: ref})
			}
		}
	}

	for _, src := range cssFiles {
		content, err := os.ReadFile(src)
		if err != nil {
			continue
		}
		for _, ref := range markdown.ExtractCSSImageRefs(string(content)) {
			if resolved, ok := resolveImageRef(src, ref, allImages, includeRoots); ok {
				referenced.Add(resolved)
			}
		}
	}

	return missing, referenced
}

// resolveImageRef maps an image reference to a known asset. Absolute
// references are rooted at each include root's docs/ folder (or the root
// itself when no docs/ exists there); relative references resolve against
// the referencing file's parent first, then against each include root's
// docs/.
func resolveImageRef(src, ref string, allImages sets.Set[string], includeRoots []string) (string, bool) {
	if strings.HasPrefix(ref, "/") {
		trimmed := strings.TrimPrefix(ref, "/")
		for _, root := range includeRoots {
			docsDir := paths.Join(root, "docs")
			var candidate string
			if isDir(docsDir) {
				candidate = paths.Join(docsDir, trimmed)
			} else {
				candidate = paths.Join(root, trimmed)
			}
			if allImages.Has(candidate) {
				return candidate, true
			}
		}
		return "", false
	}

	if parent := paths.Parent(src); parent != "" {
		candidate := paths.Join(parent, ref)
		if allImages.Has(candidate) || isFile(candidate) {
			return candidate, true
		}
	}

	for _, root := range includeRoots {
		docsDir := paths.Join(root, "docs")
		if !isDir(docsDir) {
			continue
		}
		candidate := paths.Join(docsDir, ref)
		if allImages.Has(candidate) {
			return candidate, true
		}
	}

	return "", false
}
