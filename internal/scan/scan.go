// Package scan discovers documentation files on disk. Walks are bounded by
// the nav's include roots; the monorepo root itself is never walked.
package scan

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/docaudit/internal/errors"
	"git.home.luguber.info/inful/docaudit/internal/util/paths"
)

// imageExtensions are the asset types the image audit cares about.
var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".svg": true, ".webp": true, ".ico": true, ".bmp": true,
}

// Markdown returns every markdown file under the given roots, normalized.
// A failed walk is fatal: an incomplete file set would turn real pages
// into ghosts.
func Markdown(roots []string) ([]string, error) {
	var out []string
	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if strings.HasPrefix(d.Name(), ".") && path != root {
					return fs.SkipDir
				}
				return nil
			}
			if strings.EqualFold(filepath.Ext(path), ".md") {
				out = append(out, paths.Normalize(path))
			}
			return nil
		})
		if err != nil {
			return nil, errors.WalkFailed(root, err)
		}
	}
	return out, nil
}

// Images returns every image asset under the given roots. Unreadable
// entries are skipped; a missing asset dir only means there is nothing to
// report on.
func Images(roots []string) []string {
	return walkTolerant(roots, func(path string) bool {
		return imageExtensions[strings.ToLower(filepath.Ext(path))]
	})
}

// CSS returns every stylesheet under the given roots, existing roots only.
func CSS(roots []string) []string {
	var existing []string
	for _, root := range roots {
		if _, err := os.Stat(root); err == nil {
			existing = append(existing, root)
		}
	}
	return walkTolerant(existing, func(path string) bool {
		ext := strings.ToLower(filepath.Ext(path))
		return ext == ".css" || ext == ".scss"
	})
}

func walkTolerant(roots []string, match func(string) bool) []string {
	var out []string
	for _, root := range roots {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() {
				if strings.HasPrefix(d.Name(), ".") && path != root {
					return fs.SkipDir
				}
				return nil
			}
			if !match(path) {
				return nil
			}
			out = append(out, paths.Normalize(path))
			return nil
		})
	}
	return out
}
