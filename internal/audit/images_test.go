package audit

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docaudit/internal/util/sets"
)

func TestAnalyzeImageRefs_CSSKeepsOrphansAliveButNeverReports(t *testing.T) {
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "guide", "docs", "page.md"),
		"![ok](img/used.png)\n![bad](img/absent.png)\n")
	writeFile(t, filepath.Join(root, "guide", "docs", "img", "used.png"), "png")
	writeFile(t, filepath.Join(root, "guide", "docs", "img", "css-only.png"), "png")
	writeFile(t, filepath.Join(root, "guide", "assets", "site.css"),
		".a { background: url(../docs/img/css-only.png); }\n"+
			".b { background: url(../docs/img/not-here.png); }\n")

	allImages := sets.New(
		root+"/guide/docs/img/used.png",
		root+"/guide/docs/img/css-only.png",
	)
	includeRoots := []string{root + "/guide"}

	missing, referenced := AnalyzeImageRefs(
		[]string{root + "/guide/docs/page.md"},
		[]string{root + "/guide/assets/site.css"},
		allImages, includeRoots)

	// Only the markdown miss is reported; the CSS miss is tolerated.
	require.Len(t, missing, 1)
	assert.Equal(t, "img/absent.png", missing[0].Image)
	assert.Equal(t, root+"/guide/docs/page.md", missing[0].From)

	// The CSS hit still counts as a reference, so css-only.png is no orphan.
	assert.True(t, referenced.Has(root+"/guide/docs/img/used.png"))
	assert.True(t, referenced.Has(root+"/guide/docs/img/css-only.png"))
}

func TestResolveImageRef_AbsoluteAgainstIncludeRootDocs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "guide", "docs", "shared", "logo.png"), "png")

	allImages := sets.New(root + "/guide/docs/shared/logo.png")
	includeRoots := []string{root + "/guide"}

	resolved, ok := resolveImageRef(root+"/guide/docs/deep/page.md",
		"/shared/logo.png", allImages, includeRoots)
	require.True(t, ok)
	assert.Equal(t, root+"/guide/docs/shared/logo.png", resolved)

	_, ok = resolveImageRef(root+"/guide/docs/deep/page.md",
		"/shared/absent.png", allImages, includeRoots)
	assert.False(t, ok)
}
