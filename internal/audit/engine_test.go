package audit

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// engineFixture builds a monorepo exercising every report at once:
//
//   - missing.md is in nav but not on disk
//   - linked-ghost.md is off-nav but linked from index.md (not a ghost)
//     and itself contains a broken link
//   - ghost.md is off-nav and unreferenced
//   - ghost-print.md is a print companion, never a ghost
//   - help-page.md exists only through the help index and has a broken
//     link of its own
//   - index.md references one existing and one missing image and carries
//     a footnote
func engineFixture(t *testing.T) (string, *Engine) {
	t.Helper()
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "mkdocs.yml"), `
nav:
  - Guide: "!include guide/mkdocs.yml"
`)
	writeFile(t, filepath.Join(root, "guide", "mkdocs.yml"), `
nav:
  - index.md
  - a.md
  - missing.md
`)

	writeFile(t, filepath.Join(root, "guide", "docs", "index.md"),
		"# Guide\n\nSee [a](a.md) and [lg](linked-ghost.md).\n\n"+
			"![pic](img/pic.png)\n![gone](img/gone.png)\n\nA note[^1].\n\n[^1]: the note\n")
	writeFile(t, filepath.Join(root, "guide", "docs", "a.md"), "# A\n")
	writeFile(t, filepath.Join(root, "guide", "docs", "linked-ghost.md"),
		"# Linked\n\n[broken](broken)\n")
	writeFile(t, filepath.Join(root, "guide", "docs", "ghost.md"), "# Ghost\n")
	writeFile(t, filepath.Join(root, "guide", "docs", "ghost-print.md"), "# Print\n")
	writeFile(t, filepath.Join(root, "guide", "docs", "help-page.md"),
		"# Help\n\n[dead](nonexistent.md)\n")
	writeFile(t, filepath.Join(root, "guide", "docs", "img", "pic.png"), "png")
	writeFile(t, filepath.Join(root, "guide", "docs", "img", "orphan.png"), "png")

	writeFile(t, filepath.Join(root, "help_urls.h"), `
HELP_URL("guide", "guide/help-page")
HELP_URL("absent", "guide/absent")
`)

	return root, New(filepath.Join(root, "mkdocs.yml"), filepath.Join(root, "help_urls.h"))
}

func TestEngine_FullAudit(t *testing.T) {
	root, engine := engineFixture(t)

	result, err := engine.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{root + "/guide/docs/missing.md"}, result.NavMissing)
	assert.Equal(t, []string{root + "/guide/docs/absent.md"}, result.HelpMissing)

	// linked-ghost is reachable from a nav page, help-page through the
	// help index; only ghost.md remains, and the print variant never counts.
	assert.Equal(t, []string{root + "/guide/docs/ghost.md"}, result.Ghost)

	require.Len(t, result.BrokenLinks, 2)
	assert.Equal(t, root+"/guide/docs/help-page.md", result.BrokenLinks[0].From)
	assert.Equal(t, "nonexistent.md", result.BrokenLinks[0].Link)
	assert.True(t, result.BrokenLinks[0].FromHelpURL)
	assert.Equal(t, root+"/guide/docs/linked-ghost.md", result.BrokenLinks[1].From)
	assert.Equal(t, "broken.md", result.BrokenLinks[1].Link)
	assert.False(t, result.BrokenLinks[1].FromHelpURL)

	require.Len(t, result.MissingImages, 1)
	assert.Equal(t, root+"/guide/docs/index.md", result.MissingImages[0].From)
	assert.Equal(t, "img/gone.png", result.MissingImages[0].Image)

	assert.Equal(t, []string{root + "/guide/docs/img/orphan.png"}, result.OrphanImages)
	assert.Equal(t, []string{root + "/guide/docs/index.md"}, result.PagesWithFootnotes)
}

func TestEngine_GhostBecomesCleanWhenLinked(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "mkdocs.yml"), `
nav:
  - Site: "!include site/mkdocs.yml"
`)
	writeFile(t, filepath.Join(root, "site", "mkdocs.yml"), "nav:\n  - index.md\n")
	writeFile(t, filepath.Join(root, "site", "docs", "index.md"), "[x](extra.md)\n")
	writeFile(t, filepath.Join(root, "site", "docs", "extra.md"), "# Extra\n")
	writeFile(t, filepath.Join(root, "help_urls.h"), "")

	engine := New(filepath.Join(root, "mkdocs.yml"), filepath.Join(root, "help_urls.h"))
	result, err := engine.Run(context.Background())
	require.NoError(t, err)

	assert.Empty(t, result.Ghost)
	assert.Empty(t, result.BrokenLinks)
}

func TestEngine_TransitiveScanFindsDeepBreakage(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "mkdocs.yml"), `
nav:
  - Site: "!include site/mkdocs.yml"
`)
	writeFile(t, filepath.Join(root, "site", "mkdocs.yml"), "nav:\n  - index.md\n")
	// index -> hop -> leaf, only the leaf is broken.
	writeFile(t, filepath.Join(root, "site", "docs", "index.md"), "[h](hop.md)\n")
	writeFile(t, filepath.Join(root, "site", "docs", "hop.md"), "[l](leaf.md)\n")
	writeFile(t, filepath.Join(root, "site", "docs", "leaf.md"), "[b](gone.md)\n")
	writeFile(t, filepath.Join(root, "help_urls.h"), "")

	engine := New(filepath.Join(root, "mkdocs.yml"), filepath.Join(root, "help_urls.h"))
	result, err := engine.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, result.BrokenLinks, 1)
	assert.Equal(t, root+"/site/docs/leaf.md", result.BrokenLinks[0].From)
	assert.Equal(t, "gone.md", result.BrokenLinks[0].Link)
	assert.Empty(t, result.Ghost)
}

func TestEngine_MalformedNavFails(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "mkdocs.yml"), "nav: [\n")
	writeFile(t, filepath.Join(root, "help_urls.h"), "")

	engine := New(filepath.Join(root, "mkdocs.yml"), filepath.Join(root, "help_urls.h"))
	_, err := engine.Run(context.Background())
	require.Error(t, err)
}
