package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestMarkdown(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "docs", "index.md"))
	write(t, filepath.Join(root, "docs", "nested", "deep.md"))
	write(t, filepath.Join(root, "docs", "ignore.txt"))
	write(t, filepath.Join(root, "docs", ".obsidian", "hidden.md"))
	write(t, filepath.Join(root, "mkdocs.yml"))

	files, err := Markdown([]string{root})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		root + "/docs/index.md",
		root + "/docs/nested/deep.md",
	}, files)
}

func TestMarkdown_MissingRootFails(t *testing.T) {
	_, err := Markdown([]string{filepath.Join(t.TempDir(), "absent")})
	require.Error(t, err)
}

func TestImages(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "docs", "img", "a.png"))
	write(t, filepath.Join(root, "docs", "img", "b.JPG"))
	write(t, filepath.Join(root, "docs", "img", "c.svg"))
	write(t, filepath.Join(root, "docs", "page.md"))

	images := Images([]string{root, filepath.Join(root, "does-not-exist")})
	assert.ElementsMatch(t, []string{
		root + "/docs/img/a.png",
		root + "/docs/img/b.JPG",
		root + "/docs/img/c.svg",
	}, images)
}

func TestCSS(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "assets", "site.css"))
	write(t, filepath.Join(root, "assets", "theme.scss"))
	write(t, filepath.Join(root, "assets", "readme.md"))

	css := CSS([]string{root})
	assert.ElementsMatch(t, []string{
		root + "/assets/site.css",
		root + "/assets/theme.scss",
	}, css)
}
