package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractLinks_MarkdownSyntax(t *testing.T) {
	body := []byte(`# Title

See [the guide](../guide/intro.md) and [section](page.md#anchor).

<https://example.com/auto>
`)
	links := ExtractLinks(body)
	assert.Contains(t, links, "../guide/intro.md")
	assert.Contains(t, links, "page.md#anchor")
	assert.Contains(t, links, "https://example.com/auto")
}

func TestExtractLinks_RawHTMLAnchor(t *testing.T) {
	body := []byte(`Before <a href="other/page.md">text</a> after.`)
	links := ExtractLinks(body)
	assert.Contains(t, links, "other/page.md")
}

func TestExtractLinks_HTMLBlockAnchor(t *testing.T) {
	body := []byte(`<div>
<a href="blocked/page.md">inside a block</a>
</div>
`)
	links := ExtractLinks(body)
	assert.Contains(t, links, "blocked/page.md")
}

func TestExtractLinks_IgnoresImages(t *testing.T) {
	body := []byte(`![alt](img/shot.png) and [real](target.md)`)
	links := ExtractLinks(body)
	assert.NotContains(t, links, "img/shot.png")
	assert.Contains(t, links, "target.md")
}

func TestExtractImageRefs(t *testing.T) {
	body := []byte(`![alt](img/shot.png)

<img src="html/pic.jpg" alt="x">
`)
	refs := ExtractImageRefs(body)
	assert.Contains(t, refs, "img/shot.png")
	assert.Contains(t, refs, "html/pic.jpg")
}

func TestNormalizeLinks(t *testing.T) {
	in := []string{
		"page.md",
		"page.md#section",
		"#local-anchor",
		"https://example.com/x",
		"http://example.com/y",
		"mailto:docs@example.com",
		"rendered/dir/",
		"no-extension",
		"styles.css",
		"archive.zip",
		"  spaced.md  ",
	}
	got := NormalizeLinks(in)
	assert.Equal(t, []string{
		"page.md",
		"page.md",
		"rendered/dir.md",
		"no-extension.md",
		"spaced.md",
	}, got)
}

func TestNormalizeLinks_Idempotent(t *testing.T) {
	in := []string{"page.md#a", "dir/", "bare"}
	once := NormalizeLinks(in)
	twice := NormalizeLinks(once)
	assert.Equal(t, once, twice)
}

func TestNormalizeImageRefs(t *testing.T) {
	in := []string{
		"img/a.png",
		"https://cdn.example.com/b.png",
		"http://cdn.example.com/c.png",
		"data:image/png;base64,AAAA",
		"/abs/d.png",
	}
	assert.Equal(t, []string{"img/a.png", "/abs/d.png"}, NormalizeImageRefs(in))
}

func TestExtractCSSImageRefs(t *testing.T) {
	css := `
body { background: url("img/bg.png"); }
.a { background-image: url('../shared/tile.gif'); }
.b { list-style-image: url( plain.svg ); }
`
	refs := ExtractCSSImageRefs(css)
	assert.Equal(t, []string{"img/bg.png", "../shared/tile.gif", "plain.svg"}, refs)
}

func TestHasFootnotes(t *testing.T) {
	assert.True(t, HasFootnotes([]byte("text[^1] and more\n\n[^1]: note\n")))
	assert.True(t, HasFootnotes([]byte("named[^note]")))
	assert.False(t, HasFootnotes([]byte("just [a link](x.md) and [brackets]")))
	assert.False(t, HasFootnotes([]byte("caret ^ alone [] empty")))
}
